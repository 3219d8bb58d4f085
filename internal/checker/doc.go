// Package checker orchestrates a compliance scan as a single linear
// pipeline: load the manifest, run the pure rule functions, probe the
// repository for required files and workflows, evaluate hosting metadata,
// and finalize the report. Every stage appends its results and proceeds;
// missing information degrades individual checks but never aborts the scan.
package checker
