// Package report defines compliance check results, the append-only scan
// report with its scoring model, and the text and JSON renderers.
package report
