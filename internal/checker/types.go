package checker

import "github.com/complykit/pycomply/internal/report"

// Target identifies the repository being scanned.
type Target struct {
	// Identifier is the full repository location: an absolute path for local
	// scans, a GitHub URL for remote scans.
	Identifier string
	// DisplayName is the short repository name shown in the report header.
	DisplayName string
	Kind        report.SourceKind
}

// Options tunes a single scan.
type Options struct {
	// RequiredKeywords is the set of repository-type keywords at least one of
	// which must appear in manifest keywords or hosting topics.
	RequiredKeywords []string
}
