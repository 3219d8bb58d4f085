package report

// SeverityLevel classifies how serious a failed check is. Severity is
// independent of the pass/fail outcome.
type SeverityLevel string

// Supported severity levels.
const (
	SeverityError   SeverityLevel = "error"
	SeverityWarning SeverityLevel = "warning"
	SeverityInfo    SeverityLevel = "info"
)

// SourceKind identifies where repository facts were read from.
type SourceKind string

// Supported repository source kinds.
const (
	SourceKindLocal  SourceKind = "local"
	SourceKindGitHub SourceKind = "github"
)

// CheckResult captures a single compliance finding. Results are immutable
// once created; identity is positional within the report.
type CheckResult struct {
	Name     string
	Category string
	Passed   bool
	Message  string
	Severity SeverityLevel
}
