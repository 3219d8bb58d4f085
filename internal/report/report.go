package report

import "fmt"

// Score thresholds for the summary tiers.
const (
	ScoreExcellentThresholdConstant = 90.0
	ScoreGoodThresholdConstant      = 75.0
)

const (
	scoreMetadataKeyConstant         = "score"
	summaryExcellentTemplateConstant = "%s EXCELLENT: Repository meets all standards."
	summaryGoodTemplateConstant      = "%s GOOD: Repository follows most standards with minor improvements needed."
	summaryNeedsWorkTemplateConstant = "%s NEEDS WORK: Repository requires significant updates to meet standards."
)

// Report aggregates the check results of one repository scan. It is mutated
// only by appending check results and by setting metadata.
type Report struct {
	RepositoryIdentifier string
	RepositoryName       string
	Kind                 SourceKind
	Checks               []CheckResult
	Metadata             map[string]any
}

// NewReport constructs an empty report for the identified repository.
func NewReport(repositoryIdentifier string, repositoryName string, kind SourceKind) *Report {
	return &Report{
		RepositoryIdentifier: repositoryIdentifier,
		RepositoryName:       repositoryName,
		Kind:                 kind,
		Metadata:             map[string]any{},
	}
}

// AddCheck appends a check result to the report.
func (instance *Report) AddCheck(result CheckResult) {
	instance.Checks = append(instance.Checks, result)
}

// AddChecks appends every provided check result in order.
func (instance *Report) AddChecks(results []CheckResult) {
	instance.Checks = append(instance.Checks, results...)
}

// TotalChecks returns the number of recorded checks.
func (instance *Report) TotalChecks() int {
	return len(instance.Checks)
}

// PassedChecks returns the number of passing checks.
func (instance *Report) PassedChecks() int {
	passedCount := 0
	for _, check := range instance.Checks {
		if check.Passed {
			passedCount++
		}
	}
	return passedCount
}

// FailedChecks returns the number of failing checks.
func (instance *Report) FailedChecks() int {
	return instance.TotalChecks() - instance.PassedChecks()
}

// CalculateScore computes the compliance score as a percentage of passing
// checks. An empty report scores zero; the computation never divides by zero
// and is idempotent while no further checks are appended.
func (instance *Report) CalculateScore() float64 {
	totalChecks := instance.TotalChecks()
	if totalChecks == 0 {
		return 0.0
	}
	return (float64(instance.PassedChecks()) / float64(totalChecks)) * 100.0
}

// Finalize computes the score, caches it in the report metadata, and returns
// it. Calling Finalize repeatedly without appending further checks yields the
// same value.
func (instance *Report) Finalize() float64 {
	score := instance.CalculateScore()
	instance.Metadata[scoreMetadataKeyConstant] = score
	return score
}

// Summary returns the human-readable compliance tier for the report.
func (instance *Report) Summary(symbols SymbolSet) string {
	score := instance.CalculateScore()
	if cachedScore, scoreCached := instance.Metadata[scoreMetadataKeyConstant].(float64); scoreCached {
		score = cachedScore
	}

	switch {
	case score >= ScoreExcellentThresholdConstant:
		return fmt.Sprintf(summaryExcellentTemplateConstant, symbols.Success)
	case score >= ScoreGoodThresholdConstant:
		return fmt.Sprintf(summaryGoodTemplateConstant, symbols.Success)
	default:
		return fmt.Sprintf(summaryNeedsWorkTemplateConstant, symbols.Failure)
	}
}
