package rules

import (
	"strings"

	"github.com/complykit/pycomply/internal/manifest"
	"github.com/complykit/pycomply/internal/report"
)

const (
	testFrameworkCheckNameConstant       = "Test Framework"
	testCoverageCheckNameConstant        = "Test Coverage"
	pytestConfiguredMessageConstant      = "Pytest configured"
	pytestNotConfiguredMessageConstant   = "Pytest not configured"
	coverageConfiguredMessageConstant    = "Coverage reporting configured"
	coverageNotConfiguredMessageConstant = "Coverage reporting not configured"
	coverageFlagSubstringConstant        = "--cov"
)

// EvaluateTestingConfiguration checks that pytest is configured and, when it
// is, whether coverage reporting is wired in either through a dedicated
// coverage tool section or through a --cov flag in pytest addopts.
func EvaluateTestingConfiguration(document manifest.Document) []report.CheckResult {
	if document.IsEmpty() {
		return []report.CheckResult{{
			Name:     testFrameworkCheckNameConstant,
			Category: CategoryTestingConstant,
			Passed:   false,
			Message:  noConfigurationMessageConstant,
			Severity: report.SeverityError,
		}}
	}

	if !document.HasKey("tool", "pytest") {
		return []report.CheckResult{{
			Name:     testFrameworkCheckNameConstant,
			Category: CategoryTestingConstant,
			Passed:   false,
			Message:  pytestNotConfiguredMessageConstant,
			Severity: report.SeverityError,
		}}
	}

	results := []report.CheckResult{{
		Name:     testFrameworkCheckNameConstant,
		Category: CategoryTestingConstant,
		Passed:   true,
		Message:  pytestConfiguredMessageConstant,
		Severity: report.SeverityInfo,
	}}

	if coverageConfigured(document) {
		results = append(results, report.CheckResult{
			Name:     testCoverageCheckNameConstant,
			Category: CategoryTestingConstant,
			Passed:   true,
			Message:  coverageConfiguredMessageConstant,
			Severity: report.SeverityInfo,
		})
		return results
	}

	results = append(results, report.CheckResult{
		Name:     testCoverageCheckNameConstant,
		Category: CategoryTestingConstant,
		Passed:   false,
		Message:  coverageNotConfiguredMessageConstant,
		Severity: report.SeverityWarning,
	})
	return results
}

func coverageConfigured(document manifest.Document) bool {
	if document.HasKey("tool", "coverage") {
		return true
	}
	return strings.Contains(pytestExtraOptions(document), coverageFlagSubstringConstant)
}

// pytestExtraOptions flattens addopts, which may be declared either as a
// single string or as an array of flags.
func pytestExtraOptions(document manifest.Document) string {
	if addopts, found := document.StringValue("tool", "pytest", "ini_options", "addopts"); found {
		return addopts
	}
	if addoptsList, found := document.StringSlice("tool", "pytest", "ini_options", "addopts"); found {
		return strings.Join(addoptsList, " ")
	}
	return ""
}
