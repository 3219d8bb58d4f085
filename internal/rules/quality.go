package rules

import (
	"fmt"
	"strings"

	"github.com/complykit/pycomply/internal/manifest"
	"github.com/complykit/pycomply/internal/report"
)

const (
	linterCheckNameConstant             = "Linter/Formatter"
	typeCheckerCheckNameConstant        = "Type Checker"
	lineLengthCheckNameConstant         = "Line Length"
	quoteStyleCheckNameConstant         = "Quote Style"
	noConfigurationMessageConstant      = "No configuration found"
	ruffTargetMessageTemplateConstant   = "Ruff configured with target %s"
	ruffOutdatedTargetMessageConstant   = "Ruff configured but with outdated target version"
	lineLengthMessageConstant           = "Line length set to 120"
	quoteStyleMessageConstant           = "Quote style configured"
	blackMigrationMessageConstant       = "Uses Black (should migrate to Ruff)"
	noLinterMessageConstant             = "No linter/formatter configured"
	pyrightVersionMessageTemplate       = "Pyright configured for Python %s"
	pyrightWrongVersionMessageTemplate  = "Pyright not configured for Python %s"
	mypyMigrationMessageConstant        = "Uses mypy (consider pyright)"
	pyrightNotConfiguredMessageConstant = "Pyright not configured"
)

// EvaluateCodeQualityTools checks the linter/formatter and type checker
// configurations independently. The linter check prefers Ruff, flags Black as
// a migration candidate, and emits secondary line-length and quote-style
// results only when Ruff carries the matching settings. The type checker
// check prefers pyright or basedpyright and flags mypy.
func EvaluateCodeQualityTools(document manifest.Document) []report.CheckResult {
	if document.IsEmpty() {
		return []report.CheckResult{
			{
				Name:     linterCheckNameConstant,
				Category: CategoryCodeQualityConstant,
				Passed:   false,
				Message:  noConfigurationMessageConstant,
				Severity: report.SeverityError,
			},
			{
				Name:     typeCheckerCheckNameConstant,
				Category: CategoryCodeQualityConstant,
				Passed:   false,
				Message:  noConfigurationMessageConstant,
				Severity: report.SeverityError,
			},
		}
	}

	var results []report.CheckResult
	results = append(results, evaluateLinterConfiguration(document)...)
	results = append(results, evaluateTypeCheckerConfiguration(document))
	return results
}

func evaluateLinterConfiguration(document manifest.Document) []report.CheckResult {
	ruffTable, ruffConfigured := document.Table("tool", "ruff")
	if ruffConfigured {
		var results []report.CheckResult

		targetVersion, _ := ruffTable.StringValue("target-version")
		if matchesRuffTargetVersion(targetVersion) {
			results = append(results, report.CheckResult{
				Name:     linterCheckNameConstant,
				Category: CategoryCodeQualityConstant,
				Passed:   true,
				Message:  fmt.Sprintf(ruffTargetMessageTemplateConstant, targetVersion),
				Severity: report.SeverityInfo,
			})
		} else {
			results = append(results, report.CheckResult{
				Name:     linterCheckNameConstant,
				Category: CategoryCodeQualityConstant,
				Passed:   false,
				Message:  ruffOutdatedTargetMessageConstant,
				Severity: report.SeverityWarning,
			})
		}

		if lineLength, lineLengthDeclared := ruffTable.IntegerValue("line-length"); lineLengthDeclared && lineLength == lineLengthTargetConstant {
			results = append(results, report.CheckResult{
				Name:     lineLengthCheckNameConstant,
				Category: CategoryCodeQualityConstant,
				Passed:   true,
				Message:  lineLengthMessageConstant,
				Severity: report.SeverityInfo,
			})
		}

		if ruffTable.HasKey("format", "quote-style") {
			results = append(results, report.CheckResult{
				Name:     quoteStyleCheckNameConstant,
				Category: CategoryCodeQualityConstant,
				Passed:   true,
				Message:  quoteStyleMessageConstant,
				Severity: report.SeverityInfo,
			})
		}
		return results
	}

	if document.HasTable("tool", "black") {
		return []report.CheckResult{{
			Name:     linterCheckNameConstant,
			Category: CategoryCodeQualityConstant,
			Passed:   false,
			Message:  blackMigrationMessageConstant,
			Severity: report.SeverityWarning,
		}}
	}

	return []report.CheckResult{{
		Name:     linterCheckNameConstant,
		Category: CategoryCodeQualityConstant,
		Passed:   false,
		Message:  noLinterMessageConstant,
		Severity: report.SeverityError,
	}}
}

func evaluateTypeCheckerConfiguration(document manifest.Document) report.CheckResult {
	pyrightTable, pyrightConfigured := document.Table("tool", "pyright")
	if !pyrightConfigured {
		pyrightTable, pyrightConfigured = document.Table("tool", "basedpyright")
	}

	if pyrightConfigured {
		pythonVersion, _ := pyrightTable.StringValue("pythonVersion")
		if strings.Contains(pythonVersion, CurrentPythonVersionConstant) {
			return report.CheckResult{
				Name:     typeCheckerCheckNameConstant,
				Category: CategoryCodeQualityConstant,
				Passed:   true,
				Message:  fmt.Sprintf(pyrightVersionMessageTemplate, pythonVersion),
				Severity: report.SeverityInfo,
			}
		}
		return report.CheckResult{
			Name:     typeCheckerCheckNameConstant,
			Category: CategoryCodeQualityConstant,
			Passed:   false,
			Message:  fmt.Sprintf(pyrightWrongVersionMessageTemplate, CurrentPythonVersionConstant),
			Severity: report.SeverityWarning,
		}
	}

	if document.HasTable("tool", "mypy") {
		return report.CheckResult{
			Name:     typeCheckerCheckNameConstant,
			Category: CategoryCodeQualityConstant,
			Passed:   false,
			Message:  mypyMigrationMessageConstant,
			Severity: report.SeverityWarning,
		}
	}

	return report.CheckResult{
		Name:     typeCheckerCheckNameConstant,
		Category: CategoryCodeQualityConstant,
		Passed:   false,
		Message:  pyrightNotConfiguredMessageConstant,
		Severity: report.SeverityWarning,
	}
}

func matchesRuffTargetVersion(targetVersion string) bool {
	for _, candidate := range ruffTargetVersions {
		if strings.Contains(targetVersion, candidate) {
			return true
		}
	}
	return false
}
