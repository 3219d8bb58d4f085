package rules

import (
	"fmt"
	"strings"

	"github.com/complykit/pycomply/internal/manifest"
	"github.com/complykit/pycomply/internal/report"
)

const (
	pythonVersionCheckNameConstant           = "Python Version"
	manifestMissingMessageConstant           = "pyproject.toml not found or invalid"
	versionNotSpecifiedMessageConstant       = "Python version not specified in pyproject.toml"
	versionCurrentMessageTemplateConstant    = "Uses Python %s (current standard)"
	versionAcceptableMessageTemplateConstant = "Uses Python %s (acceptable but should upgrade to >=%s)"
	versionOutdatedMessageTemplateConstant   = "Uses Python %s (should be >=%s)"
)

// EvaluatePythonVersion checks the declared Python version requirement. The
// PEP 621 project table takes priority over the Poetry dependency table;
// when a requirement is found it is classified against the current and
// acceptable version tiers, with the current tier winning ties.
func EvaluatePythonVersion(document manifest.Document) report.CheckResult {
	if document.IsEmpty() {
		return report.CheckResult{
			Name:     pythonVersionCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  manifestMissingMessageConstant,
			Severity: report.SeverityError,
		}
	}

	declaredVersion, versionFound := document.StringValue("project", "requires-python")
	if !versionFound {
		if document.HasTable("tool", "poetry", "dependencies") {
			declaredVersion, _ = document.StringValue("tool", "poetry", "dependencies", "python")
			versionFound = true
		}
	}

	if !versionFound {
		return report.CheckResult{
			Name:     pythonVersionCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  versionNotSpecifiedMessageConstant,
			Severity: report.SeverityError,
		}
	}

	switch {
	case strings.Contains(declaredVersion, CurrentPythonVersionConstant):
		return report.CheckResult{
			Name:     pythonVersionCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   true,
			Message:  fmt.Sprintf(versionCurrentMessageTemplateConstant, declaredVersion),
			Severity: report.SeverityInfo,
		}
	case strings.Contains(declaredVersion, AcceptablePythonVersionConstant):
		return report.CheckResult{
			Name:     pythonVersionCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  fmt.Sprintf(versionAcceptableMessageTemplateConstant, declaredVersion, CurrentPythonVersionConstant),
			Severity: report.SeverityWarning,
		}
	default:
		return report.CheckResult{
			Name:     pythonVersionCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  fmt.Sprintf(versionOutdatedMessageTemplateConstant, declaredVersion, CurrentPythonVersionConstant),
			Severity: report.SeverityError,
		}
	}
}
