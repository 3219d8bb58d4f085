package rules

import (
	"fmt"
	"strings"

	"github.com/complykit/pycomply/internal/manifest"
	"github.com/complykit/pycomply/internal/report"
)

const (
	poetryVersionCheckNameConstant        = "Poetry Version"
	poetryPluginCheckNameTemplateConstant = "Poetry Plugin: %s"
	noManifestMessageConstant             = "No pyproject.toml found"
	notUsingPoetryMessageConstant         = "Not using Poetry"
	pluginConfiguredMessageConstant       = "Required plugin configured"
	pluginMissingMessageConstant          = "Missing required plugin"
	poetryVersionMessageTemplateConstant  = "Poetry %s specified"
	poetryVersionFoundMessageConstant     = "Poetry >=2.1 specified"
	poetryVersionAdviceMessageConstant    = "Should specify Poetry >=2.1"
	poetryRequirementSubstringConstant    = "poetry"
)

// EvaluatePoetryConfiguration checks Poetry usage, required plugins, and the
// declared Poetry version requirement. Plugin checks are each independent of
// the version check; exactly one version-requirement result is emitted.
func EvaluatePoetryConfiguration(document manifest.Document) []report.CheckResult {
	if document.IsEmpty() {
		return []report.CheckResult{{
			Name:     poetryVersionCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  noManifestMessageConstant,
			Severity: report.SeverityError,
		}}
	}

	poetryTable, poetryUsed := document.Table("tool", "poetry")
	if !poetryUsed {
		return []report.CheckResult{{
			Name:     poetryVersionCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  notUsingPoetryMessageConstant,
			Severity: report.SeverityWarning,
		}}
	}

	var results []report.CheckResult
	results = append(results, evaluatePoetryPlugins(poetryTable)...)
	results = append(results, evaluatePoetryVersionRequirement(document, poetryTable))
	return results
}

func evaluatePoetryPlugins(poetryTable manifest.Document) []report.CheckResult {
	if !poetryTable.HasKey("requires-plugins") {
		return nil
	}

	// requires-plugins is either a table of name-to-constraint pairs or a
	// plain list of plugin names.
	pluginsTable, pluginsDeclaredAsTable := poetryTable.Table("requires-plugins")
	pluginList, _ := poetryTable.StringSlice("requires-plugins")

	pluginDeclared := func(pluginName string) bool {
		if pluginsDeclaredAsTable {
			return pluginsTable.HasKey(pluginName)
		}
		for _, declaredPlugin := range pluginList {
			if declaredPlugin == pluginName {
				return true
			}
		}
		return false
	}

	var results []report.CheckResult
	for _, pluginName := range RequiredPoetryPlugins {
		if pluginDeclared(pluginName) {
			results = append(results, report.CheckResult{
				Name:     fmt.Sprintf(poetryPluginCheckNameTemplateConstant, pluginName),
				Category: CategoryConfigurationConstant,
				Passed:   true,
				Message:  pluginConfiguredMessageConstant,
				Severity: report.SeverityInfo,
			})
			continue
		}
		results = append(results, report.CheckResult{
			Name:     fmt.Sprintf(poetryPluginCheckNameTemplateConstant, pluginName),
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  pluginMissingMessageConstant,
			Severity: report.SeverityWarning,
		})
	}
	return results
}

func evaluatePoetryVersionRequirement(document manifest.Document, poetryTable manifest.Document) report.CheckResult {
	if requiredVersion, versionDeclared := poetryTable.StringValue("requires-poetry"); versionDeclared {
		if matchesPoetryVersionPattern(requiredVersion) {
			return report.CheckResult{
				Name:     poetryVersionCheckNameConstant,
				Category: CategoryConfigurationConstant,
				Passed:   true,
				Message:  fmt.Sprintf(poetryVersionMessageTemplateConstant, requiredVersion),
				Severity: report.SeverityInfo,
			}
		}
		return report.CheckResult{
			Name:     poetryVersionCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  poetryVersionAdviceMessageConstant,
			Severity: report.SeverityWarning,
		}
	}

	if buildRequirements, requirementsFound := document.StringSlice("build-system", "requires"); requirementsFound {
		for _, requirement := range buildRequirements {
			if !strings.Contains(strings.ToLower(requirement), poetryRequirementSubstringConstant) {
				continue
			}
			if matchesPoetryVersionPattern(requirement) {
				return report.CheckResult{
					Name:     poetryVersionCheckNameConstant,
					Category: CategoryConfigurationConstant,
					Passed:   true,
					Message:  poetryVersionFoundMessageConstant,
					Severity: report.SeverityInfo,
				}
			}
			return report.CheckResult{
				Name:     poetryVersionCheckNameConstant,
				Category: CategoryConfigurationConstant,
				Passed:   false,
				Message:  poetryVersionAdviceMessageConstant,
				Severity: report.SeverityWarning,
			}
		}
	}

	return report.CheckResult{
		Name:     poetryVersionCheckNameConstant,
		Category: CategoryConfigurationConstant,
		Passed:   false,
		Message:  poetryVersionAdviceMessageConstant,
		Severity: report.SeverityWarning,
	}
}

func matchesPoetryVersionPattern(candidate string) bool {
	for _, pattern := range poetryVersionPatterns {
		if strings.Contains(candidate, pattern) {
			return true
		}
	}
	return false
}
