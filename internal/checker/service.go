package checker

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/complykit/pycomply/internal/manifest"
	"github.com/complykit/pycomply/internal/report"
	"github.com/complykit/pycomply/internal/rules"
	"github.com/complykit/pycomply/internal/source"
)

const (
	readmeFileNameConstant              = "README.md"
	readinessDocumentFileNameConstant   = "SRD.md"
	lockFileNameConstant                = "poetry.lock"
	claudeFileNameConstant              = "CLAUDE.md"
	aiTrackingFileNameConstant          = ".ai/README.md"
	workflowsDirectoryConstant          = ".github/workflows"
	pythonManagerWorkflowNameConstant   = "PythonManager.yml"
	workflowPathTemplateConstant        = ".github/workflows/%s"
	yamlExtensionConstant               = ".yml"
	yamlLongExtensionConstant           = ".yaml"
	ruffWorkflowSubstringConstant       = "ruff"
	formatWorkflowSubstringConstant     = "format"
	sonarSubstringConstant              = "sonar"
	readmeCheckNameConstant             = "README.md"
	readinessCheckNameConstant          = "SRD.md"
	lockFileCheckNameConstant           = "Poetry Lock File"
	pythonManagerCheckNameConstant      = "Python Manager Workflow"
	ruffWorkflowCheckNameConstant       = "Ruff Formatting Workflow"
	claudeCheckNameConstant             = "CLAUDE.md"
	aiTrackingCheckNameConstant         = "AI Tracking"
	sonarCloudCheckNameConstant         = "SonarCloud"
	repositoryAccessCheckNameConstant   = "Repository Access"
	noProblemsNotedMessageConstant      = "No problems noted"
	noWorkflowsDirectoryMessageConstant = "No .github/workflows directory"
)

var sonarPropertiesFileNames = []string{"sonar-project.properties", ".sonarcloud.properties"}

// Service runs compliance scans against a repository source.
type Service struct {
	logger *zap.Logger
}

// NewService constructs a scan service.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// InvalidLocalPathReport builds the terminal report for a local target whose
// path is missing or not a directory.
func InvalidLocalPathReport(target Target) *report.Report {
	scanReport := report.NewReport(target.Identifier, target.DisplayName, target.Kind)
	scanReport.AddCheck(report.CheckResult{
		Name:     repositoryAccessCheckNameConstant,
		Category: rules.CategoryInfrastructureConstant,
		Passed:   false,
		Message:  fmt.Sprintf("Path does not exist or is not a directory: %s", target.Identifier),
		Severity: report.SeverityError,
	})
	scanReport.Finalize()
	return scanReport
}

// Evaluate runs the full scan pipeline against the repository source and
// returns the finalized report.
func (service *Service) Evaluate(executionContext context.Context, repositorySource source.RepositorySource, target Target, options Options) *report.Report {
	scanReport := report.NewReport(target.Identifier, target.DisplayName, target.Kind)

	requiredKeywords := options.RequiredKeywords
	if len(requiredKeywords) == 0 {
		requiredKeywords = rules.RequiredRepositoryKeywords
	}

	service.logger.Debug("scan started",
		zap.String("repository", target.Identifier),
		zap.String("kind", string(target.Kind)),
	)

	document := repositorySource.LoadConfiguration(executionContext)

	service.runStandardRules(scanReport, document, requiredKeywords)
	service.runFilesystemChecks(executionContext, scanReport, repositorySource, document, target.Kind)
	service.runSourceSpecificChecks(executionContext, scanReport, repositorySource, requiredKeywords)

	scanReport.Finalize()

	service.logger.Debug("scan finished",
		zap.String("repository", target.Identifier),
		zap.Float64("score", scanReport.CalculateScore()),
	)
	return scanReport
}

func (service *Service) runStandardRules(scanReport *report.Report, document manifest.Document, requiredKeywords []string) {
	scanReport.AddCheck(rules.EvaluatePythonVersion(document))
	scanReport.AddChecks(rules.EvaluatePoetryConfiguration(document))
	scanReport.AddChecks(rules.EvaluateCodeQualityTools(document))
	scanReport.AddChecks(rules.EvaluateTestingConfiguration(document))
	scanReport.AddCheck(rules.EvaluateRepositoryKeywords(document, requiredKeywords))
}

func (service *Service) runFilesystemChecks(executionContext context.Context, scanReport *report.Report, repositorySource source.RepositorySource, document manifest.Document, kind report.SourceKind) {
	scanReport.AddCheck(presenceCheck(
		repositorySource.FileExists(executionContext, readmeFileNameConstant),
		readmeCheckNameConstant, rules.CategoryDocumentationConstant,
		"README.md present", "README.md missing", report.SeverityError,
	))

	scanReport.AddCheck(presenceCheck(
		repositorySource.FileExists(executionContext, readinessDocumentFileNameConstant),
		readinessCheckNameConstant, rules.CategoryDocumentationConstant,
		"System Readiness Document present", "System Readiness Document missing", report.SeverityError,
	))

	service.checkLockFile(executionContext, scanReport, repositorySource, document, kind)

	workflowNames := workflowFileNames(repositorySource.ListDirectory(executionContext, workflowsDirectoryConstant))
	service.checkWorkflows(executionContext, scanReport, repositorySource, workflowNames)
	service.checkOptionalDocumentation(executionContext, scanReport, repositorySource)
	service.checkSonarCloud(executionContext, scanReport, repositorySource, document, workflowNames)
}

// checkLockFile requires poetry.lock only for Poetry projects. Remote
// non-Poetry repositories get an explicit passing placeholder so local and
// remote reports carry comparable check counts.
func (service *Service) checkLockFile(executionContext context.Context, scanReport *report.Report, repositorySource source.RepositorySource, document manifest.Document, kind report.SourceKind) {
	if document.HasTable("tool", "poetry") {
		scanReport.AddCheck(presenceCheck(
			repositorySource.FileExists(executionContext, lockFileNameConstant),
			lockFileCheckNameConstant, rules.CategoryConfigurationConstant,
			"poetry.lock present", "poetry.lock missing", report.SeverityError,
		))
		return
	}

	if kind == report.SourceKindGitHub {
		scanReport.AddCheck(report.CheckResult{
			Name:     lockFileCheckNameConstant,
			Category: rules.CategoryConfigurationConstant,
			Passed:   true,
			Message:  noProblemsNotedMessageConstant,
			Severity: report.SeverityInfo,
		})
	}
}

func (service *Service) checkWorkflows(executionContext context.Context, scanReport *report.Report, repositorySource source.RepositorySource, workflowNames []string) {
	if len(workflowNames) == 0 {
		scanReport.AddCheck(report.CheckResult{
			Name:     pythonManagerCheckNameConstant,
			Category: rules.CategoryCICDConstant,
			Passed:   false,
			Message:  noWorkflowsDirectoryMessageConstant,
			Severity: report.SeverityError,
		})
		scanReport.AddCheck(report.CheckResult{
			Name:     ruffWorkflowCheckNameConstant,
			Category: rules.CategoryCICDConstant,
			Passed:   false,
			Message:  noWorkflowsDirectoryMessageConstant,
			Severity: report.SeverityWarning,
		})
		return
	}

	pythonManagerPresent := false
	ruffWorkflowPresent := false
	for _, workflowName := range workflowNames {
		if workflowName == pythonManagerWorkflowNameConstant {
			pythonManagerPresent = true
		}
		loweredName := strings.ToLower(workflowName)
		if strings.Contains(loweredName, ruffWorkflowSubstringConstant) || strings.Contains(loweredName, formatWorkflowSubstringConstant) {
			ruffWorkflowPresent = true
		}
	}

	// A formatting workflow may advertise itself through its declared display
	// name instead of its file name.
	if !ruffWorkflowPresent {
		for _, workflowName := range workflowNames {
			displayName := service.workflowDisplayName(executionContext, repositorySource, workflowName)
			loweredDisplayName := strings.ToLower(displayName)
			if strings.Contains(loweredDisplayName, ruffWorkflowSubstringConstant) || strings.Contains(loweredDisplayName, formatWorkflowSubstringConstant) {
				ruffWorkflowPresent = true
				break
			}
		}
	}

	scanReport.AddCheck(presenceCheck(
		pythonManagerPresent,
		pythonManagerCheckNameConstant, rules.CategoryCICDConstant,
		"PythonManager.yml workflow present", "Missing PythonManager.yml workflow", report.SeverityError,
	))
	scanReport.AddCheck(presenceCheck(
		ruffWorkflowPresent,
		ruffWorkflowCheckNameConstant, rules.CategoryCICDConstant,
		"Ruff auto-formatting workflow present", "Missing Ruff auto-formatting workflow", report.SeverityWarning,
	))
}

// checkOptionalDocumentation appends results only when the optional files
// exist; their absence is never a finding.
func (service *Service) checkOptionalDocumentation(executionContext context.Context, scanReport *report.Report, repositorySource source.RepositorySource) {
	if repositorySource.FileExists(executionContext, claudeFileNameConstant) {
		scanReport.AddCheck(report.CheckResult{
			Name:     claudeCheckNameConstant,
			Category: rules.CategoryDocumentationConstant,
			Passed:   true,
			Message:  "AI assistant instructions present (optional)",
			Severity: report.SeverityInfo,
		})
	}

	if repositorySource.FileExists(executionContext, aiTrackingFileNameConstant) {
		scanReport.AddCheck(report.CheckResult{
			Name:     aiTrackingCheckNameConstant,
			Category: rules.CategoryDocumentationConstant,
			Passed:   true,
			Message:  "AI development tracking configured (optional)",
			Severity: report.SeverityInfo,
		})
	}
}

func (service *Service) checkSonarCloud(executionContext context.Context, scanReport *report.Report, repositorySource source.RepositorySource, document manifest.Document, workflowNames []string) {
	sonarConfigured := false
	for _, propertiesFileName := range sonarPropertiesFileNames {
		if repositorySource.FileExists(executionContext, propertiesFileName) {
			sonarConfigured = true
			break
		}
	}

	if !sonarConfigured {
		for _, workflowName := range workflowNames {
			workflowContent, workflowReadable := repositorySource.ReadFile(executionContext, fmt.Sprintf(workflowPathTemplateConstant, workflowName))
			if workflowReadable && strings.Contains(strings.ToLower(workflowContent), sonarSubstringConstant) {
				sonarConfigured = true
				break
			}
		}
	}

	if !sonarConfigured {
		scanReport.AddCheck(report.CheckResult{
			Name:     sonarCloudCheckNameConstant,
			Category: rules.CategoryCodeQualityConstant,
			Passed:   false,
			Message:  "SonarCloud not configured",
			Severity: report.SeverityWarning,
		})
		return
	}

	if document.IsEmpty() {
		scanReport.AddCheck(report.CheckResult{
			Name:     sonarCloudCheckNameConstant,
			Category: rules.CategoryCodeQualityConstant,
			Passed:   true,
			Message:  "SonarCloud configuration found",
			Severity: report.SeverityInfo,
		})
		return
	}

	declaredVersion, _ := document.StringValue("project", "requires-python")
	if len(declaredVersion) == 0 {
		declaredVersion, _ = document.StringValue("tool", "poetry", "dependencies", "python")
	}

	if strings.Contains(declaredVersion, rules.CurrentPythonVersionConstant) {
		scanReport.AddCheck(report.CheckResult{
			Name:     sonarCloudCheckNameConstant,
			Category: rules.CategoryCodeQualityConstant,
			Passed:   true,
			Message:  fmt.Sprintf("SonarCloud configured for Python %s", rules.CurrentPythonVersionConstant),
			Severity: report.SeverityInfo,
		})
		return
	}

	scanReport.AddCheck(report.CheckResult{
		Name:     sonarCloudCheckNameConstant,
		Category: rules.CategoryCodeQualityConstant,
		Passed:   false,
		Message:  fmt.Sprintf("SonarCloud configured but not for Python %s", rules.CurrentPythonVersionConstant),
		Severity: report.SeverityWarning,
	})
}

func (service *Service) runSourceSpecificChecks(executionContext context.Context, scanReport *report.Report, repositorySource source.RepositorySource, requiredKeywords []string) {
	topicsProvider, providesTopics := repositorySource.(source.TopicsProvider)
	if !providesTopics {
		return
	}

	topics, topicsAvailable := topicsProvider.RepositoryTopics(executionContext)
	scanReport.AddCheck(rules.EvaluateRepositoryTopics(topics, topicsAvailable, requiredKeywords))
}

func (service *Service) workflowDisplayName(executionContext context.Context, repositorySource source.RepositorySource, workflowName string) string {
	workflowContent, workflowReadable := repositorySource.ReadFile(executionContext, fmt.Sprintf(workflowPathTemplateConstant, workflowName))
	if !workflowReadable {
		return ""
	}

	var workflowDocument struct {
		Name string `yaml:"name"`
	}
	if decodeError := yaml.Unmarshal([]byte(workflowContent), &workflowDocument); decodeError != nil {
		service.logger.Debug("workflow parse failed",
			zap.String("workflow", workflowName),
			zap.Error(decodeError),
		)
		return ""
	}
	return workflowDocument.Name
}

func presenceCheck(present bool, checkName string, category string, presentMessage string, missingMessage string, missingSeverity report.SeverityLevel) report.CheckResult {
	if present {
		return report.CheckResult{
			Name:     checkName,
			Category: category,
			Passed:   true,
			Message:  presentMessage,
			Severity: report.SeverityInfo,
		}
	}
	return report.CheckResult{
		Name:     checkName,
		Category: category,
		Passed:   false,
		Message:  missingMessage,
		Severity: missingSeverity,
	}
}

func workflowFileNames(directoryEntries []string) []string {
	var workflowNames []string
	for _, entryName := range directoryEntries {
		loweredName := strings.ToLower(entryName)
		if strings.HasSuffix(loweredName, yamlExtensionConstant) || strings.HasSuffix(loweredName, yamlLongExtensionConstant) {
			workflowNames = append(workflowNames, entryName)
		}
	}
	return workflowNames
}
