package rules

import (
	"fmt"
	"strings"

	"github.com/complykit/pycomply/internal/manifest"
	"github.com/complykit/pycomply/internal/report"
)

const (
	repositoryKeywordsCheckNameConstant = "Repository Keywords"
	repositoryTopicsCheckNameConstant   = "Repository Topics"
	keywordsFoundMessageConstant        = "Has required keyword(s)"
	topicsFoundMessageConstant          = "Has required GitHub topic(s)"
	keywordsMissingMessageTemplate      = "Missing required keyword. Should have one of: %s"
	topicsMissingMessageTemplate        = "Missing required GitHub topic. Should have one of: %s"
	topicsUnavailableMessageConstant    = "Could not fetch repository information"
)

// EvaluateRepositoryKeywords checks that the manifest declares at least one of
// the required repository-type keywords, looking first in the PEP 621 project
// table and then in the Poetry table.
func EvaluateRepositoryKeywords(document manifest.Document, requiredKeywords []string) report.CheckResult {
	if document.IsEmpty() {
		return report.CheckResult{
			Name:     repositoryKeywordsCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  noManifestMessageConstant,
			Severity: report.SeverityError,
		}
	}

	var declaredKeywords []string
	if document.HasTable("project") {
		declaredKeywords, _ = document.StringSlice("project", "keywords")
	} else if document.HasTable("tool", "poetry") {
		declaredKeywords, _ = document.StringSlice("tool", "poetry", "keywords")
	}

	if containsRequiredKeyword(declaredKeywords, requiredKeywords) {
		return report.CheckResult{
			Name:     repositoryKeywordsCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   true,
			Message:  keywordsFoundMessageConstant,
			Severity: report.SeverityInfo,
		}
	}

	return report.CheckResult{
		Name:     repositoryKeywordsCheckNameConstant,
		Category: CategoryConfigurationConstant,
		Passed:   false,
		Message:  fmt.Sprintf(keywordsMissingMessageTemplate, strings.Join(requiredKeywords, ", ")),
		Severity: report.SeverityError,
	}
}

// EvaluateRepositoryTopics checks GitHub topics against the required keyword
// set. The topicsAvailable flag distinguishes an empty topic list from a
// failed repository metadata fetch.
func EvaluateRepositoryTopics(topics []string, topicsAvailable bool, requiredKeywords []string) report.CheckResult {
	if !topicsAvailable {
		return report.CheckResult{
			Name:     repositoryTopicsCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   false,
			Message:  topicsUnavailableMessageConstant,
			Severity: report.SeverityError,
		}
	}

	if containsRequiredKeyword(topics, requiredKeywords) {
		return report.CheckResult{
			Name:     repositoryTopicsCheckNameConstant,
			Category: CategoryConfigurationConstant,
			Passed:   true,
			Message:  topicsFoundMessageConstant,
			Severity: report.SeverityInfo,
		}
	}

	return report.CheckResult{
		Name:     repositoryTopicsCheckNameConstant,
		Category: CategoryConfigurationConstant,
		Passed:   false,
		Message:  fmt.Sprintf(topicsMissingMessageTemplate, strings.Join(requiredKeywords, ", ")),
		Severity: report.SeverityError,
	}
}

func containsRequiredKeyword(declared []string, required []string) bool {
	requiredSet := make(map[string]struct{}, len(required))
	for _, keyword := range required {
		requiredSet[keyword] = struct{}{}
	}
	for _, keyword := range declared {
		if _, present := requiredSet[keyword]; present {
			return true
		}
	}
	return false
}
