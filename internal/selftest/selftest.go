// Package selftest runs the embedded verification suite invoked by the
// --test flag. The assertions exercise the score arithmetic, the rule
// functions, and repository-type detection without touching any repository.
package selftest

import (
	"fmt"
	"io"
	"strings"

	"github.com/complykit/pycomply/internal/manifest"
	"github.com/complykit/pycomply/internal/report"
	"github.com/complykit/pycomply/internal/rules"
	"github.com/complykit/pycomply/internal/source"
)

const (
	separatorWidthConstant   = 60
	separatorRuneConstant    = "-"
	headerMessageConstant    = "Running embedded tests..."
	allPassedMessageConstant = "All embedded tests passed!"
)

type assertion struct {
	name    string
	passing func() bool
}

// Run executes every embedded assertion, writing one line per assertion and
// a closing summary. It returns false when any assertion fails.
func Run(writer io.Writer, symbols report.SymbolSet) bool {
	fmt.Fprintln(writer, headerMessageConstant)
	fmt.Fprintln(writer, strings.Repeat(separatorRuneConstant, separatorWidthConstant))

	allPassed := true
	for _, currentAssertion := range assertions() {
		if currentAssertion.passing() {
			fmt.Fprintf(writer, "%s %s\n", symbols.Success, currentAssertion.name)
			continue
		}
		allPassed = false
		fmt.Fprintf(writer, "%s %s\n", symbols.Failure, currentAssertion.name)
	}

	fmt.Fprintln(writer, strings.Repeat(separatorRuneConstant, separatorWidthConstant))
	if allPassed {
		fmt.Fprintf(writer, "%s %s\n", symbols.Success, allPassedMessageConstant)
	}
	return allPassed
}

func assertions() []assertion {
	return []assertion{
		{
			name: "check result creation",
			passing: func() bool {
				checkResult := report.CheckResult{Name: "Test", Category: "Category", Passed: true, Message: "Message", Severity: report.SeverityInfo}
				return checkResult.Name == "Test" && checkResult.Passed
			},
		},
		{
			name: "report score calculation",
			passing: func() bool {
				scanReport := report.NewReport("test-repo", "test", report.SourceKindLocal)
				scanReport.AddCheck(report.CheckResult{Name: "Test1", Category: "Cat", Passed: true, Message: "Pass", Severity: report.SeverityInfo})
				scanReport.AddCheck(report.CheckResult{Name: "Test2", Category: "Cat", Passed: false, Message: "Fail", Severity: report.SeverityError})
				return scanReport.TotalChecks() == 2 && scanReport.PassedChecks() == 1 && scanReport.CalculateScore() == 50.0
			},
		},
		{
			name: "python version rule accepts current version",
			passing: func() bool {
				document := manifest.Document{"project": map[string]any{"requires-python": ">=3.13"}}
				return rules.EvaluatePythonVersion(document).Passed
			},
		},
		{
			name: "python version rule rejects missing manifest",
			passing: func() bool {
				checkResult := rules.EvaluatePythonVersion(manifest.EmptyDocument())
				return !checkResult.Passed && checkResult.Severity == report.SeverityError
			},
		},
		{
			name: "testing rule emits framework and coverage results",
			passing: func() bool {
				document := manifest.Document{"tool": map[string]any{"pytest": map[string]any{}}}
				checkResults := rules.EvaluateTestingConfiguration(document)
				return len(checkResults) == 2 && checkResults[0].Passed && !checkResults[1].Passed
			},
		},
		{
			name: "keyword rule matches declared keyword",
			passing: func() bool {
				document := manifest.Document{"project": map[string]any{"keywords": []any{"python-lib"}}}
				return rules.EvaluateRepositoryKeywords(document, rules.RequiredRepositoryKeywords).Passed
			},
		},
		{
			name: "repository type detection",
			passing: func() bool {
				return source.Detect("https://github.com/owner/repo") == report.SourceKindGitHub &&
					source.Detect("/local/path") == report.SourceKindLocal
			},
		},
	}
}
