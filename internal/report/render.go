package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

const (
	reportTitleConstant             = "MODERN PYTHON PROJECT STANDARDS COMPLIANCE REPORT"
	reportSeparatorWidthConstant    = 80
	heavySeparatorRuneConstant      = "="
	lightSeparatorRuneConstant      = "-"
	repositoryLineTemplateConstant  = "Repository: %s\n"
	typeLineTemplateConstant        = "Type: %s\n"
	locationLineTemplateConstant    = "Location: %s\n"
	scoreLineTemplateConstant       = "Compliance Score: %.1f%%\n"
	checksLineTemplateConstant      = "Checks Passed: %d/%d\n"
	categoryHeaderTemplateConstant  = "\n%s:\n"
	checkLineTemplateConstant       = "  %s %s: %s\n"
	passedShortMessageConstant      = "No problems noted"
	summaryCategoryHeaderConstant   = "Category"
	summaryPassedHeaderConstant     = "Passed"
	summaryTotalHeaderConstant      = "Total"
)

// TextRenderOptions controls the text renderer.
type TextRenderOptions struct {
	Verbose bool
	Symbols SymbolSet
}

// WriteText renders the report as human-readable text. Checks are grouped by
// category in lexicographic order and keep their append order within each
// category. Passing checks render a short fixed message unless verbose mode
// is requested, in which case the original message is always shown.
func (instance *Report) WriteText(writer io.Writer, options TextRenderOptions) error {
	score := instance.CalculateScore()
	heavySeparator := strings.Repeat(heavySeparatorRuneConstant, reportSeparatorWidthConstant)
	lightSeparator := strings.Repeat(lightSeparatorRuneConstant, reportSeparatorWidthConstant)

	fmt.Fprintf(writer, "\n%s\n", heavySeparator)
	fmt.Fprintln(writer, reportTitleConstant)
	fmt.Fprintln(writer, heavySeparator)
	fmt.Fprintf(writer, repositoryLineTemplateConstant, instance.RepositoryName)
	fmt.Fprintf(writer, typeLineTemplateConstant, strings.ToUpper(string(instance.Kind)))
	if instance.Kind == SourceKindGitHub {
		fmt.Fprintf(writer, locationLineTemplateConstant, instance.RepositoryIdentifier)
	}
	fmt.Fprintf(writer, scoreLineTemplateConstant, score)
	fmt.Fprintf(writer, checksLineTemplateConstant, instance.PassedChecks(), instance.TotalChecks())
	fmt.Fprintln(writer, lightSeparator)

	for _, categoryName := range instance.sortedCategories() {
		fmt.Fprintf(writer, categoryHeaderTemplateConstant, categoryName)
		for _, check := range instance.Checks {
			if check.Category != categoryName {
				continue
			}
			statusSymbol := options.Symbols.StatusSymbol(check)
			displayMessage := check.Message
			if check.Passed && !options.Verbose {
				displayMessage = passedShortMessageConstant
			}
			checkLine := fmt.Sprintf(checkLineTemplateConstant, statusSymbol, check.Name, displayMessage)
			fmt.Fprint(writer, options.Symbols.colorizeStatus(check, checkLine))
		}
	}

	if options.Verbose {
		fmt.Fprintln(writer)
		if summaryError := instance.WriteCategorySummary(writer); summaryError != nil {
			return summaryError
		}
	}

	fmt.Fprintf(writer, "\n%s\n", heavySeparator)
	fmt.Fprintln(writer, instance.Summary(options.Symbols))
	fmt.Fprintf(writer, "%s\n\n", heavySeparator)
	return nil
}

// WriteCategorySummary renders a per-category pass count table.
func (instance *Report) WriteCategorySummary(writer io.Writer) error {
	summaryTable := tablewriter.NewWriter(writer)
	summaryTable.Header([]string{summaryCategoryHeaderConstant, summaryPassedHeaderConstant, summaryTotalHeaderConstant})

	rows := make([][]string, 0, len(instance.Checks))
	for _, categoryName := range instance.sortedCategories() {
		passedCount := 0
		totalCount := 0
		for _, check := range instance.Checks {
			if check.Category != categoryName {
				continue
			}
			totalCount++
			if check.Passed {
				passedCount++
			}
		}
		rows = append(rows, []string{categoryName, strconv.Itoa(passedCount), strconv.Itoa(totalCount)})
	}

	if bulkError := summaryTable.Bulk(rows); bulkError != nil {
		return bulkError
	}
	return summaryTable.Render()
}

func (instance *Report) sortedCategories() []string {
	seenCategories := make(map[string]struct{})
	var categories []string
	for _, check := range instance.Checks {
		if _, exists := seenCategories[check.Category]; exists {
			continue
		}
		seenCategories[check.Category] = struct{}{}
		categories = append(categories, check.Category)
	}
	sort.Strings(categories)
	return categories
}
