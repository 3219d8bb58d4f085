package report

import (
	"os"
	"runtime"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	emojiSuccessConstant = "✅"
	emojiFailureConstant = "❌"
	emojiWarningConstant = "⚠️"
	asciiSuccessConstant = "[OK]"
	asciiFailureConstant = "[X]"
	asciiWarningConstant = "[!]"
	windowsGOOSConstant  = "windows"
)

// SymbolSet carries the status symbols and colorizers used by the text
// renderer. It is resolved once at process start from the capabilities of
// the output sink and passed by value afterwards.
type SymbolSet struct {
	Success      string
	Failure      string
	Warning      string
	colorizePass func(values ...any) string
	colorizeFail func(values ...any) string
	colorizeWarn func(values ...any) string
}

// ResolveSymbolSet inspects the output file and returns the symbol set the
// sink can render: emoji plus ANSI colors on a non-Windows terminal, plain
// ASCII markers otherwise.
func ResolveSymbolSet(outputFile *os.File) SymbolSet {
	isTerminal := outputFile != nil && term.IsTerminal(int(outputFile.Fd()))
	if !isTerminal || runtime.GOOS == windowsGOOSConstant {
		return AsciiSymbolSet()
	}

	return SymbolSet{
		Success:      emojiSuccessConstant,
		Failure:      emojiFailureConstant,
		Warning:      emojiWarningConstant,
		colorizePass: color.New(color.FgGreen).SprintFunc(),
		colorizeFail: color.New(color.FgRed).SprintFunc(),
		colorizeWarn: color.New(color.FgYellow).SprintFunc(),
	}
}

// AsciiSymbolSet returns the fallback symbol set for sinks that cannot
// render emoji or ANSI colors.
func AsciiSymbolSet() SymbolSet {
	return SymbolSet{
		Success: asciiSuccessConstant,
		Failure: asciiFailureConstant,
		Warning: asciiWarningConstant,
	}
}

// StatusSymbol returns the symbol matching a check outcome.
func (symbols SymbolSet) StatusSymbol(check CheckResult) string {
	if check.Passed {
		return symbols.Success
	}
	if check.Severity == SeverityWarning {
		return symbols.Warning
	}
	return symbols.Failure
}

func (symbols SymbolSet) colorizeStatus(check CheckResult, text string) string {
	colorizer := symbols.colorizePass
	if !check.Passed {
		colorizer = symbols.colorizeFail
		if check.Severity == SeverityWarning {
			colorizer = symbols.colorizeWarn
		}
	}
	if colorizer == nil {
		return text
	}
	return colorizer(text)
}
