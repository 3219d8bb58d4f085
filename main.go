package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/complykit/pycomply/cmd/cli"
)

const (
	errorOutputTemplateConstant = "Error checking repository: %v\n"
)

// main executes the pycomply command-line application, translating the
// execution outcome to the documented process exit codes.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		os.Exit(cli.ExitCodeSuccess)
	}

	var exitError cli.ExitError
	if errors.As(executionError, &exitError) {
		os.Exit(exitError.Code)
	}

	fmt.Fprintf(os.Stderr, errorOutputTemplateConstant, executionError)
	os.Exit(cli.ExitCodeFailure)
}
