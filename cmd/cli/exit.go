package cli

import "fmt"

// Process exit codes. Unhandled errors map to ExitCodeFailure in main.
const (
	ExitCodeSuccess      = 0
	ExitCodeNonCompliant = 1
	ExitCodeFailure      = 2
)

// ExitError carries a specific process exit code through the error return of
// Execute. The report or self-test output has already been rendered by the
// time an ExitError is returned, so it carries no user-facing message.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (exitError ExitError) Error() string {
	return fmt.Sprintf("exit code %d", exitError.Code)
}
