package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	commandStartedTemplateConstant   = "Running %s"
	commandSucceededTemplateConstant = "Completed %s"
	commandFailedTemplateConstant    = "%s failed with exit code %d%s"
	executionFailedTemplateConstant  = "%s failed: %s"
	standardErrorSuffixTemplate      = ": %s"
	argumentsJoinSeparatorConstant   = " "
)

// ErrLoggerNotConfigured indicates ShellExecutor construction without a logger.
var ErrLoggerNotConfigured = errors.New("shell executor requires a logger")

// ErrCommandRunnerNotConfigured indicates ShellExecutor construction without a runner.
var ErrCommandRunnerNotConfigured = errors.New("shell executor requires a command runner")

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including any captured standard error output.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorSuffixTemplate, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedTemplateConstant, describeCommand(failure.Command), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(executionFailedTemplateConstant, describeCommand(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs external commands through a CommandRunner with logging.
type ShellExecutor struct {
	logger        *zap.Logger
	commandRunner CommandRunner
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{logger: logger, commandRunner: commandRunner}, nil
}

// ExecuteGitHubCLI runs the gh executable with the supplied details.
func (executor *ShellExecutor) ExecuteGitHubCLI(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	command := ShellCommand{Name: CommandGitHub, Details: details}
	return executor.execute(executionContext, command)
}

func (executor *ShellExecutor) execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandDescription := describeCommand(command)
	executor.logger.Debug(fmt.Sprintf(commandStartedTemplateConstant, commandDescription))

	executionResult, executionError := executor.commandRunner.Run(executionContext, command)
	if executionError != nil {
		executor.logger.Error(fmt.Sprintf(executionFailedTemplateConstant, commandDescription, executionError))
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: executionError}
	}

	if executionResult.ExitCode != 0 {
		failure := CommandFailedError{Command: command, Result: executionResult}
		executor.logger.Debug(failure.Error())
		return ExecutionResult{}, failure
	}

	executor.logger.Debug(fmt.Sprintf(commandSucceededTemplateConstant, commandDescription))
	return executionResult, nil
}

func describeCommand(command ShellCommand) string {
	if len(command.Details.Arguments) == 0 {
		return string(command.Name)
	}
	return string(command.Name) + argumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, argumentsJoinSeparatorConstant)
}
