package execshell

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	gitToolNameConstant                       = "git"
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
)

// CommandName identifies an external executable supported by the shell executor.
type CommandName string

// Supported executables.
const (
	CommandGit CommandName = CommandName(gitToolNameConstant)
)

// CommandDetails describes a single subprocess invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs a CommandName with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a subprocess invocation.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner abstracts subprocess execution so commands can be recorded in tests.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Sentinel errors reported during executor construction.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the command failure including captured standard error output.
func (failure CommandFailedError) Error() string {
	return CommandMessageFormatter{}.BuildFailureMessage(failure.Command, failure.Result)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return CommandMessageFormatter{}.BuildExecutionFailureMessage(failure.Command, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs external tools through a CommandRunner with structured
// lifecycle logging and observer notifications.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observers []CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor validating its mandatory dependencies.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, observers ...CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	activeObservers := make([]CommandEventObserver, 0, len(observers))
	for _, observer := range observers {
		if observer != nil {
			activeObservers = append(activeObservers, observer)
		}
	}

	return &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observers: activeObservers,
		formatter: CommandMessageFormatter{},
	}, nil
}

// ExecuteGit runs git with the provided invocation details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// Execute runs the supplied command, logging its lifecycle and notifying observers.
// A non-zero exit code is returned as a CommandFailedError alongside the captured
// result; failures to launch the process surface as a CommandExecutionError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.notifyStarted(command)
	executor.logger.Info(executor.formatter.BuildStartedMessage(command))

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.notifyExecutionFailed(command, runError)
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, runError))
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.notifyCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Error(executor.formatter.BuildFailureMessage(command, executionResult))
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Info(executor.formatter.BuildSuccessMessage(command))
	return executionResult, nil
}

func (executor *ShellExecutor) notifyStarted(command ShellCommand) {
	for _, observer := range executor.observers {
		observer.CommandStarted(command)
	}
}

func (executor *ShellExecutor) notifyCompleted(command ShellCommand, result ExecutionResult) {
	for _, observer := range executor.observers {
		observer.CommandCompleted(command, result)
	}
}

func (executor *ShellExecutor) notifyExecutionFailed(command ShellCommand, failure error) {
	for _, observer := range executor.observers {
		observer.CommandExecutionFailed(command, failure)
	}
}
