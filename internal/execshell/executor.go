package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	commandGitNameConstant    = "git"
	commandGitHubNameConstant = "gh"
	commandNpmNameConstant    = "npm"

	loggerNotConfiguredMessageConstant        = "shell executor requires a logger"
	commandRunnerNotConfiguredMessageConstant = "shell executor requires a command runner"

	commandFailedErrorTemplateConstant           = "%s command failed with exit code %d%s"
	commandExecutionErrorTemplateConstant        = "%s command could not be executed: %v"
	commandFailedStandardErrorSuffixConstant     = ": %s"
	structuredCommandStartedMessageConstant      = "executing command"
	structuredCommandCompletedMessageConstant    = "command completed"
	structuredCommandFailedMessageConstant       = "command failed"
	structuredCommandUnexecutableMessageConstant = "command execution failed"
	logFieldCommandNameConstant                  = "command"
	logFieldCommandArgumentsConstant             = "arguments"
	logFieldWorkingDirectoryConstant             = "working_directory"
	logFieldExitCodeConstant                     = "exit_code"
	logFieldStandardErrorConstant                = "standard_error"
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executables invoked by the application.
const (
	CommandGit    CommandName = CommandName(commandGitNameConstant)
	CommandGitHub CommandName = CommandName(commandGitHubNameConstant)
	CommandNpm    CommandName = CommandName(commandNpmNameConstant)
)

// CommandDetails describes the invocation parameters for a shell command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	// StandardInput is streamed to the child process; JSON payloads and secret
	// values always travel this way instead of appearing in the argument list.
	StandardInput []byte
	// InheritStandardStreams connects the child process to the caller's
	// standard streams so attended commands remain visible and interactive.
	InheritStandardStreams bool
}

// ShellCommand pairs an executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a command invocation.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner abstracts process execution for testability.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Sentinel errors reported during executor construction.
var (
	ErrLoggerNotConfigured        = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error renders the failed command with its exit code and trimmed standard error.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(commandFailedStandardErrorSuffixConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command.Name, failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error renders the command name alongside the underlying cause.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, failure.Command.Name, failure.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// CommandEventObserver receives lifecycle callbacks while the executor runs external tools.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the runner is invoked.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the runner produced a result, regardless of exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the runner could not produce a result at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

var _ CommandEventObserver = noopCommandEventObserver{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}

// ShellExecutor coordinates command execution with logging and event notifications.
type ShellExecutor struct {
	logger               *zap.Logger
	commandRunner        CommandRunner
	humanReadableLogging bool
	messageFormatter     CommandMessageFormatter
	eventObserver        CommandEventObserver
}

// NewShellExecutor validates dependencies and builds a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, humanReadableLogging bool) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	return &ShellExecutor{
		logger:               logger,
		commandRunner:        commandRunner,
		humanReadableLogging: humanReadableLogging,
		messageFormatter:     CommandMessageFormatter{},
		eventObserver:        noopCommandEventObserver{},
	}, nil
}

// SetEventObserver registers an observer receiving command lifecycle notifications.
func (executor *ShellExecutor) SetEventObserver(observer CommandEventObserver) {
	if executor == nil {
		return
	}
	if observer == nil {
		executor.eventObserver = noopCommandEventObserver{}
		return
	}
	executor.eventObserver = observer
}

// ExecuteGit runs the git executable with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecuteGitHubCLI runs the GitHub CLI executable with the provided details.
func (executor *ShellExecutor) ExecuteGitHubCLI(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGitHub, Details: details})
}

// Execute runs an arbitrary supported executable with the provided command description.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.notifyStarted(command)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executionFailure := CommandExecutionError{Command: command, Cause: runError}
		executor.notifyExecutionFailed(command, runError)
		return ExecutionResult{}, executionFailure
	}

	executor.notifyCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	return executionResult, nil
}

func (executor *ShellExecutor) notifyStarted(command ShellCommand) {
	executor.eventObserver.CommandStarted(command)

	if executor.humanReadableLogging {
		if executor.messageFormatter.shouldLogStartMessage(command) {
			executor.logger.Info(executor.messageFormatter.BuildStartedMessage(command))
		}
		return
	}

	executor.logger.Info(
		structuredCommandStartedMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
}

func (executor *ShellExecutor) notifyCompleted(command ShellCommand, result ExecutionResult) {
	executor.eventObserver.CommandCompleted(command, result)

	if executor.humanReadableLogging {
		if result.ExitCode == 0 {
			executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
			return
		}
		executor.logger.Warn(executor.messageFormatter.BuildFailureMessage(command, result))
		return
	}

	if result.ExitCode == 0 {
		executor.logger.Info(
			structuredCommandCompletedMessageConstant,
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Int(logFieldExitCodeConstant, result.ExitCode),
		)
		return
	}

	executor.logger.Warn(
		structuredCommandFailedMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
		zap.String(logFieldStandardErrorConstant, strings.TrimSpace(result.StandardError)),
	)
}

func (executor *ShellExecutor) notifyExecutionFailed(command ShellCommand, failure error) {
	executor.eventObserver.CommandExecutionFailed(command, failure)

	if executor.humanReadableLogging {
		executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, failure))
		return
	}

	executor.logger.Error(
		structuredCommandUnexecutableMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Error(failure),
	)
}
