package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const environmentAssignmentTemplateConstant = "%s=%s"

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command, capturing output unless the command
// inherits the parent process streams. Exit codes surface in the result
// rather than as errors.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), append([]string{}, command.Details.Arguments...)...)
	executable.Dir = command.Details.WorkingDirectory
	executable.Env = runner.buildEnvironment(command.Details.EnvironmentVariables)

	var standardOutputBuffer, standardErrorBuffer bytes.Buffer
	if command.Details.InheritStandardStreams {
		executable.Stdout = os.Stdout
		executable.Stderr = os.Stderr
		executable.Stdin = os.Stdin
	} else {
		executable.Stdout = &standardOutputBuffer
		executable.Stderr = &standardErrorBuffer
	}

	// Payloads such as secret values travel over stdin and take precedence
	// over inherited streams.
	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := executable.Run()

	result := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}

	if runError != nil {
		exitError := &exec.ExitError{}
		if !errors.As(runError, &exitError) {
			return ExecutionResult{}, runError
		}
		result.ExitCode = exitError.ExitCode()
	}

	return result, nil
}

// buildEnvironment merges extra variables onto the parent environment. A nil
// result keeps the parent environment untouched.
func (runner *OSCommandRunner) buildEnvironment(environmentVariables map[string]string) []string {
	if len(environmentVariables) == 0 {
		return nil
	}

	mergedEnvironment := append([]string{}, os.Environ()...)
	for environmentKey, environmentValue := range environmentVariables {
		mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentValue))
	}
	return mergedEnvironment
}
