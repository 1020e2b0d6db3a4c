package doctor

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/execshell"
	"github.com/temirov/stamp/internal/githubcli"
	"github.com/temirov/stamp/internal/ui"
	"github.com/temirov/stamp/internal/utils"
)

const (
	commandUseConstant              = "doctor"
	commandShortDescriptionConstant = "Report availability of the tools setup relies on"
	commandLongDescriptionConstant  = "doctor probes for Git, the GitHub CLI, and the configured package manager, reports whether the GitHub CLI session is authenticated, and names the configuration source in use."

	toolAvailableStatusConstant   = "found"
	toolUnavailableStatusConstant = "not found"

	authenticatedNoteConstant         = "authenticated"
	unauthenticatedNoteConstant       = "not authenticated; run gh auth login"
	authenticationUnknownNoteConstant = "authentication state unknown"

	toolStatusLineTemplateConstant     = "%s: %s\n"
	toolStatusNoteLineTemplateConstant = "%s: %s (%s)\n"

	defaultPackageManagerNameConstant = "npm"

	configurationLabelConstant        = "configuration"
	embeddedConfigurationNoteConstant = "embedded defaults"

	gitFieldNameConstant                     = "git_available"
	hostingCLIFieldNameConstant              = "github_cli_available"
	packageManagerFieldNameConstant          = "package_manager_available"
	configurationSourceFieldNameConstant     = "configuration_source"
	probeCompletedMessageConstant            = "Tool probe completed"
	authenticationProbeFailedMessageConstant = "Unable to determine GitHub CLI authentication state"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ToolProbe reports whether an external executable can be resolved.
type ToolProbe interface {
	ToolAvailable(commandName execshell.CommandName) bool
}

// AuthenticationChecker reports whether the hosting CLI session is authenticated.
type AuthenticationChecker interface {
	CheckAuthentication(executionContext context.Context) (bool, error)
}

// GitHubCLIExecutor runs hosting CLI commands for the default authentication checker.
type GitHubCLIExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommandBuilder assembles the doctor cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     GitHubCLIExecutor
	Reporter                     ui.Reporter
	ToolProbe                    ToolProbe
	AuthenticationChecker        AuthenticationChecker
	PackageManagerProvider       func() string
	HumanReadableLoggingProvider func() bool
	CommandEventsObserver        execshell.CommandEventObserver
}

// Build constructs the doctor command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runDoctor,
	}
	return command, nil
}

func (builder *CommandBuilder) runDoctor(command *cobra.Command, _ []string) error {
	logger := builder.resolveLogger()

	reporter := builder.Reporter
	if reporter == nil {
		reporter = ui.NewWriterReporter(command.OutOrStdout())
	}

	toolProbe := builder.ToolProbe
	if toolProbe == nil {
		toolProbe = execshell.NewToolAvailabilityProbe()
	}

	packageManagerName := builder.resolvePackageManagerName()

	gitAvailable := toolProbe.ToolAvailable(execshell.CommandGit)
	reporter.Printf(toolStatusLineTemplateConstant, string(execshell.CommandGit), availabilityStatus(gitAvailable))

	hostingCLIAvailable := toolProbe.ToolAvailable(execshell.CommandGitHub)
	if hostingCLIAvailable {
		if reportError := builder.reportAuthenticationState(command.Context(), logger, reporter); reportError != nil {
			return reportError
		}
	} else {
		reporter.Printf(toolStatusLineTemplateConstant, string(execshell.CommandGitHub), toolUnavailableStatusConstant)
	}

	packageManagerAvailable := toolProbe.ToolAvailable(execshell.CommandName(packageManagerName))
	reporter.Printf(toolStatusLineTemplateConstant, packageManagerName, availabilityStatus(packageManagerAvailable))

	configurationSource := describeConfigurationSource(command.Context())
	reporter.Printf(toolStatusLineTemplateConstant, configurationLabelConstant, configurationSource)

	logger.Info(probeCompletedMessageConstant,
		zap.Bool(gitFieldNameConstant, gitAvailable),
		zap.Bool(hostingCLIFieldNameConstant, hostingCLIAvailable),
		zap.Bool(packageManagerFieldNameConstant, packageManagerAvailable),
		zap.String(configurationSourceFieldNameConstant, configurationSource),
	)
	return nil
}

func describeConfigurationSource(executionContext context.Context) string {
	configurationFilePath, configurationFilePathAvailable := utils.NewCommandContextAccessor().ConfigurationFilePath(executionContext)
	if configurationFilePathAvailable && len(strings.TrimSpace(configurationFilePath)) > 0 {
		return configurationFilePath
	}
	return embeddedConfigurationNoteConstant
}

func (builder *CommandBuilder) reportAuthenticationState(executionContext context.Context, logger *zap.Logger, reporter ui.Reporter) error {
	checker, checkerError := builder.resolveAuthenticationChecker(logger)
	if checkerError != nil {
		return checkerError
	}

	authenticated, authenticationError := checker.CheckAuthentication(executionContext)
	authenticationNote := unauthenticatedNoteConstant
	switch {
	case authenticationError != nil:
		logger.Warn(authenticationProbeFailedMessageConstant, zap.Error(authenticationError))
		authenticationNote = authenticationUnknownNoteConstant
	case authenticated:
		authenticationNote = authenticatedNoteConstant
	}

	reporter.Printf(toolStatusNoteLineTemplateConstant, string(execshell.CommandGitHub), toolAvailableStatusConstant, authenticationNote)
	return nil
}

func (builder *CommandBuilder) resolvePackageManagerName() string {
	if builder.PackageManagerProvider != nil {
		providedName := strings.TrimSpace(builder.PackageManagerProvider())
		if len(providedName) > 0 {
			return providedName
		}
	}
	return defaultPackageManagerNameConstant
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if logger := builder.LoggerProvider(); logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

func (builder *CommandBuilder) resolveAuthenticationChecker(logger *zap.Logger) (AuthenticationChecker, error) {
	if builder.AuthenticationChecker != nil {
		return builder.AuthenticationChecker, nil
	}

	executor := builder.Executor
	if executor == nil {
		commandRunner := execshell.NewOSCommandRunner()
		humanReadableLogging := false
		if builder.HumanReadableLoggingProvider != nil {
			humanReadableLogging = builder.HumanReadableLoggingProvider()
		}
		shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
		if creationError != nil {
			return nil, creationError
		}
		if builder.CommandEventsObserver != nil {
			shellExecutor.SetEventObserver(builder.CommandEventsObserver)
		}
		executor = shellExecutor
	}

	return githubcli.NewClient(executor)
}

func availabilityStatus(toolAvailable bool) string {
	if toolAvailable {
		return toolAvailableStatusConstant
	}
	return toolUnavailableStatusConstant
}
