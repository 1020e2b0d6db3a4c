package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/execshell"
	"github.com/temirov/stamp/internal/githubcli"
	"github.com/temirov/stamp/internal/gitrepo"
	"github.com/temirov/stamp/internal/ui"
	"github.com/temirov/stamp/internal/utils"
	flagutils "github.com/temirov/stamp/internal/utils/flags"
	pathutils "github.com/temirov/stamp/internal/utils/path"
)

const (
	commandUseConstant              = "setup"
	commandShortDescriptionConstant = "Bootstrap the project template interactively"
	commandLongDescriptionConstant  = "setup prompts for project metadata, substitutes placeholder tokens in template files, installs dependencies, initializes Git, provisions the GitHub repository, and removes its own bootstrap entry points."

	workingDirectoryFlagNameConstant  = "dir"
	workingDirectoryFlagUsageConstant = "Working directory containing the template"
	defaultWorkingDirectoryConstant   = "."
	assumeYesFlagNameConstant         = "assume-yes"
	assumeYesFlagUsageConstant        = "Skip the confirmation prompt"

	setupExecutionErrorTemplateConstant    = "setup failed: %w"
	repositoryManagerCreationErrorTemplate = "unable to construct repository manager: %w"
	githubClientCreationErrorTemplate      = "unable to construct GitHub client: %w"

	setupCompletedMessageConstant  = "Setup completed"
	pushCompletedFieldNameConstant = "push_completed"
	protectionFieldNameConstant    = "protection_applied"
	secretFieldNameConstant        = "secret_configured"
)

var setupWorkingDirectoryExpander = pathutils.NewHomeExpander()

// WorkflowExecutor runs the setup workflow.
type WorkflowExecutor interface {
	Execute(executionContext context.Context, options WorkflowOptions) (WorkflowResult, error)
}

// WorkflowCommandExecutor bundles the executor facets the setup command wires together.
type WorkflowCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// ServiceProvider constructs a workflow executor from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) (WorkflowExecutor, error)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

type commandOptions struct {
	workingDirectory string
	configuration    CommandConfiguration
}

// CommandBuilder assembles the setup Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     WorkflowCommandExecutor
	Prompter                     Prompter
	Reporter                     ui.Reporter
	RepositoryManager            GitRepository
	GitHubClient                 GitHubOperations
	ToolProbe                    ToolProbe
	SecretResolver               SecretValueResolver
	ServiceProvider              ServiceProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	CommandEventsObserver        execshell.CommandEventObserver
}

// Build constructs the setup command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runSetup,
	}

	command.Flags().String(workingDirectoryFlagNameConstant, defaultWorkingDirectoryConstant, workingDirectoryFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), nil, assumeYesFlagNameConstant, "", false, assumeYesFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runSetup(command *cobra.Command, _ []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := builder.resolveRepositoryManager(executor)
	if managerError != nil {
		return fmt.Errorf(repositoryManagerCreationErrorTemplate, managerError)
	}

	githubClient, clientError := builder.resolveGitHubClient(executor)
	if clientError != nil {
		return fmt.Errorf(githubClientCreationErrorTemplate, clientError)
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())

	prompter := builder.Prompter
	if prompter == nil {
		consolePrompter := ui.NewConsolePrompter(command.InOrStdin(), outputWriter)
		defer func() { _ = consolePrompter.Close() }()
		prompter = consolePrompter
	}

	reporter := builder.Reporter
	if reporter == nil {
		reporter = ui.NewWriterReporter(outputWriter)
	}

	service, serviceError := builder.resolveService(ServiceDependencies{
		Logger:            logger,
		Prompter:          prompter,
		Reporter:          reporter,
		RepositoryManager: repositoryManager,
		GitHubClient:      githubClient,
		CommandExecutor:   executor,
		ToolProbe:         builder.ToolProbe,
		SecretResolver:    builder.SecretResolver,
	})
	if serviceError != nil {
		return serviceError
	}

	result, executionError := service.Execute(command.Context(), WorkflowOptions{
		WorkingDirectory: options.workingDirectory,
		Configuration:    options.configuration,
	})
	if executionError != nil {
		return fmt.Errorf(setupExecutionErrorTemplateConstant, executionError)
	}

	if !result.Cancelled {
		logger.Info(setupCompletedMessageConstant,
			zap.Bool(pushCompletedFieldNameConstant, result.PushCompleted),
			zap.Bool(protectionFieldNameConstant, result.ProtectionApplied),
			zap.Bool(secretFieldNameConstant, result.SecretConfigured),
		)
	}
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (commandOptions, error) {
	configuration := builder.resolveConfiguration()

	if len(configuration.DefaultBranch) == 0 {
		configuration.DefaultBranch = defaultBranchNameConstant
	}
	if len(configuration.RemoteName) == 0 {
		configuration.RemoteName = defaultRemoteNameConstant
	}
	if len(configuration.RemoteProtocol) == 0 {
		configuration.RemoteProtocol = defaultRemoteProtocolConstant
	}
	if len(configuration.PackageManager) == 0 {
		configuration.PackageManager = defaultPackageManagerConstant
	}
	if len(configuration.CommitMessage) == 0 {
		configuration.CommitMessage = defaultCommitMessageConstant
	}

	workingDirectory := defaultWorkingDirectoryConstant
	if command != nil {
		if flagValue, flagError := command.Flags().GetString(workingDirectoryFlagNameConstant); flagError == nil {
			trimmedValue := strings.TrimSpace(flagValue)
			if len(trimmedValue) > 0 {
				workingDirectory = trimmedValue
			}
		}
		if command.Flags().Changed(assumeYesFlagNameConstant) {
			flagValue, _ := command.Flags().GetBool(assumeYesFlagNameConstant)
			configuration.AssumeYes = flagValue
		}
	}
	workingDirectory = setupWorkingDirectoryExpander.Expand(workingDirectory)

	return commandOptions{workingDirectory: workingDirectory, configuration: configuration}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if logger := builder.LoggerProvider(); logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (WorkflowCommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

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
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveRepositoryManager(executor WorkflowCommandExecutor) (GitRepository, error) {
	if builder.RepositoryManager != nil {
		return builder.RepositoryManager, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

func (builder *CommandBuilder) resolveGitHubClient(executor WorkflowCommandExecutor) (GitHubOperations, error) {
	if builder.GitHubClient != nil {
		return builder.GitHubClient, nil
	}
	return githubcli.NewClient(executor)
}

func (builder *CommandBuilder) resolveService(dependencies ServiceDependencies) (WorkflowExecutor, error) {
	if builder.ServiceProvider != nil {
		return builder.ServiceProvider(dependencies)
	}
	return NewService(dependencies)
}
