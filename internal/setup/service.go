package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/execshell"
	"github.com/temirov/stamp/internal/githubcli"
	"github.com/temirov/stamp/internal/gitrepo"
	"github.com/temirov/stamp/internal/manifest"
	"github.com/temirov/stamp/internal/placeholders"
	"github.com/temirov/stamp/internal/ui"
)

const (
	workingDirectoryFieldNameConstant = "working_directory"
	branchFieldNameConstant           = "branch"
	remoteFieldNameConstant           = "remote"
	packageManagerFieldNameConstant   = "package_manager"
	commitMessageFieldNameConstant    = "commit_message"
	repositoryFieldNameConstant       = "repository"
	secretNameFieldNameConstant       = "secret_name"
	cleanupPathFieldNameConstant      = "cleanup_path"
	manifestNameFieldNameConstant     = "manifest_name"
	packageNameFieldNameConstant      = "package_name"

	requiredValueMessageConstant          = "value must be provided"
	prompterMissingMessageConstant        = "prompter not configured"
	repositoryManagerMissingMessage       = "repository manager not configured"
	gitHubClientMissingMessageConstant    = "GitHub client not configured"
	commandExecutorMissingMessageConstant = "command executor not configured"

	installArgumentConstant = "install"

	cancellationMessageConstant         = "Setup cancelled.\n"
	hostingCLIMissingHintConstant       = "GitHub CLI not found; skipping repository provisioning.\n"
	unauthenticatedHintConstant         = "GitHub CLI is not authenticated; run gh auth login, then push manually.\n"
	protectionBlockedTemplateConstant   = "Branch %s not found on %s; push code first.\n"
	substitutionErrorTemplateConstant   = "placeholder substitution failed: %w"
	manifestFinalizeErrorTemplate       = "manifest finalization failed: %w"
	dependencyInstallErrorTemplate      = "dependency installation failed: %w"
	workTreeProbeErrorTemplateConstant  = "unable to inspect repository state: %w"
	repositoryInitializeErrorTemplate   = "unable to initialize repository: %w"
	stageChangesErrorTemplateConstant   = "unable to stage project files: %w"
	createCommitErrorTemplateConstant   = "unable to create setup commit: %w"
	manifestNameMismatchMessageConstant = "Manifest name does not match the package name"
	packageManagerMissingMessage        = "Package manager not found; skipping dependency installation"
	gitMissingMessageConstant           = "Git not found; skipping repository initialization"
	commitSkippedMessageConstant        = "Setup commit not created"
	authenticationProbeFailedMessage    = "Unable to determine GitHub CLI authentication state"
	existenceCheckFailedMessageConstant = "Unable to determine whether the repository exists"
	remoteLookupFailedMessageConstant   = "Unable to inspect the configured remote"
	remoteRemoveFailedMessageConstant   = "Unable to remove the pre-existing remote"
	remoteProtocolInvalidMessage        = "Unsupported remote protocol configured"
	remoteAddFailedMessageConstant      = "Unable to add the repository remote"
	branchLookupFailedMessageConstant   = "Unable to determine the current branch"
	repositoryCreationFailedMessage     = "Unable to create the remote repository"
	pushFailedMessageConstant           = "Unable to push to the remote repository"
	mergeSettingsFailedMessageConstant  = "Unable to update merge settings"
	protectionFailedMessageConstant     = "Unable to apply branch protection"
	secretSourceInvalidMessageConstant  = "Secret source configuration is invalid"
	secretResolveFailedMessageConstant  = "Unable to resolve the secret value"
	secretUnavailableMessageConstant    = "Secret value not present; skipping secret registration"
	secretRegistrationFailedMessage     = "Unable to register the repository secret"
	bootstrapRemovedMessageConstant     = "Removed bootstrap entry point"
	bootstrapRemoveFailedMessage        = "Unable to remove bootstrap entry point"
)

// InvalidInputError describes workflow option validation failures.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", inputError.FieldName, inputError.Message)
}

// Sentinel errors reported during service construction.
var (
	ErrPrompterNotConfigured          = errors.New(prompterMissingMessageConstant)
	ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessage)
	ErrGitHubClientNotConfigured      = errors.New(gitHubClientMissingMessageConstant)
	ErrCommandExecutorNotConfigured   = errors.New(commandExecutorMissingMessageConstant)
)

// ServiceDependencies describes required collaborators for the setup workflow.
type ServiceDependencies struct {
	Logger            *zap.Logger
	Prompter          Prompter
	Reporter          ui.Reporter
	RepositoryManager GitRepository
	GitHubClient      GitHubOperations
	CommandExecutor   CommandExecutor
	ToolProbe         ToolProbe
	SecretResolver    SecretValueResolver
}

// WorkflowOptions configures one setup run.
type WorkflowOptions struct {
	WorkingDirectory string
	Configuration    CommandConfiguration
}

// WorkflowResult captures the observable outcomes of a setup run.
type WorkflowResult struct {
	Cancelled             bool
	Answers               AnswerSet
	SubstitutionOutcomes  []placeholders.FileOutcome
	ManifestOutcome       manifest.FinalizeOutcome
	InstallCompleted      bool
	RepositoryInitialized bool
	CommitCreated         bool
	RemoteRepositoryReady bool
	PushCompleted         bool
	ProtectionApplied     bool
	ProtectionBlocked     bool
	SecretConfigured      bool
	RemovedBootstrapFiles []string
	SummaryLines          []string
}

type toolCapabilities struct {
	gitAvailable            bool
	hostingCLIAvailable     bool
	packageManagerAvailable bool
}

// Service orchestrates the one-time bootstrap workflow.
type Service struct {
	logger              *zap.Logger
	prompter            Prompter
	reporter            ui.Reporter
	repositoryManager   GitRepository
	gitHubClient        GitHubOperations
	commandExecutor     CommandExecutor
	toolProbe           ToolProbe
	secretResolver      SecretValueResolver
	placeholderRewriter *placeholders.Rewriter
	manifestFinalizer   *manifest.Finalizer
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.GitHubClient == nil {
		return nil, ErrGitHubClientNotConfigured
	}
	if dependencies.CommandExecutor == nil {
		return nil, ErrCommandExecutorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = ui.NewWriterReporter(nil)
	}
	toolProbe := dependencies.ToolProbe
	if toolProbe == nil {
		toolProbe = execshell.NewToolAvailabilityProbe()
	}
	secretResolver := dependencies.SecretResolver
	if secretResolver == nil {
		secretResolver = NewSecretValueResolver(nil, nil)
	}

	service := &Service{
		logger:              logger,
		prompter:            dependencies.Prompter,
		reporter:            reporter,
		repositoryManager:   dependencies.RepositoryManager,
		gitHubClient:        dependencies.GitHubClient,
		commandExecutor:     dependencies.CommandExecutor,
		toolProbe:           toolProbe,
		secretResolver:      secretResolver,
		placeholderRewriter: placeholders.NewRewriter(logger),
		manifestFinalizer:   manifest.NewFinalizer(logger),
	}

	return service, nil
}

// Execute performs the setup workflow and renders the completion summary.
// A declined confirmation returns a cancelled result with a nil error.
func (service *Service) Execute(executionContext context.Context, options WorkflowOptions) (WorkflowResult, error) {
	if validationError := service.validateOptions(options); validationError != nil {
		return WorkflowResult{}, validationError
	}
	configuration := options.Configuration

	capabilities := toolCapabilities{
		gitAvailable:            service.toolProbe.ToolAvailable(execshell.CommandGit),
		hostingCLIAvailable:     service.toolProbe.ToolAvailable(execshell.CommandGitHub),
		packageManagerAvailable: service.toolProbe.ToolAvailable(execshell.CommandName(configuration.PackageManager)),
	}

	answers, answersError := service.collectAnswers(executionContext, options, capabilities)
	if answersError != nil {
		return WorkflowResult{}, answersError
	}

	if !configuration.AssumeYes {
		confirmed, confirmError := service.confirmAnswers(answers)
		if confirmError != nil {
			return WorkflowResult{}, confirmError
		}
		if !confirmed {
			service.reporter.Printf(cancellationMessageConstant)
			return WorkflowResult{Cancelled: true, Answers: answers}, nil
		}
	}

	result := WorkflowResult{Answers: answers}

	substitutionOutcomes, substitutionError := service.placeholderRewriter.Apply(options.WorkingDirectory, configuration.TargetFiles, answers.ReplacementTable())
	if substitutionError != nil {
		return WorkflowResult{}, fmt.Errorf(substitutionErrorTemplateConstant, substitutionError)
	}
	result.SubstitutionOutcomes = substitutionOutcomes

	if finalizeError := service.finalizeManifest(options, answers, &result); finalizeError != nil {
		return WorkflowResult{}, finalizeError
	}

	if installError := service.installDependencies(executionContext, options, capabilities, &result); installError != nil {
		return WorkflowResult{}, installError
	}

	if repositoryError := service.prepareRepository(executionContext, options, capabilities, &result); repositoryError != nil {
		return WorkflowResult{}, repositoryError
	}

	service.provisionRemoteRepository(executionContext, options, answers, capabilities, &result)

	service.removeBootstrapFiles(options, &result)

	summary := BuildCompletionSummary(service.summaryInputs(configuration, answers, capabilities, result))
	summary.Render(service.reporter, summaryHeadingConstant)
	result.SummaryLines = summary.Lines()

	return result, nil
}

func (service *Service) validateOptions(options WorkflowOptions) error {
	if len(strings.TrimSpace(options.WorkingDirectory)) == 0 {
		return InvalidInputError{FieldName: workingDirectoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.Configuration.DefaultBranch)) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.Configuration.RemoteName)) == 0 {
		return InvalidInputError{FieldName: remoteFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.Configuration.PackageManager)) == 0 {
		return InvalidInputError{FieldName: packageManagerFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.Configuration.CommitMessage)) == 0 {
		return InvalidInputError{FieldName: commitMessageFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}

func (service *Service) finalizeManifest(options WorkflowOptions, answers AnswerSet, result *WorkflowResult) error {
	if len(options.Configuration.ManifestFile) == 0 {
		return nil
	}

	manifestPath := filepath.Join(options.WorkingDirectory, options.Configuration.ManifestFile)
	finalizeOutcome, finalizeError := service.manifestFinalizer.Finalize(manifestPath, answers.PackageName, options.Configuration.BootstrapScriptName)
	if finalizeError != nil {
		return fmt.Errorf(manifestFinalizeErrorTemplate, finalizeError)
	}
	result.ManifestOutcome = finalizeOutcome

	if !finalizeOutcome.Skipped && !finalizeOutcome.NameVerified {
		service.logger.Warn(manifestNameMismatchMessageConstant,
			zap.String(manifestNameFieldNameConstant, finalizeOutcome.ManifestName),
			zap.String(packageNameFieldNameConstant, answers.PackageName),
		)
	}
	return nil
}

func (service *Service) installDependencies(executionContext context.Context, options WorkflowOptions, capabilities toolCapabilities, result *WorkflowResult) error {
	if !capabilities.packageManagerAvailable {
		service.logger.Warn(packageManagerMissingMessage, zap.String(packageManagerFieldNameConstant, options.Configuration.PackageManager))
		return nil
	}

	_, installError := service.commandExecutor.Execute(executionContext, execshell.ShellCommand{
		Name: execshell.CommandName(options.Configuration.PackageManager),
		Details: execshell.CommandDetails{
			Arguments:              []string{installArgumentConstant},
			WorkingDirectory:       options.WorkingDirectory,
			InheritStandardStreams: true,
		},
	})
	if installError != nil {
		return fmt.Errorf(dependencyInstallErrorTemplate, installError)
	}

	result.InstallCompleted = true
	return nil
}

func (service *Service) prepareRepository(executionContext context.Context, options WorkflowOptions, capabilities toolCapabilities, result *WorkflowResult) error {
	if !capabilities.gitAvailable {
		service.logger.Warn(gitMissingMessageConstant)
		return nil
	}

	insideWorkTree, workTreeError := service.repositoryManager.IsWorkTree(executionContext, options.WorkingDirectory)
	if workTreeError != nil {
		return fmt.Errorf(workTreeProbeErrorTemplateConstant, workTreeError)
	}
	if !insideWorkTree {
		if initializeError := service.repositoryManager.InitializeRepository(executionContext, options.WorkingDirectory); initializeError != nil {
			return fmt.Errorf(repositoryInitializeErrorTemplate, initializeError)
		}
		result.RepositoryInitialized = true
	}

	if stageError := service.repositoryManager.StageAll(executionContext, options.WorkingDirectory); stageError != nil {
		return fmt.Errorf(stageChangesErrorTemplateConstant, stageError)
	}

	commitError := service.repositoryManager.CreateCommit(executionContext, options.WorkingDirectory, options.Configuration.CommitMessage)
	if commitError != nil {
		var commandFailure execshell.CommandFailedError
		if !errors.As(commitError, &commandFailure) {
			return fmt.Errorf(createCommitErrorTemplateConstant, commitError)
		}
		service.logger.Warn(commitSkippedMessageConstant, zap.Error(commitError))
		return nil
	}

	result.CommitCreated = true
	return nil
}

func (service *Service) provisionRemoteRepository(executionContext context.Context, options WorkflowOptions, answers AnswerSet, capabilities toolCapabilities, result *WorkflowResult) {
	if !capabilities.gitAvailable {
		return
	}
	if !capabilities.hostingCLIAvailable {
		service.reporter.Printf(hostingCLIMissingHintConstant)
		return
	}

	authenticated, authenticationError := service.gitHubClient.CheckAuthentication(executionContext)
	if authenticationError != nil {
		service.logger.Warn(authenticationProbeFailedMessage, zap.Error(authenticationError))
		return
	}
	if !authenticated {
		service.reporter.Printf(unauthenticatedHintConstant)
		return
	}

	repositoryReference := answers.RepositoryReference()
	repositoryExists, existenceError := service.gitHubClient.RepositoryExists(executionContext, repositoryReference)
	if existenceError != nil {
		service.logger.Warn(existenceCheckFailedMessageConstant, zap.String(repositoryFieldNameConstant, repositoryReference), zap.Error(existenceError))
		return
	}

	if repositoryExists {
		result.RemoteRepositoryReady = true
		service.pushToExistingRepository(executionContext, options, answers, result)
	} else {
		service.createRepositoryAndPush(executionContext, options, answers, result)
	}

	if result.PushCompleted {
		service.configureRemoteRepository(executionContext, options.Configuration, answers, result)
	}
}

func (service *Service) createRepositoryAndPush(executionContext context.Context, options WorkflowOptions, answers AnswerSet, result *WorkflowResult) {
	configuration := options.Configuration
	repositoryReference := answers.RepositoryReference()

	_, remotePresent, remoteLookupError := service.repositoryManager.RemoteURL(executionContext, options.WorkingDirectory, configuration.RemoteName)
	if remoteLookupError != nil {
		service.logger.Warn(remoteLookupFailedMessageConstant, zap.String(remoteFieldNameConstant, configuration.RemoteName), zap.Error(remoteLookupError))
	} else if remotePresent {
		if removeError := service.repositoryManager.RemoveRemote(executionContext, options.WorkingDirectory, configuration.RemoteName); removeError != nil {
			service.logger.Warn(remoteRemoveFailedMessageConstant, zap.String(remoteFieldNameConstant, configuration.RemoteName), zap.Error(removeError))
		}
	}

	creationError := service.gitHubClient.CreateRepositoryAndPush(executionContext, repositoryReference, githubcli.RepositoryCreationOptions{
		Description:     answers.Description,
		SourceDirectory: options.WorkingDirectory,
	})
	if creationError != nil {
		service.logger.Warn(repositoryCreationFailedMessage, zap.String(repositoryFieldNameConstant, repositoryReference), zap.Error(creationError))
		return
	}

	result.RemoteRepositoryReady = true
	result.PushCompleted = true
}

func (service *Service) pushToExistingRepository(executionContext context.Context, options WorkflowOptions, answers AnswerSet, result *WorkflowResult) {
	configuration := options.Configuration

	_, remotePresent, remoteLookupError := service.repositoryManager.RemoteURL(executionContext, options.WorkingDirectory, configuration.RemoteName)
	if remoteLookupError != nil {
		service.logger.Warn(remoteLookupFailedMessageConstant, zap.String(remoteFieldNameConstant, configuration.RemoteName), zap.Error(remoteLookupError))
		return
	}
	if !remotePresent {
		remoteProtocol, protocolError := gitrepo.ParseRemoteProtocol(configuration.RemoteProtocol)
		if protocolError != nil {
			service.logger.Warn(remoteProtocolInvalidMessage, zap.Error(protocolError))
			return
		}
		remoteAddress, formatError := gitrepo.FormatGitHubRemoteURL(remoteProtocol, answers.OwnerName, answers.RepositoryName)
		if formatError != nil {
			service.logger.Warn(remoteAddFailedMessageConstant, zap.Error(formatError))
			return
		}
		if addError := service.repositoryManager.AddRemote(executionContext, options.WorkingDirectory, configuration.RemoteName, remoteAddress); addError != nil {
			service.logger.Warn(remoteAddFailedMessageConstant, zap.String(remoteFieldNameConstant, configuration.RemoteName), zap.Error(addError))
			return
		}
	}

	branchName, branchError := service.repositoryManager.CurrentBranch(executionContext, options.WorkingDirectory)
	if branchError != nil {
		service.logger.Warn(branchLookupFailedMessageConstant, zap.Error(branchError))
		return
	}

	if pushError := service.repositoryManager.Push(executionContext, options.WorkingDirectory, configuration.RemoteName, branchName, true); pushError != nil {
		service.logger.Warn(pushFailedMessageConstant, zap.String(branchFieldNameConstant, branchName), zap.Error(pushError))
		return
	}

	result.PushCompleted = true
}

func (service *Service) configureRemoteRepository(executionContext context.Context, configuration CommandConfiguration, answers AnswerSet, result *WorkflowResult) {
	repositoryReference := answers.RepositoryReference()

	mergeError := service.gitHubClient.UpdateMergeSettings(executionContext, repositoryReference, githubcli.MergeSettings{
		AllowSquashMerge:    true,
		AllowMergeCommit:    false,
		AllowRebaseMerge:    false,
		DeleteBranchOnMerge: true,
		AllowAutoMerge:      true,
	})
	if mergeError != nil {
		service.logger.Warn(mergeSettingsFailedMessageConstant, zap.String(repositoryFieldNameConstant, repositoryReference), zap.Error(mergeError))
	}

	protectionError := service.gitHubClient.ApplyBranchProtection(executionContext, repositoryReference, configuration.DefaultBranch, githubcli.BranchProtectionRules{
		StrictStatusChecks:    true,
		RequiredCheckContexts: []string{configuration.RequiredCheckName},
		EnforceAdmins:         true,
		DismissStaleReviews:   true,
		RequiredApprovals:     0,
		RequireLinearHistory:  true,
		AllowForcePushes:      false,
		AllowDeletions:        false,
	})
	if protectionError != nil {
		var branchNotFound githubcli.BranchNotFoundError
		if errors.As(protectionError, &branchNotFound) {
			service.reporter.Printf(protectionBlockedTemplateConstant, configuration.DefaultBranch, repositoryReference)
			result.ProtectionBlocked = true
			return
		}
		service.logger.Warn(protectionFailedMessageConstant, zap.String(repositoryFieldNameConstant, repositoryReference), zap.Error(protectionError))
	} else {
		result.ProtectionApplied = true
	}

	service.registerSecret(executionContext, configuration, repositoryReference, result)
}

func (service *Service) registerSecret(executionContext context.Context, configuration CommandConfiguration, repositoryReference string, result *WorkflowResult) {
	if len(configuration.SecretName) == 0 || len(configuration.SecretSource) == 0 {
		return
	}

	secretSource, parseError := ParseSecretSource(configuration.SecretSource)
	if parseError != nil {
		service.logger.Warn(secretSourceInvalidMessageConstant, zap.Error(parseError))
		return
	}

	secretValue, secretFound, resolveError := service.secretResolver.ResolveSecret(secretSource)
	if resolveError != nil {
		service.logger.Warn(secretResolveFailedMessageConstant, zap.Error(resolveError))
		return
	}
	if !secretFound {
		service.logger.Info(secretUnavailableMessageConstant, zap.String(secretNameFieldNameConstant, configuration.SecretName))
		return
	}

	if secretError := service.gitHubClient.SetRepositorySecret(executionContext, repositoryReference, configuration.SecretName, []byte(secretValue)); secretError != nil {
		service.logger.Warn(secretRegistrationFailedMessage, zap.String(secretNameFieldNameConstant, configuration.SecretName), zap.Error(secretError))
		return
	}

	result.SecretConfigured = true
}

func (service *Service) removeBootstrapFiles(options WorkflowOptions, result *WorkflowResult) {
	for _, cleanupPath := range options.Configuration.CleanupPaths {
		fullPath := filepath.Join(options.WorkingDirectory, cleanupPath)
		removeError := os.Remove(fullPath)
		if removeError != nil {
			if errors.Is(removeError, fs.ErrNotExist) {
				continue
			}
			service.logger.Warn(bootstrapRemoveFailedMessage, zap.String(cleanupPathFieldNameConstant, fullPath), zap.Error(removeError))
			continue
		}
		service.logger.Info(bootstrapRemovedMessageConstant, zap.String(cleanupPathFieldNameConstant, fullPath))
		result.RemovedBootstrapFiles = append(result.RemovedBootstrapFiles, cleanupPath)
	}
}

func (service *Service) summaryInputs(configuration CommandConfiguration, answers AnswerSet, capabilities toolCapabilities, result WorkflowResult) SummaryInputs {
	remoteAddress := ""
	remoteProtocol, protocolError := gitrepo.ParseRemoteProtocol(configuration.RemoteProtocol)
	if protocolError == nil {
		formattedAddress, formatError := gitrepo.FormatGitHubRemoteURL(remoteProtocol, answers.OwnerName, answers.RepositoryName)
		if formatError == nil {
			remoteAddress = formattedAddress
		}
	}

	return SummaryInputs{
		RepositoryReference:   answers.RepositoryReference(),
		RemoteURL:             remoteAddress,
		RemoteName:            configuration.RemoteName,
		DefaultBranch:         configuration.DefaultBranch,
		RequiredCheckName:     configuration.RequiredCheckName,
		SecretName:            configuration.SecretName,
		PackageManager:        configuration.PackageManager,
		CommitMessage:         configuration.CommitMessage,
		GitAvailable:          capabilities.gitAvailable,
		InstallCompleted:      result.InstallCompleted,
		RemoteRepositoryReady: result.RemoteRepositoryReady,
		PushCompleted:         result.PushCompleted,
		ProtectionApplied:     result.ProtectionApplied,
		ProtectionBlocked:     result.ProtectionBlocked,
		SecretConfigured:      result.SecretConfigured,
	}
}
