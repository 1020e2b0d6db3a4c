package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/execshell"
	"github.com/temirov/stamp/internal/githubcli"
)

const (
	workflowTestPackageNameConstant         = "widget-kit"
	workflowTestScopedPackageNameConstant   = "@acme/widget-kit"
	workflowTestRepositoryNameConstant      = "widget-kit"
	workflowTestOwnerNameConstant           = "octocat"
	workflowTestDescriptionConstant         = "A tidy widget toolkit"
	workflowTestAuthorNameConstant          = "Octo Cat"
	workflowTestRepositoryReferenceConstant = "octocat/widget-kit"
	workflowTestRemoteURLConstant           = "git@github.com:octocat/widget-kit.git"
	workflowTestStaleRemoteURLConstant      = "git@github.com:octocat/old-widget.git"
	workflowTestBranchNameConstant          = "main"
	workflowTestSecretValueConstant         = "npm-publish-token"
	workflowTestConfiguredOwnerConstant     = "config-owner"
	workflowTestReviewLineConstant          = "Review the updated files and start building"

	workflowTestManifestTemplateConstant = `{
  // project metadata
  "name": "{{PACKAGE_NAME}}",
  "description": "{{DESCRIPTION}}",
  "scripts": {
    "setup": "bash scripts/setup.sh",
    "test": "vitest run",
  },
}
`
	workflowTestFinalizedManifestConstant = `{
  "description": "A tidy widget toolkit",
  "name": "widget-kit",
  "scripts": {
    "test": "vitest run"
  }
}
`
	workflowTestChangesetTemplateConstant = `{"changelog": ["@changesets/changelog-github", {"repo": "{{GITHUB_USERNAME}}/{{REPO_NAME}}"}]}
`
	workflowTestBootstrapScriptConstant = "#!/usr/bin/env bash\nnode scripts/setup.js\n"

	workflowTestOfflineSummaryConstant = `Next steps:
1. Create the octocat/widget-kit repository on GitHub and add the origin remote (git@github.com:octocat/widget-kit.git)
2. Push your code: git push -u origin main
3. Protect the main branch on GitHub and require the test check
4. Add the NPM_TOKEN repository secret on GitHub
5. Review the updated files and start building
`
)

type scriptedPrompter struct {
	answers          map[string]string
	confirmResponse  bool
	confirmError     error
	recordedDefaults map[string]string
	confirmQuestions []string
}

func (prompter *scriptedPrompter) Ask(question string, defaultValue string) (string, error) {
	if prompter.recordedDefaults == nil {
		prompter.recordedDefaults = map[string]string{}
	}
	prompter.recordedDefaults[question] = defaultValue
	if answer, exists := prompter.answers[question]; exists {
		return answer, nil
	}
	return defaultValue, nil
}

func (prompter *scriptedPrompter) Confirm(question string) (bool, error) {
	prompter.confirmQuestions = append(prompter.confirmQuestions, question)
	return prompter.confirmResponse, prompter.confirmError
}

type recordingReporter struct {
	output strings.Builder
}

func (reporter *recordingReporter) Printf(format string, args ...any) {
	fmt.Fprintf(&reporter.output, format, args...)
}

type recordingCommandExecutor struct {
	executionError   error
	executedCommands []execshell.ShellCommand
}

func (executor *recordingCommandExecutor) Execute(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.executedCommands = append(executor.executedCommands, command)
	if executor.executionError != nil {
		return execshell.ExecutionResult{}, executor.executionError
	}
	return execshell.ExecutionResult{}, nil
}

type pushInvocation struct {
	remoteName  string
	branchName  string
	setUpstream bool
}

type stubRepositoryManager struct {
	workTree            bool
	workTreeError       error
	initializeError     error
	initialized         bool
	configurationValues map[string]string
	currentBranch       string
	branchError         error
	remoteURL           string
	remotePresent       bool
	remoteLookupError   error
	addedRemotes        []string
	addRemoteError      error
	removedRemotes      []string
	removeRemoteError   error
	stageCalls          int
	stageError          error
	commitMessages      []string
	commitError         error
	pushInvocations     []pushInvocation
	pushError           error
}

func (manager *stubRepositoryManager) IsWorkTree(context.Context, string) (bool, error) {
	return manager.workTree, manager.workTreeError
}

func (manager *stubRepositoryManager) InitializeRepository(context.Context, string) error {
	if manager.initializeError != nil {
		return manager.initializeError
	}
	manager.initialized = true
	return nil
}

func (manager *stubRepositoryManager) ConfigurationValue(_ context.Context, _ string, configurationKey string) (string, error) {
	return manager.configurationValues[configurationKey], nil
}

func (manager *stubRepositoryManager) CurrentBranch(context.Context, string) (string, error) {
	return manager.currentBranch, manager.branchError
}

func (manager *stubRepositoryManager) RemoteURL(context.Context, string, string) (string, bool, error) {
	return manager.remoteURL, manager.remotePresent, manager.remoteLookupError
}

func (manager *stubRepositoryManager) AddRemote(_ context.Context, _ string, _ string, remoteURL string) error {
	if manager.addRemoteError != nil {
		return manager.addRemoteError
	}
	manager.addedRemotes = append(manager.addedRemotes, remoteURL)
	return nil
}

func (manager *stubRepositoryManager) RemoveRemote(_ context.Context, _ string, remoteName string) error {
	if manager.removeRemoteError != nil {
		return manager.removeRemoteError
	}
	manager.removedRemotes = append(manager.removedRemotes, remoteName)
	return nil
}

func (manager *stubRepositoryManager) StageAll(context.Context, string) error {
	manager.stageCalls++
	return manager.stageError
}

func (manager *stubRepositoryManager) CreateCommit(_ context.Context, _ string, commitMessage string) error {
	if manager.commitError != nil {
		return manager.commitError
	}
	manager.commitMessages = append(manager.commitMessages, commitMessage)
	return nil
}

func (manager *stubRepositoryManager) Push(_ context.Context, _ string, remoteName string, branchName string, setUpstream bool) error {
	if manager.pushError != nil {
		return manager.pushError
	}
	manager.pushInvocations = append(manager.pushInvocations, pushInvocation{
		remoteName:  remoteName,
		branchName:  branchName,
		setUpstream: setUpstream,
	})
	return nil
}

type protectionInvocation struct {
	repository string
	branch     string
	rules      githubcli.BranchProtectionRules
}

type secretInvocation struct {
	repository  string
	secretName  string
	secretValue string
}

type recordingGitHubOperations struct {
	authenticated         bool
	authenticationError   error
	authenticationChecks  int
	currentLogin          string
	loginError            error
	repositoryPresent     bool
	existenceError        error
	existenceChecks       int
	creationError         error
	createdRepositories   []string
	creationOptions       []githubcli.RepositoryCreationOptions
	mergeError            error
	mergeInvocations      []githubcli.MergeSettings
	protectionError       error
	protectionInvocations []protectionInvocation
	secretError           error
	secretInvocations     []secretInvocation
}

func (operations *recordingGitHubOperations) CheckAuthentication(context.Context) (bool, error) {
	operations.authenticationChecks++
	return operations.authenticated, operations.authenticationError
}

func (operations *recordingGitHubOperations) ResolveCurrentUserLogin(context.Context) (string, error) {
	return operations.currentLogin, operations.loginError
}

func (operations *recordingGitHubOperations) RepositoryExists(context.Context, string) (bool, error) {
	operations.existenceChecks++
	return operations.repositoryPresent, operations.existenceError
}

func (operations *recordingGitHubOperations) CreateRepositoryAndPush(_ context.Context, repository string, options githubcli.RepositoryCreationOptions) error {
	if operations.creationError != nil {
		return operations.creationError
	}
	operations.createdRepositories = append(operations.createdRepositories, repository)
	operations.creationOptions = append(operations.creationOptions, options)
	return nil
}

func (operations *recordingGitHubOperations) UpdateMergeSettings(_ context.Context, _ string, settings githubcli.MergeSettings) error {
	operations.mergeInvocations = append(operations.mergeInvocations, settings)
	return operations.mergeError
}

func (operations *recordingGitHubOperations) ApplyBranchProtection(_ context.Context, repository string, branch string, rules githubcli.BranchProtectionRules) error {
	operations.protectionInvocations = append(operations.protectionInvocations, protectionInvocation{
		repository: repository,
		branch:     branch,
		rules:      rules,
	})
	return operations.protectionError
}

func (operations *recordingGitHubOperations) SetRepositorySecret(_ context.Context, repository string, secretName string, secretValue []byte) error {
	if operations.secretError != nil {
		return operations.secretError
	}
	operations.secretInvocations = append(operations.secretInvocations, secretInvocation{
		repository:  repository,
		secretName:  secretName,
		secretValue: string(secretValue),
	})
	return nil
}

type stubToolProbe struct {
	unavailable map[execshell.CommandName]bool
}

func (probe *stubToolProbe) ToolAvailable(commandName execshell.CommandName) bool {
	return !probe.unavailable[commandName]
}

type stubSecretResolver struct {
	value           string
	available       bool
	resolveError    error
	receivedSources []SecretSourceConfiguration
}

func (resolver *stubSecretResolver) ResolveSecret(source SecretSourceConfiguration) (string, bool, error) {
	resolver.receivedSources = append(resolver.receivedSources, source)
	return resolver.value, resolver.available, resolver.resolveError
}

func makeCommandFailedError(message string) error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result: execshell.ExecutionResult{
			ExitCode:      1,
			StandardError: message,
		},
	}
}

type workflowFixture struct {
	prompter          *scriptedPrompter
	reporter          *recordingReporter
	repositoryManager *stubRepositoryManager
	gitHubOperations  *recordingGitHubOperations
	commandExecutor   *recordingCommandExecutor
	toolProbe         *stubToolProbe
	secretResolver    *stubSecretResolver
	workingDirectory  string
}

func newWorkflowFixture(testInstance *testing.T) *workflowFixture {
	return &workflowFixture{
		prompter: &scriptedPrompter{
			answers: map[string]string{
				packageNamePromptConstant:    workflowTestPackageNameConstant,
				repositoryNamePromptConstant: workflowTestRepositoryNameConstant,
				ownerNamePromptConstant:      workflowTestOwnerNameConstant,
				descriptionPromptConstant:    workflowTestDescriptionConstant,
				authorNamePromptConstant:     workflowTestAuthorNameConstant,
			},
			confirmResponse: true,
		},
		reporter: &recordingReporter{},
		repositoryManager: &stubRepositoryManager{
			currentBranch: workflowTestBranchNameConstant,
			configurationValues: map[string]string{
				gitAuthorConfigurationKeyConstant: workflowTestAuthorNameConstant,
			},
		},
		gitHubOperations: &recordingGitHubOperations{
			authenticated: true,
			currentLogin:  workflowTestOwnerNameConstant,
		},
		commandExecutor:  &recordingCommandExecutor{},
		toolProbe:        &stubToolProbe{unavailable: map[execshell.CommandName]bool{}},
		secretResolver:   &stubSecretResolver{value: workflowTestSecretValueConstant, available: true},
		workingDirectory: testInstance.TempDir(),
	}
}

func (fixture *workflowFixture) buildService(testInstance *testing.T) *Service {
	service, serviceError := NewService(ServiceDependencies{
		Logger:            zap.NewNop(),
		Prompter:          fixture.prompter,
		Reporter:          fixture.reporter,
		RepositoryManager: fixture.repositoryManager,
		GitHubClient:      fixture.gitHubOperations,
		CommandExecutor:   fixture.commandExecutor,
		ToolProbe:         fixture.toolProbe,
		SecretResolver:    fixture.secretResolver,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func (fixture *workflowFixture) workflowOptions() WorkflowOptions {
	return WorkflowOptions{
		WorkingDirectory: fixture.workingDirectory,
		Configuration:    DefaultCommandConfiguration(),
	}
}

func (fixture *workflowFixture) writeTemplateFiles(testInstance *testing.T) {
	manifestPath := filepath.Join(fixture.workingDirectory, defaultManifestFileConstant)
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte(workflowTestManifestTemplateConstant), 0o644))

	changesetPath := filepath.Join(fixture.workingDirectory, defaultChangesetConfigFileConstant)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(changesetPath), 0o755))
	require.NoError(testInstance, os.WriteFile(changesetPath, []byte(workflowTestChangesetTemplateConstant), 0o644))

	bootstrapPath := filepath.Join(fixture.workingDirectory, defaultCleanupPathConstant)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(bootstrapPath), 0o755))
	require.NoError(testInstance, os.WriteFile(bootstrapPath, []byte(workflowTestBootstrapScriptConstant), 0o755))
}

func TestNewServiceRequiresCollaborators(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)

	testCases := []struct {
		name          string
		dependencies  ServiceDependencies
		expectedError error
	}{
		{
			name: "missing_prompter",
			dependencies: ServiceDependencies{
				RepositoryManager: fixture.repositoryManager,
				GitHubClient:      fixture.gitHubOperations,
				CommandExecutor:   fixture.commandExecutor,
			},
			expectedError: ErrPrompterNotConfigured,
		},
		{
			name: "missing_repository_manager",
			dependencies: ServiceDependencies{
				Prompter:        fixture.prompter,
				GitHubClient:    fixture.gitHubOperations,
				CommandExecutor: fixture.commandExecutor,
			},
			expectedError: ErrRepositoryManagerNotConfigured,
		},
		{
			name: "missing_github_client",
			dependencies: ServiceDependencies{
				Prompter:          fixture.prompter,
				RepositoryManager: fixture.repositoryManager,
				CommandExecutor:   fixture.commandExecutor,
			},
			expectedError: ErrGitHubClientNotConfigured,
		},
		{
			name: "missing_command_executor",
			dependencies: ServiceDependencies{
				Prompter:          fixture.prompter,
				RepositoryManager: fixture.repositoryManager,
				GitHubClient:      fixture.gitHubOperations,
			},
			expectedError: ErrCommandExecutorNotConfigured,
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			service, serviceError := NewService(testCase.dependencies)
			require.Nil(subtest, service)
			require.ErrorIs(subtest, serviceError, testCase.expectedError)
		})
	}
}

func TestServiceExecuteValidatesOptions(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name              string
		mutateOptions     func(options *WorkflowOptions)
		expectedFieldName string
	}{
		{
			name:              "missing_working_directory",
			mutateOptions:     func(options *WorkflowOptions) { options.WorkingDirectory = "   " },
			expectedFieldName: workingDirectoryFieldNameConstant,
		},
		{
			name:              "missing_branch",
			mutateOptions:     func(options *WorkflowOptions) { options.Configuration.DefaultBranch = "" },
			expectedFieldName: branchFieldNameConstant,
		},
		{
			name:              "missing_remote",
			mutateOptions:     func(options *WorkflowOptions) { options.Configuration.RemoteName = "" },
			expectedFieldName: remoteFieldNameConstant,
		},
		{
			name:              "missing_package_manager",
			mutateOptions:     func(options *WorkflowOptions) { options.Configuration.PackageManager = "" },
			expectedFieldName: packageManagerFieldNameConstant,
		},
		{
			name:              "missing_commit_message",
			mutateOptions:     func(options *WorkflowOptions) { options.Configuration.CommitMessage = "" },
			expectedFieldName: commitMessageFieldNameConstant,
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			fixture := newWorkflowFixture(subtest)
			service := fixture.buildService(subtest)

			options := fixture.workflowOptions()
			testCase.mutateOptions(&options)

			_, executionError := service.Execute(context.Background(), options)

			var invalidInput InvalidInputError
			require.ErrorAs(subtest, executionError, &invalidInput)
			require.Equal(subtest, testCase.expectedFieldName, invalidInput.FieldName)
		})
	}
}

func TestServiceExecuteCompletesFullWorkflow(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.writeTemplateFiles(testInstance)
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.False(testInstance, result.Cancelled)
	require.Equal(testInstance, workflowTestPackageNameConstant, result.Answers.PackageName)
	require.True(testInstance, result.InstallCompleted)
	require.True(testInstance, result.RepositoryInitialized)
	require.True(testInstance, result.CommitCreated)
	require.True(testInstance, result.RemoteRepositoryReady)
	require.True(testInstance, result.PushCompleted)
	require.True(testInstance, result.ProtectionApplied)
	require.False(testInstance, result.ProtectionBlocked)
	require.True(testInstance, result.SecretConfigured)
	require.Equal(testInstance, []string{defaultCleanupPathConstant}, result.RemovedBootstrapFiles)
	require.Equal(testInstance, []string{workflowTestReviewLineConstant}, result.SummaryLines)

	finalizedManifest, manifestReadError := os.ReadFile(filepath.Join(fixture.workingDirectory, defaultManifestFileConstant))
	require.NoError(testInstance, manifestReadError)
	require.Equal(testInstance, workflowTestFinalizedManifestConstant, string(finalizedManifest))

	changesetContent, changesetReadError := os.ReadFile(filepath.Join(fixture.workingDirectory, defaultChangesetConfigFileConstant))
	require.NoError(testInstance, changesetReadError)
	require.Contains(testInstance, string(changesetContent), workflowTestRepositoryReferenceConstant)
	require.NotContains(testInstance, string(changesetContent), "{{")

	_, bootstrapStatError := os.Stat(filepath.Join(fixture.workingDirectory, defaultCleanupPathConstant))
	require.ErrorIs(testInstance, bootstrapStatError, fs.ErrNotExist)

	require.Len(testInstance, fixture.commandExecutor.executedCommands, 1)
	installCommand := fixture.commandExecutor.executedCommands[0]
	require.Equal(testInstance, execshell.CommandNpm, installCommand.Name)
	require.Equal(testInstance, []string{installArgumentConstant}, installCommand.Details.Arguments)
	require.Equal(testInstance, fixture.workingDirectory, installCommand.Details.WorkingDirectory)
	require.True(testInstance, installCommand.Details.InheritStandardStreams)

	require.True(testInstance, fixture.repositoryManager.initialized)
	require.Equal(testInstance, 1, fixture.repositoryManager.stageCalls)
	require.Equal(testInstance, []string{defaultCommitMessageConstant}, fixture.repositoryManager.commitMessages)
	require.Empty(testInstance, fixture.repositoryManager.removedRemotes)

	require.Equal(testInstance, []string{workflowTestRepositoryReferenceConstant}, fixture.gitHubOperations.createdRepositories)
	require.Equal(testInstance, githubcli.RepositoryCreationOptions{
		Description:     workflowTestDescriptionConstant,
		SourceDirectory: fixture.workingDirectory,
	}, fixture.gitHubOperations.creationOptions[0])

	require.Equal(testInstance, []githubcli.MergeSettings{{
		AllowSquashMerge:    true,
		AllowMergeCommit:    false,
		AllowRebaseMerge:    false,
		DeleteBranchOnMerge: true,
		AllowAutoMerge:      true,
	}}, fixture.gitHubOperations.mergeInvocations)

	require.Len(testInstance, fixture.gitHubOperations.protectionInvocations, 1)
	appliedProtection := fixture.gitHubOperations.protectionInvocations[0]
	require.Equal(testInstance, workflowTestRepositoryReferenceConstant, appliedProtection.repository)
	require.Equal(testInstance, workflowTestBranchNameConstant, appliedProtection.branch)
	require.Equal(testInstance, githubcli.BranchProtectionRules{
		StrictStatusChecks:    true,
		RequiredCheckContexts: []string{defaultRequiredCheckNameConstant},
		EnforceAdmins:         true,
		DismissStaleReviews:   true,
		RequiredApprovals:     0,
		RequireLinearHistory:  true,
		AllowForcePushes:      false,
		AllowDeletions:        false,
	}, appliedProtection.rules)

	require.Equal(testInstance, []secretInvocation{{
		repository:  workflowTestRepositoryReferenceConstant,
		secretName:  defaultSecretNameConstant,
		secretValue: workflowTestSecretValueConstant,
	}}, fixture.gitHubOperations.secretInvocations)
	require.Equal(testInstance, []SecretSourceConfiguration{{
		Type:      SecretSourceTypeEnvironment,
		Reference: defaultSecretNameConstant,
	}}, fixture.secretResolver.receivedSources)

	require.Equal(testInstance, filepath.Base(fixture.workingDirectory), fixture.prompter.recordedDefaults[packageNamePromptConstant])
	require.Equal(testInstance, workflowTestOwnerNameConstant, fixture.prompter.recordedDefaults[ownerNamePromptConstant])
	require.Equal(testInstance, workflowTestAuthorNameConstant, fixture.prompter.recordedDefaults[authorNamePromptConstant])

	reporterOutput := fixture.reporter.output.String()
	require.Contains(testInstance, reporterOutput, "Project configuration:")
	require.Contains(testInstance, reporterOutput, "Next steps:\n1. "+workflowTestReviewLineConstant+"\n")
}

func TestServiceExecuteCancelsWhenConfirmationDeclined(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.writeTemplateFiles(testInstance)
	fixture.prompter.confirmResponse = false
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.True(testInstance, result.Cancelled)
	require.Equal(testInstance, workflowTestPackageNameConstant, result.Answers.PackageName)
	require.Empty(testInstance, result.SummaryLines)
	require.Contains(testInstance, fixture.reporter.output.String(), "Setup cancelled.")

	manifestContent, manifestReadError := os.ReadFile(filepath.Join(fixture.workingDirectory, defaultManifestFileConstant))
	require.NoError(testInstance, manifestReadError)
	require.Equal(testInstance, workflowTestManifestTemplateConstant, string(manifestContent))

	_, bootstrapStatError := os.Stat(filepath.Join(fixture.workingDirectory, defaultCleanupPathConstant))
	require.NoError(testInstance, bootstrapStatError)

	require.Empty(testInstance, fixture.commandExecutor.executedCommands)
	require.Equal(testInstance, 0, fixture.repositoryManager.stageCalls)
	require.Equal(testInstance, 0, fixture.gitHubOperations.authenticationChecks)
}

func TestServiceExecuteDerivesRepositoryDefaultFromScopedPackage(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.prompter.answers[packageNamePromptConstant] = workflowTestScopedPackageNameConstant
	delete(fixture.prompter.answers, repositoryNamePromptConstant)
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, workflowTestRepositoryNameConstant, fixture.prompter.recordedDefaults[repositoryNamePromptConstant])
	require.Equal(testInstance, workflowTestRepositoryNameConstant, result.Answers.RepositoryName)
	require.Equal(testInstance, workflowTestScopedPackageNameConstant, result.Answers.PackageName)
}

func TestServiceExecuteSeedsOwnerDefaultFromGitConfiguration(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.gitHubOperations.loginError = errors.New("login unavailable")
	fixture.repositoryManager.configurationValues[gitOwnerConfigurationKeyConstant] = workflowTestConfiguredOwnerConstant
	service := fixture.buildService(testInstance)

	_, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, workflowTestConfiguredOwnerConstant, fixture.prompter.recordedDefaults[ownerNamePromptConstant])
}

func TestServiceExecuteSkipsInstallWhenPackageManagerMissing(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.toolProbe.unavailable[execshell.CommandNpm] = true
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.False(testInstance, result.InstallCompleted)
	require.Empty(testInstance, fixture.commandExecutor.executedCommands)
	require.Contains(testInstance, result.SummaryLines, "Install dependencies: npm install")
	require.True(testInstance, result.PushCompleted)
}

func TestServiceExecuteFailsWhenInstallCommandFails(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.commandExecutor.executionError = makeCommandFailedError("registry unreachable")
	service := fixture.buildService(testInstance)

	_, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "dependency installation failed")

	require.Equal(testInstance, 0, fixture.repositoryManager.stageCalls)
	require.Equal(testInstance, 0, fixture.gitHubOperations.authenticationChecks)
}

func TestServiceExecuteHandlesCommitOutcomes(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name        string
		commitError error
		expectError bool
	}{
		{
			name:        "tolerates_command_failure",
			commitError: makeCommandFailedError("nothing to commit"),
			expectError: false,
		},
		{
			name:        "fails_on_execution_error",
			commitError: errors.New("git crashed"),
			expectError: true,
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			fixture := newWorkflowFixture(subtest)
			fixture.repositoryManager.commitError = testCase.commitError
			service := fixture.buildService(subtest)

			result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
			if testCase.expectError {
				require.Error(subtest, executionError)
				require.Contains(subtest, executionError.Error(), "unable to create setup commit")
				return
			}

			require.NoError(subtest, executionError)
			require.False(subtest, result.CommitCreated)
			require.Len(subtest, fixture.gitHubOperations.createdRepositories, 1)
			require.True(subtest, result.PushCompleted)
		})
	}
}

func TestServiceExecuteSkipsProvisioningWithoutHostingCLI(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.toolProbe.unavailable[execshell.CommandGitHub] = true
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, 0, fixture.gitHubOperations.authenticationChecks)
	require.False(testInstance, result.RemoteRepositoryReady)
	require.False(testInstance, result.PushCompleted)

	reporterOutput := fixture.reporter.output.String()
	require.Contains(testInstance, reporterOutput, "GitHub CLI not found; skipping repository provisioning.")
	require.Contains(testInstance, reporterOutput, workflowTestOfflineSummaryConstant)
}

func TestServiceExecuteSkipsProvisioningWhenUnauthenticated(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.gitHubOperations.authenticated = false
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, 1, fixture.gitHubOperations.authenticationChecks)
	require.Equal(testInstance, 0, fixture.gitHubOperations.existenceChecks)
	require.False(testInstance, result.PushCompleted)
	require.Contains(testInstance, fixture.reporter.output.String(), "run gh auth login")
}

func TestServiceExecutePushesToExistingRepository(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.gitHubOperations.repositoryPresent = true
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.True(testInstance, result.RemoteRepositoryReady)
	require.True(testInstance, result.PushCompleted)
	require.Empty(testInstance, fixture.gitHubOperations.createdRepositories)
	require.Equal(testInstance, []string{workflowTestRemoteURLConstant}, fixture.repositoryManager.addedRemotes)
	require.Equal(testInstance, []pushInvocation{{
		remoteName:  defaultRemoteNameConstant,
		branchName:  workflowTestBranchNameConstant,
		setUpstream: true,
	}}, fixture.repositoryManager.pushInvocations)
	require.Len(testInstance, fixture.gitHubOperations.mergeInvocations, 1)
}

func TestServiceExecuteReplacesStaleRemoteBeforeCreation(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.repositoryManager.remoteURL = workflowTestStaleRemoteURLConstant
	fixture.repositoryManager.remotePresent = true
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, []string{defaultRemoteNameConstant}, fixture.repositoryManager.removedRemotes)
	require.Equal(testInstance, []string{workflowTestRepositoryReferenceConstant}, fixture.gitHubOperations.createdRepositories)
	require.True(testInstance, result.PushCompleted)
}

func TestServiceExecuteBlocksProtectionOnMissingBranch(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.gitHubOperations.protectionError = githubcli.BranchNotFoundError{
		Repository: workflowTestRepositoryReferenceConstant,
		Branch:     workflowTestBranchNameConstant,
	}
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.True(testInstance, result.ProtectionBlocked)
	require.False(testInstance, result.ProtectionApplied)
	require.False(testInstance, result.SecretConfigured)
	require.Empty(testInstance, fixture.gitHubOperations.secretInvocations)
	require.Empty(testInstance, fixture.secretResolver.receivedSources)
	require.Contains(testInstance, fixture.reporter.output.String(), "Branch main not found on octocat/widget-kit; push code first.")
	require.Contains(testInstance, result.SummaryLines, "Push the main branch, then protect it on GitHub")
	require.Contains(testInstance, result.SummaryLines, "Add the NPM_TOKEN repository secret on GitHub")
}

func TestServiceExecuteSkipsSecretWhenValueUnavailable(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.secretResolver.available = false
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.False(testInstance, result.SecretConfigured)
	require.Empty(testInstance, fixture.gitHubOperations.secretInvocations)
	require.Contains(testInstance, result.SummaryLines, "Add the NPM_TOKEN repository secret on GitHub")
}

func TestServiceExecuteContinuesWithoutGit(testInstance *testing.T) {
	testInstance.Parallel()

	fixture := newWorkflowFixture(testInstance)
	fixture.toolProbe.unavailable[execshell.CommandGit] = true
	service := fixture.buildService(testInstance)

	result, executionError := service.Execute(context.Background(), fixture.workflowOptions())
	require.NoError(testInstance, executionError)

	require.True(testInstance, result.InstallCompleted)
	require.False(testInstance, result.RepositoryInitialized)
	require.Equal(testInstance, 0, fixture.repositoryManager.stageCalls)
	require.Equal(testInstance, 0, fixture.gitHubOperations.authenticationChecks)

	expectedSummaryLines := []string{
		`Install Git, then run: git init && git add -A && git commit -m "chore: configure project from template"`,
		"Create the octocat/widget-kit repository on GitHub and add the origin remote (git@github.com:octocat/widget-kit.git)",
		"Push your code: git push -u origin main",
		"Protect the main branch on GitHub and require the test check",
		"Add the NPM_TOKEN repository secret on GitHub",
		workflowTestReviewLineConstant,
	}
	require.Equal(testInstance, expectedSummaryLines, result.SummaryLines)
}
