package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitInitSubcommandNameConstant         = "init"
	gitRevParseSubcommandNameConstant     = "rev-parse"
	gitWorkTreeFlagConstant               = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant              = "--abbrev-ref"
	gitHeadReferenceConstant              = "HEAD"
	gitConfigSubcommandNameConstant       = "config"
	gitConfigGetFlagConstant              = "--get"
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteGetURLSubcommandNameConstant = "get-url"
	gitRemoteAddSubcommandNameConstant    = "add"
	gitRemoteRemoveSubcommandNameConstant = "remove"
	gitAddSubcommandNameConstant          = "add"
	gitCommitSubcommandNameConstant       = "commit"
	gitMessageFlagConstant                = "-m"
	gitPushSubcommandNameConstant         = "push"
)

const (
	gitInitStartTemplateConstant                       = "Initializing repository in %s"
	gitInitSuccessTemplateConstant                     = "Initialized repository in %s"
	gitInitFailureTemplateConstant                     = "Failed to initialize repository in %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant            = "Unable to initialize repository in %s: %s"
	gitWorkTreeStartTemplateConstant                   = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant                 = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant                 = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant        = "Could not analyze %s: %s"
	gitCurrentBranchStartTemplateConstant              = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant            = "Current branch in %s is %s"
	gitCurrentBranchDetachedSuccessTemplateConstant    = "%s is in a detached HEAD state"
	gitCurrentBranchFailureTemplateConstant            = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant   = "Unable to identify current branch in %s: %s"
	gitConfigLookupStartTemplateConstant               = "Reading Git configuration %s"
	gitConfigLookupSuccessTemplateConstant             = "Read Git configuration %s"
	gitConfigLookupFailureTemplateConstant             = "Git configuration %s is not set (exit code %d%s)"
	gitConfigLookupExecutionFailureTemplateConstant    = "Unable to read Git configuration %s: %s"
	gitRemoteLookupStartTemplateConstant               = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant             = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant             = "No %s remote configured for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplateConstant    = "Unable to read %s remote for %s: %s"
	gitRemoteAddStartTemplateConstant                  = "Adding %s remote for %s pointing to %s"
	gitRemoteAddSuccessTemplateConstant                = "%s remote for %s now points to %s"
	gitRemoteAddFailureTemplateConstant                = "Failed to add %s remote for %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplateConstant       = "Unable to add %s remote for %s: %s"
	gitRemoteRemoveStartTemplateConstant               = "Removing %s remote from %s"
	gitRemoteRemoveSuccessTemplateConstant             = "Removed %s remote from %s"
	gitRemoteRemoveFailureTemplateConstant             = "Failed to remove %s remote from %s (exit code %d%s)"
	gitRemoteRemoveExecutionFailureTemplateConstant    = "Unable to remove %s remote from %s: %s"
	gitAddStartTemplateConstant                        = "Staging %s in %s"
	gitAddSuccessTemplateConstant                      = "Staged %s in %s"
	gitAddFailureTemplateConstant                      = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant             = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant                     = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                   = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                   = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant          = "Unable to create commit in %s with message %q: %s"
	gitPushStartTemplateConstant                       = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant                     = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant                     = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant            = "Unable to push %s to %s from %s: %s"
	gitPushWithoutRefsStartTemplateConstant            = "Pushing to %s from %s"
	gitPushWithoutRefsSuccessTemplateConstant          = "Pushed to %s from %s"
	gitPushWithoutRefsFailureTemplateConstant          = "Failed to push to %s from %s (exit code %d%s)"
	gitPushWithoutRefsExecutionFailureTemplateConstant = "Unable to push to %s from %s: %s"
)

const (
	githubAuthSubcommandNameConstant          = "auth"
	githubAuthStatusSubcommandNameConstant    = "status"
	githubRepoSubcommandNameConstant          = "repo"
	githubRepoViewSubcommandNameConstant      = "view"
	githubRepoCreateSubcommandNameConstant    = "create"
	githubAPICommandNameConstant              = "api"
	githubSecretSubcommandNameConstant        = "secret"
	githubSecretSetSubcommandNameConstant     = "set"
	githubUserEndpointConstant                = "user"
	githubBranchesEndpointSubstringConstant   = "/branches/"
	githubProtectionEndpointSuffixConstant    = "/protection"
	githubRepositoryEndpointPrefixConstant    = "repos/"
	githubRepoViewIdentificationCountConstant = 2
)

const (
	githubAuthStatusStartTemplateConstant               = "Checking GitHub CLI authentication"
	githubAuthStatusSuccessTemplateConstant             = "GitHub CLI is authenticated"
	githubAuthStatusFailureTemplateConstant             = "GitHub CLI is not authenticated (exit code %d%s)"
	githubAuthStatusExecutionFailureTemplateConstant    = "Unable to check GitHub CLI authentication: %s"
	githubCurrentUserStartTemplateConstant              = "Resolving current GitHub account"
	githubCurrentUserSuccessTemplateConstant            = "Resolved current GitHub account"
	githubCurrentUserFailureTemplateConstant            = "Failed to resolve current GitHub account (exit code %d%s)"
	githubCurrentUserExecutionFailureTemplateConstant   = "Unable to resolve current GitHub account: %s"
	githubRepoViewStartTemplateConstant                 = "Retrieving repository details for %s"
	githubRepoViewSuccessTemplateConstant               = "Retrieved repository details for %s"
	githubRepoViewFailureTemplateConstant               = "Failed to retrieve repository details for %s (exit code %d%s)"
	githubRepoViewExecutionFailureTemplateConstant      = "Unable to retrieve repository details for %s: %s"
	githubRepoCreateStartTemplateConstant               = "Creating GitHub repository %s"
	githubRepoCreateSuccessTemplateConstant             = "Created GitHub repository %s"
	githubRepoCreateFailureTemplateConstant             = "Failed to create GitHub repository %s (exit code %d%s)"
	githubRepoCreateExecutionFailureTemplateConstant    = "Unable to create GitHub repository %s: %s"
	githubMergeSettingsStartTemplateConstant            = "Updating merge settings for %s"
	githubMergeSettingsSuccessTemplateConstant          = "Updated merge settings for %s"
	githubMergeSettingsFailureTemplateConstant          = "Failed to update merge settings for %s (exit code %d%s)"
	githubMergeSettingsExecutionFailureTemplateConstant = "Unable to update merge settings for %s: %s"
	githubProtectionStartTemplateConstant               = "Applying branch protection to %s on %s"
	githubProtectionSuccessTemplateConstant             = "Applied branch protection to %s on %s"
	githubProtectionFailureTemplateConstant             = "Failed to apply branch protection to %s on %s (exit code %d%s)"
	githubProtectionExecutionFailureTemplateConstant    = "Unable to apply branch protection to %s on %s: %s"
	githubSecretSetStartTemplateConstant                = "Storing repository secret %s for %s"
	githubSecretSetSuccessTemplateConstant              = "Stored repository secret %s for %s"
	githubSecretSetFailureTemplateConstant              = "Failed to store repository secret %s for %s (exit code %d%s)"
	githubSecretSetExecutionFailureTemplateConstant     = "Unable to store repository secret %s for %s: %s"
)

const (
	installerInstallSubcommandNameConstant  = "install"
	installerCleanInstallSubcommandConstant = "ci"
)

const (
	installerStartTemplateConstant            = "Installing dependencies with %s in %s"
	installerSuccessTemplateConstant          = "Installed dependencies with %s in %s"
	installerFailureTemplateConstant          = "Failed to install dependencies with %s in %s (exit code %d%s)"
	installerExecutionFailureTemplateConstant = "Unable to install dependencies with %s in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// shouldLogStartMessage suppresses start messages for probe-style lookups whose outcome is the interesting part.
func (formatter CommandMessageFormatter) shouldLogStartMessage(command ShellCommand) bool {
	if command.Name != CommandGitHub {
		return true
	}
	if formatter.isGitHubRepoViewCommand(command.Details.Arguments) {
		return false
	}
	return true
}

func (formatter CommandMessageFormatter) isGitHubRepoViewCommand(arguments []string) bool {
	if len(arguments) < githubRepoViewIdentificationCountConstant {
		return false
	}
	primaryArgument := strings.TrimSpace(arguments[0])
	secondaryArgument := strings.TrimSpace(arguments[1])
	return primaryArgument == githubRepoSubcommandNameConstant && secondaryArgument == githubRepoViewSubcommandNameConstant
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.describeInstallerMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitInitSubcommandNameConstant:
		return formatter.describeGitInitMessage(command, result, failure, stage)
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitInitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitInitStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitInitSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitInitFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitInitExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbbrevRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			trimmedBranch := strings.TrimSpace(result.StandardOutput)
			if len(trimmedBranch) == 0 || trimmedBranch == gitHeadReferenceConstant {
				return fmt.Sprintf(gitCurrentBranchDetachedSuccessTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, trimmedBranch)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(gitCurrentBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	configurationKey := formatter.argumentAfter(command.Details.Arguments, gitConfigGetFlagConstant)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigLookupStartTemplateConstant, configurationKey)
	case messageStageSuccess:
		return fmt.Sprintf(gitConfigLookupSuccessTemplateConstant, configurationKey)
	case messageStageFailure:
		return fmt.Sprintf(gitConfigLookupFailureTemplateConstant, configurationKey, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitConfigLookupExecutionFailureTemplateConstant, configurationKey, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	remoteSubcommand := strings.TrimSpace(arguments[1])
	remoteName := formatter.argumentAt(arguments, 2)

	switch remoteSubcommand {
	case gitRemoteGetURLSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, strings.TrimSpace(result.StandardOutput))
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(gitRemoteLookupExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	case gitRemoteAddSubcommandNameConstant:
		remoteURL := formatter.argumentAt(arguments, 3)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, workingDirectory, remoteURL)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, workingDirectory, remoteURL)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(gitRemoteAddExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	case gitRemoteRemoveSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteRemoveStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteRemoveSuccessTemplateConstant, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteRemoveFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(gitRemoteRemoveExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	stagingTarget := formatter.argumentAt(command.Details.Arguments, 1)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, stagingTarget, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, stagingTarget, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, stagingTarget, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, stagingTarget, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.argumentAfter(command.Details.Arguments, gitMessageFlagConstant)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	positionalArguments := formatter.positionalArguments(command.Details.Arguments[1:])

	if len(positionalArguments) >= 2 {
		remoteName := positionalArguments[0]
		referenceName := positionalArguments[1]
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitPushStartTemplateConstant, referenceName, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitPushSuccessTemplateConstant, referenceName, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitPushFailureTemplateConstant, referenceName, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(gitPushExecutionFailureTemplateConstant, referenceName, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	remoteName := fallbackUnknownValueLabelConstant
	if len(positionalArguments) >= 1 {
		remoteName = positionalArguments[0]
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPushWithoutRefsStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushWithoutRefsSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPushWithoutRefsFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitPushWithoutRefsExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[0])
	switch subcommand {
	case githubAuthSubcommandNameConstant:
		return formatter.describeGitHubAuthMessage(command, result, failure, stage)
	case githubRepoSubcommandNameConstant:
		return formatter.describeGitHubRepoMessage(command, result, failure, stage)
	case githubAPICommandNameConstant:
		return formatter.describeGitHubAPIMessage(command, result, failure, stage)
	case githubSecretSubcommandNameConstant:
		return formatter.describeGitHubSecretMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAuthMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, githubAuthStatusSubcommandNameConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	switch stage {
	case messageStageStart:
		return githubAuthStatusStartTemplateConstant
	case messageStageSuccess:
		return githubAuthStatusSuccessTemplateConstant
	case messageStageFailure:
		return fmt.Sprintf(githubAuthStatusFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(githubAuthStatusExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitHubRepoMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	repoSubcommand := strings.TrimSpace(arguments[1])
	repositoryLabel := formatter.argumentAt(arguments, 2)

	switch repoSubcommand {
	case githubRepoViewSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubRepoViewStartTemplateConstant, repositoryLabel)
		case messageStageSuccess:
			return fmt.Sprintf(githubRepoViewSuccessTemplateConstant, repositoryLabel)
		case messageStageFailure:
			return fmt.Sprintf(githubRepoViewFailureTemplateConstant, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(githubRepoViewExecutionFailureTemplateConstant, repositoryLabel, formatter.describeFailure(failure))
		}
	case githubRepoCreateSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubRepoCreateStartTemplateConstant, repositoryLabel)
		case messageStageSuccess:
			return fmt.Sprintf(githubRepoCreateSuccessTemplateConstant, repositoryLabel)
		case messageStageFailure:
			return fmt.Sprintf(githubRepoCreateFailureTemplateConstant, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(githubRepoCreateExecutionFailureTemplateConstant, repositoryLabel, formatter.describeFailure(failure))
		}
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAPIMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	endpoint := formatter.argumentAt(command.Details.Arguments, 1)

	if endpoint == githubUserEndpointConstant {
		switch stage {
		case messageStageStart:
			return githubCurrentUserStartTemplateConstant
		case messageStageSuccess:
			return githubCurrentUserSuccessTemplateConstant
		case messageStageFailure:
			return fmt.Sprintf(githubCurrentUserFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(githubCurrentUserExecutionFailureTemplateConstant, formatter.describeFailure(failure))
		}
	}

	if strings.Contains(endpoint, githubBranchesEndpointSubstringConstant) && strings.HasSuffix(endpoint, githubProtectionEndpointSuffixConstant) {
		repositoryLabel, branchName := formatter.splitProtectionEndpoint(endpoint)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubProtectionStartTemplateConstant, branchName, repositoryLabel)
		case messageStageSuccess:
			return fmt.Sprintf(githubProtectionSuccessTemplateConstant, branchName, repositoryLabel)
		case messageStageFailure:
			return fmt.Sprintf(githubProtectionFailureTemplateConstant, branchName, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(githubProtectionExecutionFailureTemplateConstant, branchName, repositoryLabel, formatter.describeFailure(failure))
		}
	}

	if strings.HasPrefix(endpoint, githubRepositoryEndpointPrefixConstant) {
		repositoryLabel := strings.TrimPrefix(endpoint, githubRepositoryEndpointPrefixConstant)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubMergeSettingsStartTemplateConstant, repositoryLabel)
		case messageStageSuccess:
			return fmt.Sprintf(githubMergeSettingsSuccessTemplateConstant, repositoryLabel)
		case messageStageFailure:
			return fmt.Sprintf(githubMergeSettingsFailureTemplateConstant, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(githubMergeSettingsExecutionFailureTemplateConstant, repositoryLabel, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitHubSecretMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[1]) != githubSecretSetSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	secretName := formatter.argumentAt(arguments, 2)
	repositoryLabel := formatter.argumentAfter(arguments, "--repo")

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(githubSecretSetStartTemplateConstant, secretName, repositoryLabel)
	case messageStageSuccess:
		return fmt.Sprintf(githubSecretSetSuccessTemplateConstant, secretName, repositoryLabel)
	case messageStageFailure:
		return fmt.Sprintf(githubSecretSetFailureTemplateConstant, secretName, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(githubSecretSetExecutionFailureTemplateConstant, secretName, repositoryLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeInstallerMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[0])
	if subcommand != installerInstallSubcommandNameConstant && subcommand != installerCleanInstallSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(installerStartTemplateConstant, command.Name, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(installerSuccessTemplateConstant, command.Name, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(installerFailureTemplateConstant, command.Name, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(installerExecutionFailureTemplateConstant, command.Name, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) splitProtectionEndpoint(endpoint string) (string, string) {
	trimmedEndpoint := strings.TrimPrefix(endpoint, githubRepositoryEndpointPrefixConstant)
	trimmedEndpoint = strings.TrimSuffix(trimmedEndpoint, githubProtectionEndpointSuffixConstant)
	separatorIndex := strings.Index(trimmedEndpoint, githubBranchesEndpointSubstringConstant)
	if separatorIndex < 0 {
		return trimmedEndpoint, fallbackUnknownValueLabelConstant
	}
	repositoryLabel := trimmedEndpoint[:separatorIndex]
	branchName := trimmedEndpoint[separatorIndex+len(githubBranchesEndpointSubstringConstant):]
	return repositoryLabel, branchName
}

func (formatter CommandMessageFormatter) argumentAt(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return fallbackUnknownValueLabelConstant
	}
	trimmedArgument := strings.TrimSpace(arguments[index])
	if len(trimmedArgument) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedArgument
}

func (formatter CommandMessageFormatter) argumentAfter(arguments []string, flagName string) string {
	for argumentIndex, argument := range arguments {
		if strings.TrimSpace(argument) == flagName && argumentIndex+1 < len(arguments) {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		positional = append(positional, trimmedArgument)
	}
	return positional
}

func containsArgument(arguments []string, expectedArgument string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == expectedArgument {
			return true
		}
	}
	return false
}
