package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/stamp/internal/execshell"
)

const (
	gitInitSubcommandConstant                   = "init"
	gitRevParseSubcommandConstant               = "rev-parse"
	gitWorkTreeFlagConstant                     = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant                    = "--abbrev-ref"
	gitHeadReferenceConstant                    = "HEAD"
	gitConfigSubcommandConstant                 = "config"
	gitConfigGetFlagConstant                    = "--get"
	gitRemoteSubcommandConstant                 = "remote"
	gitRemoteGetURLSubcommandConstant           = "get-url"
	gitRemoteAddSubcommandConstant              = "add"
	gitRemoteRemoveSubcommandConstant           = "remove"
	gitAddSubcommandConstant                    = "add"
	gitAllFlagConstant                          = "-A"
	gitCommitSubcommandConstant                 = "commit"
	gitMessageFlagConstant                      = "-m"
	gitPushSubcommandConstant                   = "push"
	gitSetUpstreamFlagConstant                  = "-u"
	workTreeAffirmativeOutputConstant           = "true"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	requiredValueMessageConstant                = "value is required"
	gitExecutorNotConfiguredMessageConstant     = "git executor not configured"
	workTreeInspectionErrorTemplateConstant     = "unable to inspect work tree: %w"
	initializationErrorTemplateConstant         = "unable to initialize repository: %w"
	configurationReadErrorTemplateConstant      = "unable to read configuration %s: %w"
	currentBranchErrorTemplateConstant          = "unable to determine current branch: %w"
	remoteLookupErrorTemplateConstant           = "unable to look up remote %s: %w"
	remoteAddErrorTemplateConstant              = "unable to add remote %s: %w"
	remoteRemoveErrorTemplateConstant           = "unable to remove remote %s: %w"
	stagingErrorTemplateConstant                = "unable to stage changes: %w"
	commitErrorTemplateConstant                 = "unable to create commit: %w"
	pushErrorTemplateConstant                   = "unable to push %s to %s: %w"
)

// GitExecutor runs git commands on behalf of the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)

// RepositoryManager performs git operations scoped to a repository path.
type RepositoryManager struct {
	gitExecutor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(gitExecutor GitExecutor) (*RepositoryManager, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{gitExecutor: gitExecutor}, nil
}

// IsWorkTree reports whether the path sits inside a git work tree.
// A failing probe means no repository; only execution failures surface as errors.
func (manager *RepositoryManager) IsWorkTree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitWorkTreeFlagConstant)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, fmt.Errorf(workTreeInspectionErrorTemplateConstant, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput) == workTreeAffirmativeOutputConstant, nil
}

// InitializeRepository creates a new repository at the path.
func (manager *RepositoryManager) InitializeRepository(executionContext context.Context, repositoryPath string) error {
	if _, executionError := manager.executeGit(executionContext, repositoryPath, gitInitSubcommandConstant); executionError != nil {
		return fmt.Errorf(initializationErrorTemplateConstant, executionError)
	}
	return nil
}

// ConfigurationValue reads a git configuration key, returning an empty string when the key is unset.
func (manager *RepositoryManager) ConfigurationValue(executionContext context.Context, repositoryPath string, configurationKey string) (string, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, gitConfigSubcommandConstant, gitConfigGetFlagConstant, configurationKey)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return "", nil
		}
		return "", fmt.Errorf(configurationReadErrorTemplateConstant, configurationKey, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CurrentBranch resolves the checked-out branch name.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// RemoteURL reads the URL of the named remote; the boolean reports whether the remote exists.
func (manager *RepositoryManager) RemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, bool, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath, gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return "", false, nil
		}
		return "", false, fmt.Errorf(remoteLookupErrorTemplateConstant, remoteName, executionError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), true, nil
}

// AddRemote registers a remote pointing at the provided URL.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	if _, executionError := manager.executeGit(executionContext, repositoryPath, gitRemoteSubcommandConstant, gitRemoteAddSubcommandConstant, remoteName, remoteURL); executionError != nil {
		return fmt.Errorf(remoteAddErrorTemplateConstant, remoteName, executionError)
	}
	return nil
}

// RemoveRemote deletes the named remote.
func (manager *RepositoryManager) RemoveRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	if _, executionError := manager.executeGit(executionContext, repositoryPath, gitRemoteSubcommandConstant, gitRemoteRemoveSubcommandConstant, remoteName); executionError != nil {
		return fmt.Errorf(remoteRemoveErrorTemplateConstant, remoteName, executionError)
	}
	return nil
}

// StageAll stages every pending change in the repository.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	if _, executionError := manager.executeGit(executionContext, repositoryPath, gitAddSubcommandConstant, gitAllFlagConstant); executionError != nil {
		return fmt.Errorf(stagingErrorTemplateConstant, executionError)
	}
	return nil
}

// CreateCommit records a commit with the provided message.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	if _, executionError := manager.executeGit(executionContext, repositoryPath, gitCommitSubcommandConstant, gitMessageFlagConstant, commitMessage); executionError != nil {
		return fmt.Errorf(commitErrorTemplateConstant, executionError)
	}
	return nil
}

// Push publishes the branch to the remote, optionally recording it as upstream.
func (manager *RepositoryManager) Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string, setUpstream bool) error {
	pushArguments := []string{gitPushSubcommandConstant}
	if setUpstream {
		pushArguments = append(pushArguments, gitSetUpstreamFlagConstant)
	}
	pushArguments = append(pushArguments, remoteName, branchName)

	if _, executionError := manager.executeGit(executionContext, repositoryPath, pushArguments...); executionError != nil {
		return fmt.Errorf(pushErrorTemplateConstant, branchName, remoteName, executionError)
	}
	return nil
}

func (manager *RepositoryManager) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: strings.TrimSpace(repositoryPath),
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant,
		},
	})
}
