package setup

import (
	"context"

	"github.com/temirov/stamp/internal/execshell"
	"github.com/temirov/stamp/internal/githubcli"
)

// Prompter collects interactive answers during the setup workflow.
type Prompter interface {
	Ask(question string, defaultValue string) (string, error)
	Confirm(question string) (bool, error)
}

// CommandExecutor exposes the subset of shell execution used by the setup command.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// GitRepository exposes repository-level git operations used by the setup workflow.
type GitRepository interface {
	IsWorkTree(executionContext context.Context, repositoryPath string) (bool, error)
	InitializeRepository(executionContext context.Context, repositoryPath string) error
	ConfigurationValue(executionContext context.Context, repositoryPath string, configurationKey string) (string, error)
	CurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	RemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, bool, error)
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	RemoveRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	StageAll(executionContext context.Context, repositoryPath string) error
	CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error
	Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string, setUpstream bool) error
}

// GitHubOperations exposes the hosting CLI operations used by the setup workflow.
type GitHubOperations interface {
	CheckAuthentication(executionContext context.Context) (bool, error)
	ResolveCurrentUserLogin(executionContext context.Context) (string, error)
	RepositoryExists(executionContext context.Context, repository string) (bool, error)
	CreateRepositoryAndPush(executionContext context.Context, repository string, options githubcli.RepositoryCreationOptions) error
	UpdateMergeSettings(executionContext context.Context, repository string, settings githubcli.MergeSettings) error
	ApplyBranchProtection(executionContext context.Context, repository string, branch string, rules githubcli.BranchProtectionRules) error
	SetRepositorySecret(executionContext context.Context, repository string, secretName string, secretValue []byte) error
}

// ToolProbe reports whether an external executable can be resolved.
type ToolProbe interface {
	ToolAvailable(commandName execshell.CommandName) bool
}
