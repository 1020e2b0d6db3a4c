package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/stamp/internal/execshell"
)

const (
	authSubcommandConstant                  = "auth"
	statusSubcommandConstant                = "status"
	repoSubcommandConstant                  = "repo"
	viewSubcommandConstant                  = "view"
	createSubcommandConstant                = "create"
	secretSubcommandConstant                = "secret"
	setSubcommandConstant                   = "set"
	apiSubcommandConstant                   = "api"
	jsonFlagConstant                        = "--json"
	repoFlagConstant                        = "--repo"
	publicVisibilityFlagConstant            = "--public"
	descriptionFlagConstant                 = "--description"
	sourceFlagConstant                      = "--source"
	pushFlagConstant                        = "--push"
	methodFlagConstant                      = "-X"
	inputFlagConstant                       = "--input"
	stdinReferenceConstant                  = "-"
	acceptHeaderFlagConstant                = "-H"
	acceptHeaderValueConstant               = "Accept: application/vnd.github+json"
	httpMethodPatchConstant                 = "PATCH"
	httpMethodPutConstant                   = "PUT"
	repositoryFieldNameConstant             = "repository"
	branchFieldNameConstant                 = "branch"
	secretNameFieldNameConstant             = "secret_name"
	secretValueFieldNameConstant            = "secret_value"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	currentUserEndpointConstant             = "user"
	repositoryEndpointTemplateConstant      = "repos/%s"
	protectionEndpointTemplateConstant      = "repos/%s/branches/%s/protection"
	repoViewJSONFieldsConstant              = "nameWithOwner"
	currentDirectorySourceConstant          = "."
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	payloadEncodingErrorTemplateConstant    = "%s payload encoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	branchNotFoundErrorTemplateConstant     = "branch %s not found on %s"
	reportedStatusPrefixConstant            = "(HTTP "
	reportedStatusSuffixConstant            = ")"
	notFoundFragmentConstant                = "not found"
	httpStatusNotFoundConstant              = 404
)

// Operation names surfaced in error values.
const (
	checkAuthenticationOperationNameConstant = OperationName("CheckAuthentication")
	resolveCurrentUserOperationNameConstant  = OperationName("ResolveCurrentUser")
	repositoryExistsOperationNameConstant    = OperationName("CheckRepositoryExists")
	createRepositoryOperationNameConstant    = OperationName("CreateRepository")
	updateMergeSettingsOperationNameConstant = OperationName("UpdateMergeSettings")
	applyProtectionOperationNameConstant     = OperationName("ApplyBranchProtection")
	setSecretOperationNameConstant           = OperationName("SetRepositorySecret")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// MergeSettings describes the merge-strategy switches applied to a repository.
type MergeSettings struct {
	AllowSquashMerge    bool
	AllowMergeCommit    bool
	AllowRebaseMerge    bool
	DeleteBranchOnMerge bool
	AllowAutoMerge      bool
}

// BranchProtectionRules describes the protection payload applied to a branch.
type BranchProtectionRules struct {
	StrictStatusChecks    bool
	RequiredCheckContexts []string
	EnforceAdmins         bool
	DismissStaleReviews   bool
	RequiredApprovals     int
	RequireLinearHistory  bool
	AllowForcePushes      bool
	AllowDeletions        bool
}

// RepositoryCreationOptions configures CreateRepositoryAndPush.
type RepositoryCreationOptions struct {
	Description     string
	SourceDirectory string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// BranchNotFoundError reports a protection update against a branch the remote does not have yet.
type BranchNotFoundError struct {
	Repository string
	Branch     string
}

// Error describes the missing branch.
func (notFoundError BranchNotFoundError) Error() string {
	return fmt.Sprintf(branchNotFoundErrorTemplateConstant, notFoundError.Branch, notFoundError.Repository)
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// CheckAuthentication reports whether the GitHub CLI holds valid credentials.
// An unauthenticated CLI is an answer, not an error; only execution failures surface.
func (client *Client) CheckAuthentication(executionContext context.Context) (bool, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{authSubcommandConstant, statusSubcommandConstant},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, OperationError{Operation: checkAuthenticationOperationNameConstant, Cause: executionError}
	}
	return true, nil
}

// ResolveCurrentUserLogin resolves the authenticated account's login via gh api user.
func (client *Client) ResolveCurrentUserLogin(executionContext context.Context) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{apiSubcommandConstant, currentUserEndpointConstant},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: resolveCurrentUserOperationNameConstant, Cause: executionError}
	}

	var response struct {
		Login string `json:"login"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return "", ResponseDecodingError{Operation: resolveCurrentUserOperationNameConstant, Cause: decodingError}
	}

	return strings.TrimSpace(response.Login), nil
}

// RepositoryExists probes the remote repository via gh repo view.
// A failing probe means the repository is absent or inaccessible; only execution failures surface as errors.
func (client *Client) RepositoryExists(executionContext context.Context, repository string) (bool, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return false, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, OperationError{Operation: repositoryExistsOperationNameConstant, Cause: executionError}
	}
	return true, nil
}

// CreateRepositoryAndPush creates a public remote repository from the local source and pushes its history.
func (client *Client) CreateRepositoryAndPush(executionContext context.Context, repository string, options RepositoryCreationOptions) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	creationArguments := []string{
		repoSubcommandConstant,
		createSubcommandConstant,
		repositoryIdentifier,
		publicVisibilityFlagConstant,
	}
	trimmedDescription := strings.TrimSpace(options.Description)
	if len(trimmedDescription) > 0 {
		creationArguments = append(creationArguments, descriptionFlagConstant, trimmedDescription)
	}
	creationArguments = append(creationArguments, sourceFlagConstant, currentDirectorySourceConstant, pushFlagConstant)

	commandDetails := execshell.CommandDetails{
		Arguments:        creationArguments,
		WorkingDirectory: strings.TrimSpace(options.SourceDirectory),
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: createRepositoryOperationNameConstant, Cause: executionError}
	}
	return nil
}

// UpdateMergeSettings patches the repository's merge-strategy switches via the REST API.
func (client *Client) UpdateMergeSettings(executionContext context.Context, repository string, settings MergeSettings) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payload := struct {
		AllowSquashMerge    bool `json:"allow_squash_merge"`
		AllowMergeCommit    bool `json:"allow_merge_commit"`
		AllowRebaseMerge    bool `json:"allow_rebase_merge"`
		DeleteBranchOnMerge bool `json:"delete_branch_on_merge"`
		AllowAutoMerge      bool `json:"allow_auto_merge"`
	}{
		AllowSquashMerge:    settings.AllowSquashMerge,
		AllowMergeCommit:    settings.AllowMergeCommit,
		AllowRebaseMerge:    settings.AllowRebaseMerge,
		DeleteBranchOnMerge: settings.DeleteBranchOnMerge,
		AllowAutoMerge:      settings.AllowAutoMerge,
	}

	payloadBytes, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return PayloadEncodingError{Operation: updateMergeSettingsOperationNameConstant, Cause: encodingError}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(repositoryEndpointTemplateConstant, repositoryIdentifier),
			methodFlagConstant,
			httpMethodPatchConstant,
			inputFlagConstant,
			stdinReferenceConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		StandardInput: payloadBytes,
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: updateMergeSettingsOperationNameConstant, Cause: executionError}
	}
	return nil
}

// ApplyBranchProtection puts the protection rules on the named branch via the REST API.
// A remote that does not know the branch yet yields BranchNotFoundError.
func (client *Client) ApplyBranchProtection(executionContext context.Context, repository string, branch string, rules BranchProtectionRules) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	branchName := strings.TrimSpace(branch)
	if len(branchName) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payloadBytes, encodingError := json.Marshal(buildProtectionPayload(rules))
	if encodingError != nil {
		return PayloadEncodingError{Operation: applyProtectionOperationNameConstant, Cause: encodingError}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(protectionEndpointTemplateConstant, repositoryIdentifier, branchName),
			methodFlagConstant,
			httpMethodPutConstant,
			inputFlagConstant,
			stdinReferenceConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		StandardInput: payloadBytes,
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		if isMissingTargetFailure(executionError) {
			return BranchNotFoundError{Repository: repositoryIdentifier, Branch: branchName}
		}
		return OperationError{Operation: applyProtectionOperationNameConstant, Cause: executionError}
	}
	return nil
}

// SetRepositorySecret stores the secret value under the name, delivering the value over stdin.
func (client *Client) SetRepositorySecret(executionContext context.Context, repository string, secretName string, secretValue []byte) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedSecretName := strings.TrimSpace(secretName)
	if len(trimmedSecretName) == 0 {
		return InvalidInputError{FieldName: secretNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(secretValue) == 0 {
		return InvalidInputError{FieldName: secretValueFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			secretSubcommandConstant,
			setSubcommandConstant,
			trimmedSecretName,
			repoFlagConstant,
			repositoryIdentifier,
		},
		StandardInput: secretValue,
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: setSecretOperationNameConstant, Cause: executionError}
	}
	return nil
}

func buildProtectionPayload(rules BranchProtectionRules) any {
	type statusCheckEntry struct {
		Context string `json:"context"`
	}
	type statusChecks struct {
		Strict bool               `json:"strict"`
		Checks []statusCheckEntry `json:"checks"`
	}
	type pullRequestReviews struct {
		DismissStaleReviews          bool `json:"dismiss_stale_reviews"`
		RequiredApprovingReviewCount int  `json:"required_approving_review_count"`
	}

	checks := make([]statusCheckEntry, 0, len(rules.RequiredCheckContexts))
	for _, checkContext := range rules.RequiredCheckContexts {
		checks = append(checks, statusCheckEntry{Context: checkContext})
	}

	return struct {
		RequiredStatusChecks       statusChecks       `json:"required_status_checks"`
		EnforceAdmins              bool               `json:"enforce_admins"`
		RequiredPullRequestReviews pullRequestReviews `json:"required_pull_request_reviews"`
		Restrictions               any                `json:"restrictions"`
		RequiredLinearHistory      bool               `json:"required_linear_history"`
		AllowForcePushes           bool               `json:"allow_force_pushes"`
		AllowDeletions             bool               `json:"allow_deletions"`
	}{
		RequiredStatusChecks: statusChecks{Strict: rules.StrictStatusChecks, Checks: checks},
		EnforceAdmins:        rules.EnforceAdmins,
		RequiredPullRequestReviews: pullRequestReviews{
			DismissStaleReviews:          rules.DismissStaleReviews,
			RequiredApprovingReviewCount: rules.RequiredApprovals,
		},
		Restrictions:          nil,
		RequiredLinearHistory: rules.RequireLinearHistory,
		AllowForcePushes:      rules.AllowForcePushes,
		AllowDeletions:        rules.AllowDeletions,
	}
}

// isMissingTargetFailure classifies a failed invocation as a 404-class miss.
// The CLI reports the HTTP status in its stderr tail; the message text is only
// consulted when no status is present.
func isMissingTargetFailure(executionError error) bool {
	var commandFailure execshell.CommandFailedError
	if !errors.As(executionError, &commandFailure) {
		return false
	}

	standardError := commandFailure.Result.StandardError
	if statusCode, statusFound := parseReportedHTTPStatus(standardError); statusFound {
		return statusCode == httpStatusNotFoundConstant
	}
	return strings.Contains(strings.ToLower(standardError), notFoundFragmentConstant)
}

func parseReportedHTTPStatus(standardError string) (int, bool) {
	prefixIndex := strings.LastIndex(standardError, reportedStatusPrefixConstant)
	if prefixIndex < 0 {
		return 0, false
	}

	statusSection := standardError[prefixIndex+len(reportedStatusPrefixConstant):]
	suffixIndex := strings.Index(statusSection, reportedStatusSuffixConstant)
	if suffixIndex < 0 {
		return 0, false
	}

	statusCode, parseError := strconv.Atoi(strings.TrimSpace(statusSection[:suffixIndex]))
	if parseError != nil {
		return 0, false
	}
	return statusCode, true
}
