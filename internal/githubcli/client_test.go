package githubcli_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/stamp/internal/execshell"
	"github.com/temirov/stamp/internal/githubcli"
)

const (
	testRepositoryIdentifierConstant          = "octocat/widget"
	testBranchNameConstant                    = "main"
	testRequiredCheckContextConstant          = "test"
	testSecretNameConstant                    = "NPM_TOKEN"
	testSecretValueConstant                   = "hunter2-token"
	testDescriptionConstant                   = "Widget library"
	testSourceDirectoryConstant               = "/workspace/widget"
	testCurrentUserLoginConstant              = "octocat"
	testAuthenticatedCaseNameConstant         = "authenticated"
	testUnauthenticatedCaseNameConstant       = "unauthenticated"
	testAuthExecutionFailureCaseNameConstant  = "execution_failure"
	testExistsCaseNameConstant                = "repository_present"
	testAbsentCaseNameConstant                = "repository_absent"
	testExistsValidationCaseNameConstant      = "repository_validation"
	testProtectionSuccessCaseNameConstant     = "protection_applied"
	testProtectionMissingBranchCaseName       = "branch_not_found_status"
	testProtectionMissingBranchTextCaseName   = "branch_not_found_message"
	testProtectionGenericFailureCaseName      = "protection_generic_failure"
	testProtectionBranchValidationCaseName    = "protection_branch_validation"
	testExpectedMergeSettingsPayloadConstant  = `{"allow_squash_merge":true,"allow_merge_commit":false,"allow_rebase_merge":false,"delete_branch_on_merge":true,"allow_auto_merge":true}`
	testExpectedProtectionPayloadConstant     = `{"required_status_checks":{"strict":true,"checks":[{"context":"test"}]},"enforce_admins":true,"required_pull_request_reviews":{"dismiss_stale_reviews":true,"required_approving_review_count":0},"restrictions":null,"required_linear_history":true,"allow_force_pushes":false,"allow_deletions":false}`
	testBranchNotFoundStandardErrorConstant   = "gh: Branch not found (HTTP 404)"
	testBranchNotFoundPlainMessageConstant    = "gh: Not Found"
	testProtectionForbiddenStandardErrorConst = "gh: Upgrade to GitHub Pro (HTTP 403)"
)

type stubGitHubExecutor struct {
	executeFunc     func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error)
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitHubExecutor) ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.executeFunc != nil {
		return executor.executeFunc(executionContext, details)
	}
	return execshell.ExecutionResult{}, nil
}

func commandFailureWithStandardError(standardError string) error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGitHub},
		Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: standardError},
	}
}

func TestNewClientValidation(testInstance *testing.T) {
	testInstance.Run("nil_executor", func(testInstance *testing.T) {
		client, creationError := githubcli.NewClient(nil)
		require.Error(testInstance, creationError)
		require.ErrorIs(testInstance, creationError, githubcli.ErrExecutorNotConfigured)
		require.Nil(testInstance, client)
	})
}

func TestCheckAuthentication(testInstance *testing.T) {
	testCases := []struct {
		name            string
		executor        *stubGitHubExecutor
		expectedOutcome bool
		expectError     bool
	}{
		{
			name:            testAuthenticatedCaseNameConstant,
			executor:        &stubGitHubExecutor{},
			expectedOutcome: true,
		},
		{
			name: testUnauthenticatedCaseNameConstant,
			executor: &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
				return execshell.ExecutionResult{}, commandFailureWithStandardError("You are not logged into any GitHub hosts.")
			}},
		},
		{
			name: testAuthExecutionFailureCaseNameConstant,
			executor: &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
				return execshell.ExecutionResult{}, execshell.CommandExecutionError{Command: execshell.ShellCommand{Name: execshell.CommandGitHub}, Cause: errors.New("gh missing")}
			}},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client, creationError := githubcli.NewClient(testCase.executor)
			require.NoError(testInstance, creationError)

			authenticated, authError := client.CheckAuthentication(context.Background())

			if testCase.expectError {
				require.Error(testInstance, authError)
				require.IsType(testInstance, githubcli.OperationError{}, authError)
				return
			}
			require.NoError(testInstance, authError)
			require.Equal(testInstance, testCase.expectedOutcome, authenticated)
			require.Equal(testInstance, []string{"auth", "status"}, testCase.executor.recordedDetails[0].Arguments)
		})
	}
}

func TestResolveCurrentUserLogin(testInstance *testing.T) {
	testCases := []struct {
		name          string
		executor      *stubGitHubExecutor
		expectedLogin string
		expectError   bool
		errorType     any
	}{
		{
			name: "login_resolved",
			executor: &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
				return execshell.ExecutionResult{StandardOutput: `{"login":"octocat","id":583231}`}, nil
			}},
			expectedLogin: testCurrentUserLoginConstant,
		},
		{
			name: "decode_failure",
			executor: &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
				return execshell.ExecutionResult{StandardOutput: "not-json"}, nil
			}},
			expectError: true,
			errorType:   githubcli.ResponseDecodingError{},
		},
		{
			name: "command_failure",
			executor: &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
				return execshell.ExecutionResult{}, commandFailureWithStandardError("HTTP 401: Bad credentials")
			}},
			expectError: true,
			errorType:   githubcli.OperationError{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client, creationError := githubcli.NewClient(testCase.executor)
			require.NoError(testInstance, creationError)

			login, resolutionError := client.ResolveCurrentUserLogin(context.Background())

			if testCase.expectError {
				require.Error(testInstance, resolutionError)
				require.IsType(testInstance, testCase.errorType, resolutionError)
				return
			}
			require.NoError(testInstance, resolutionError)
			require.Equal(testInstance, testCase.expectedLogin, login)
			require.Equal(testInstance, []string{"api", "user"}, testCase.executor.recordedDetails[0].Arguments)
		})
	}
}

func TestRepositoryExists(testInstance *testing.T) {
	testCases := []struct {
		name            string
		repository      string
		executor        *stubGitHubExecutor
		expectedOutcome bool
		expectError     bool
		errorType       any
	}{
		{
			name:            testExistsCaseNameConstant,
			repository:      testRepositoryIdentifierConstant,
			executor:        &stubGitHubExecutor{},
			expectedOutcome: true,
		},
		{
			name:       testAbsentCaseNameConstant,
			repository: testRepositoryIdentifierConstant,
			executor: &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
				return execshell.ExecutionResult{}, commandFailureWithStandardError("GraphQL: Could not resolve to a Repository")
			}},
		},
		{
			name:        testExistsValidationCaseNameConstant,
			repository:  "  ",
			executor:    &stubGitHubExecutor{},
			expectError: true,
			errorType:   githubcli.InvalidInputError{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client, creationError := githubcli.NewClient(testCase.executor)
			require.NoError(testInstance, creationError)

			repositoryPresent, probeError := client.RepositoryExists(context.Background(), testCase.repository)

			if testCase.expectError {
				require.Error(testInstance, probeError)
				require.IsType(testInstance, testCase.errorType, probeError)
				return
			}
			require.NoError(testInstance, probeError)
			require.Equal(testInstance, testCase.expectedOutcome, repositoryPresent)
		})
	}
}

func TestCreateRepositoryAndPushBuildsArguments(testInstance *testing.T) {
	executor := &stubGitHubExecutor{}
	client, creationError := githubcli.NewClient(executor)
	require.NoError(testInstance, creationError)

	creationOptions := githubcli.RepositoryCreationOptions{
		Description:     testDescriptionConstant,
		SourceDirectory: testSourceDirectoryConstant,
	}
	require.NoError(testInstance, client.CreateRepositoryAndPush(context.Background(), testRepositoryIdentifierConstant, creationOptions))

	require.Len(testInstance, executor.recordedDetails, 1)
	recordedDetails := executor.recordedDetails[0]
	require.Equal(testInstance, []string{
		"repo", "create", testRepositoryIdentifierConstant,
		"--public",
		"--description", testDescriptionConstant,
		"--source", ".", "--push",
	}, recordedDetails.Arguments)
	require.Equal(testInstance, testSourceDirectoryConstant, recordedDetails.WorkingDirectory)
}

func TestCreateRepositoryAndPushOmitsEmptyDescription(testInstance *testing.T) {
	executor := &stubGitHubExecutor{}
	client, creationError := githubcli.NewClient(executor)
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, client.CreateRepositoryAndPush(context.Background(), testRepositoryIdentifierConstant, githubcli.RepositoryCreationOptions{}))

	require.NotContains(testInstance, executor.recordedDetails[0].Arguments, "--description")
}

func TestUpdateMergeSettingsDeliversPayloadOverStandardInput(testInstance *testing.T) {
	executor := &stubGitHubExecutor{}
	client, creationError := githubcli.NewClient(executor)
	require.NoError(testInstance, creationError)

	mergeSettings := githubcli.MergeSettings{
		AllowSquashMerge:    true,
		DeleteBranchOnMerge: true,
		AllowAutoMerge:      true,
	}
	require.NoError(testInstance, client.UpdateMergeSettings(context.Background(), testRepositoryIdentifierConstant, mergeSettings))

	require.Len(testInstance, executor.recordedDetails, 1)
	recordedDetails := executor.recordedDetails[0]
	require.Equal(testInstance, "repos/"+testRepositoryIdentifierConstant, recordedDetails.Arguments[1])
	require.Contains(testInstance, recordedDetails.Arguments, "PATCH")
	require.Equal(testInstance, testExpectedMergeSettingsPayloadConstant, string(recordedDetails.StandardInput))
}

func TestApplyBranchProtection(testInstance *testing.T) {
	testCases := []struct {
		name        string
		branch      string
		executor    *stubGitHubExecutor
		expectError bool
		errorType   any
	}{
		{
			name:     testProtectionSuccessCaseNameConstant,
			branch:   testBranchNameConstant,
			executor: &stubGitHubExecutor{},
		},
		{
			name:   testProtectionMissingBranchCaseName,
			branch: testBranchNameConstant,
			executor: &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
				return execshell.ExecutionResult{}, commandFailureWithStandardError(testBranchNotFoundStandardErrorConstant)
			}},
			expectError: true,
			errorType:   githubcli.BranchNotFoundError{},
		},
		{
			name:   testProtectionMissingBranchTextCaseName,
			branch: testBranchNameConstant,
			executor: &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
				return execshell.ExecutionResult{}, commandFailureWithStandardError(testBranchNotFoundPlainMessageConstant)
			}},
			expectError: true,
			errorType:   githubcli.BranchNotFoundError{},
		},
		{
			name:   testProtectionGenericFailureCaseName,
			branch: testBranchNameConstant,
			executor: &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
				return execshell.ExecutionResult{}, commandFailureWithStandardError(testProtectionForbiddenStandardErrorConst)
			}},
			expectError: true,
			errorType:   githubcli.OperationError{},
		},
		{
			name:        testProtectionBranchValidationCaseName,
			branch:      " ",
			executor:    &stubGitHubExecutor{},
			expectError: true,
			errorType:   githubcli.InvalidInputError{},
		},
	}

	protectionRules := githubcli.BranchProtectionRules{
		StrictStatusChecks:    true,
		RequiredCheckContexts: []string{testRequiredCheckContextConstant},
		EnforceAdmins:         true,
		DismissStaleReviews:   true,
		RequiredApprovals:     0,
		RequireLinearHistory:  true,
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client, creationError := githubcli.NewClient(testCase.executor)
			require.NoError(testInstance, creationError)

			protectionError := client.ApplyBranchProtection(context.Background(), testRepositoryIdentifierConstant, testCase.branch, protectionRules)

			if testCase.expectError {
				require.Error(testInstance, protectionError)
				require.IsType(testInstance, testCase.errorType, protectionError)
				return
			}

			require.NoError(testInstance, protectionError)
			require.Len(testInstance, testCase.executor.recordedDetails, 1)
			recordedDetails := testCase.executor.recordedDetails[0]
			require.Equal(testInstance, "repos/octocat/widget/branches/main/protection", recordedDetails.Arguments[1])
			require.Contains(testInstance, recordedDetails.Arguments, "PUT")
			require.Equal(testInstance, testExpectedProtectionPayloadConstant, string(recordedDetails.StandardInput))
		})
	}
}

func TestSetRepositorySecretKeepsValueOutOfArguments(testInstance *testing.T) {
	executor := &stubGitHubExecutor{}
	client, creationError := githubcli.NewClient(executor)
	require.NoError(testInstance, creationError)

	secretError := client.SetRepositorySecret(context.Background(), testRepositoryIdentifierConstant, testSecretNameConstant, []byte(testSecretValueConstant))

	require.NoError(testInstance, secretError)
	require.Len(testInstance, executor.recordedDetails, 1)
	recordedDetails := executor.recordedDetails[0]
	require.Equal(testInstance, []string{"secret", "set", testSecretNameConstant, "--repo", testRepositoryIdentifierConstant}, recordedDetails.Arguments)
	require.Equal(testInstance, testSecretValueConstant, string(recordedDetails.StandardInput))
	require.NotContains(testInstance, recordedDetails.Arguments, testSecretValueConstant)
}

func TestSetRepositorySecretValidatesInputs(testInstance *testing.T) {
	client, creationError := githubcli.NewClient(&stubGitHubExecutor{})
	require.NoError(testInstance, creationError)

	missingValueError := client.SetRepositorySecret(context.Background(), testRepositoryIdentifierConstant, testSecretNameConstant, nil)
	require.IsType(testInstance, githubcli.InvalidInputError{}, missingValueError)

	missingNameError := client.SetRepositorySecret(context.Background(), testRepositoryIdentifierConstant, " ", []byte(testSecretValueConstant))
	require.IsType(testInstance, githubcli.InvalidInputError{}, missingNameError)
}
