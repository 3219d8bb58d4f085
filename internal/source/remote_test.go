package source_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complykit/pycomply/internal/execshell"
	"github.com/complykit/pycomply/internal/githubauth"
	"github.com/complykit/pycomply/internal/source"
)

const testRepositoryConstant = "acme/widget"

type stubGitHubExecutor struct {
	responses       map[string]execshell.ExecutionResult
	executionError  error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitHubExecutor) ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.executionError != nil {
		return execshell.ExecutionResult{}, executor.executionError
	}
	response, configured := executor.responses[strings.Join(details.Arguments, " ")]
	if !configured {
		return execshell.ExecutionResult{}, errors.New("unexpected command")
	}
	return response, nil
}

func newRemoteSourceForTest(executor *stubGitHubExecutor, credential githubauth.Credential) *source.RemoteSource {
	return source.NewRemoteSource(testRepositoryConstant, executor, credential, time.Second, zap.NewNop())
}

func TestRemoteSourceFileExists(testInstance *testing.T) {
	testCases := []struct {
		name           string
		commandOutput  string
		executionError error
		expectedExists bool
	}{
		{name: "entry_name_returned", commandOutput: "README.md\n", expectedExists: true},
		{name: "null_output", commandOutput: "null\n", expectedExists: false},
		{name: "empty_output", commandOutput: "", expectedExists: false},
		{name: "command_failure", executionError: errors.New("gh api failed"), expectedExists: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitHubExecutor{
				responses: map[string]execshell.ExecutionResult{
					"api /repos/acme/widget/contents/README.md --jq .name": {StandardOutput: testCase.commandOutput},
				},
				executionError: testCase.executionError,
			}

			repositorySource := newRemoteSourceForTest(executor, githubauth.Credential{})
			require.Equal(testInstance, testCase.expectedExists, repositorySource.FileExists(context.Background(), "README.md"))
		})
	}
}

func TestRemoteSourceReadFile(testInstance *testing.T) {
	executor := &stubGitHubExecutor{
		responses: map[string]execshell.ExecutionResult{
			"api /repos/acme/widget/contents/pyproject.toml --header Accept: application/vnd.github.raw": {
				StandardOutput: sampleManifestConstant,
			},
		},
	}

	repositorySource := newRemoteSourceForTest(executor, githubauth.Credential{})

	manifestContent, manifestFound := repositorySource.ReadFile(context.Background(), "pyproject.toml")
	require.True(testInstance, manifestFound)
	require.Equal(testInstance, sampleManifestConstant, manifestContent)
}

func TestRemoteSourceLoadConfiguration(testInstance *testing.T) {
	executor := &stubGitHubExecutor{
		responses: map[string]execshell.ExecutionResult{
			"api /repos/acme/widget/contents/pyproject.toml --header Accept: application/vnd.github.raw": {
				StandardOutput: sampleManifestConstant,
			},
		},
	}

	repositorySource := newRemoteSourceForTest(executor, githubauth.Credential{})

	document := repositorySource.LoadConfiguration(context.Background())
	declaredVersion, versionFound := document.StringValue("project", "requires-python")
	require.True(testInstance, versionFound)
	require.Equal(testInstance, ">=3.13", declaredVersion)
}

func TestRemoteSourceLoadConfigurationDegradesOnFailure(testInstance *testing.T) {
	executor := &stubGitHubExecutor{executionError: errors.New("network unavailable")}
	repositorySource := newRemoteSourceForTest(executor, githubauth.Credential{})

	document := repositorySource.LoadConfiguration(context.Background())
	require.True(testInstance, document.IsEmpty())
}

func TestRemoteSourceListDirectory(testInstance *testing.T) {
	executor := &stubGitHubExecutor{
		responses: map[string]execshell.ExecutionResult{
			"api /repos/acme/widget/contents/.github/workflows --jq .[].name": {
				StandardOutput: "Ruff.yml\nTests.yml\nnull\n",
			},
		},
	}

	repositorySource := newRemoteSourceForTest(executor, githubauth.Credential{})

	entryNames := repositorySource.ListDirectory(context.Background(), ".github/workflows")
	require.Equal(testInstance, []string{"Ruff.yml", "Tests.yml"}, entryNames)
}

func TestRemoteSourceRepositoryTopics(testInstance *testing.T) {
	testCases := []struct {
		name            string
		commandOutput   string
		executionError  error
		expectedTopics  []string
		expectAvailable bool
	}{
		{
			name:            "topics_present",
			commandOutput:   `{"name":"widget","topics":["python-lib","tooling"]}`,
			expectedTopics:  []string{"python-lib", "tooling"},
			expectAvailable: true,
		},
		{
			name:            "no_topics_field",
			commandOutput:   `{"name":"widget"}`,
			expectAvailable: true,
		},
		{name: "command_failure", executionError: errors.New("gh api failed")},
		{name: "malformed_response", commandOutput: "not-json"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitHubExecutor{
				responses: map[string]execshell.ExecutionResult{
					"api /repos/acme/widget": {StandardOutput: testCase.commandOutput},
				},
				executionError: testCase.executionError,
			}

			repositorySource := newRemoteSourceForTest(executor, githubauth.Credential{})

			topics, topicsAvailable := repositorySource.RepositoryTopics(context.Background())
			require.Equal(testInstance, testCase.expectAvailable, topicsAvailable)
			require.Equal(testInstance, testCase.expectedTopics, topics)
		})
	}
}

func TestRemoteSourceInjectsTokenEnvironment(testInstance *testing.T) {
	executor := &stubGitHubExecutor{
		responses: map[string]execshell.ExecutionResult{
			"api /repos/acme/widget/contents/README.md --jq .name": {StandardOutput: "README.md"},
		},
	}

	credential := githubauth.Credential{Method: githubauth.MethodToken, Token: "secret-token"}
	repositorySource := newRemoteSourceForTest(executor, credential)
	repositorySource.FileExists(context.Background(), "README.md")

	require.Len(testInstance, executor.recordedDetails, 1)
	require.Equal(testInstance, "secret-token", executor.recordedDetails[0].EnvironmentVariables["GH_TOKEN"])
}

func TestRemoteSourceTimeoutYieldsAbsence(testInstance *testing.T) {
	blockingExecutor := &contextWaitingExecutor{}
	repositorySource := source.NewRemoteSource(testRepositoryConstant, blockingExecutor, githubauth.Credential{}, 10*time.Millisecond, zap.NewNop())

	require.False(testInstance, repositorySource.FileExists(context.Background(), "README.md"))
}

type contextWaitingExecutor struct{}

func (executor *contextWaitingExecutor) ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	<-executionContext.Done()
	return execshell.ExecutionResult{}, executionContext.Err()
}
