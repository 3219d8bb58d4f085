package githubauth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/complykit/pycomply/internal/githubauth"
)

func environmentFromMap(environment map[string]string) githubauth.EnvironmentLookup {
	return func(key string) (string, bool) {
		value, exists := environment[key]
		return value, exists
	}
}

func commandAvailable(available bool) githubauth.CommandLocator {
	return func(executableName string) (string, error) {
		if available {
			return "/usr/bin/" + executableName, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestParseMethod(testInstance *testing.T) {
	testCases := []struct {
		name           string
		candidate      string
		expectedMethod githubauth.Method
		expectError    bool
	}{
		{name: "auto", candidate: "auto", expectedMethod: githubauth.MethodAutomatic},
		{name: "token", candidate: "token", expectedMethod: githubauth.MethodToken},
		{name: "gh", candidate: "gh", expectedMethod: githubauth.MethodGHCLI},
		{name: "unknown", candidate: "ssh", expectError: true},
		{name: "empty", candidate: "", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedMethod, parseError := githubauth.ParseMethod(testCase.candidate)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedMethod, parsedMethod)
		})
	}
}

func TestResolveCredential(testInstance *testing.T) {
	testCases := []struct {
		name               string
		method             githubauth.Method
		environment        map[string]string
		gitHubCLIAvailable bool
		expectedCredential githubauth.Credential
		expectedError      error
	}{
		{
			name:               "token_method_uses_github_token_first",
			method:             githubauth.MethodToken,
			environment:        map[string]string{"GITHUB_TOKEN": "primary", "GH_TOKEN": "secondary"},
			expectedCredential: githubauth.Credential{Method: githubauth.MethodToken, Token: "primary"},
		},
		{
			name:               "token_method_falls_back_to_gh_token",
			method:             githubauth.MethodToken,
			environment:        map[string]string{"GH_TOKEN": "secondary"},
			expectedCredential: githubauth.Credential{Method: githubauth.MethodToken, Token: "secondary"},
		},
		{
			name:          "token_method_without_token_fails",
			method:        githubauth.MethodToken,
			environment:   map[string]string{},
			expectedError: githubauth.ErrTokenNotFound,
		},
		{
			name:          "token_method_ignores_blank_values",
			method:        githubauth.MethodToken,
			environment:   map[string]string{"GITHUB_TOKEN": "   "},
			expectedError: githubauth.ErrTokenNotFound,
		},
		{
			name:               "gh_method_requires_executable",
			method:             githubauth.MethodGHCLI,
			environment:        map[string]string{},
			gitHubCLIAvailable: true,
			expectedCredential: githubauth.Credential{Method: githubauth.MethodGHCLI},
		},
		{
			name:          "gh_method_without_executable_fails",
			method:        githubauth.MethodGHCLI,
			environment:   map[string]string{"GITHUB_TOKEN": "unused"},
			expectedError: githubauth.ErrGitHubCLINotFound,
		},
		{
			name:               "automatic_prefers_token",
			method:             githubauth.MethodAutomatic,
			environment:        map[string]string{"GITHUB_TOKEN": "primary"},
			gitHubCLIAvailable: true,
			expectedCredential: githubauth.Credential{Method: githubauth.MethodToken, Token: "primary"},
		},
		{
			name:               "automatic_falls_back_to_gh_cli",
			method:             githubauth.MethodAutomatic,
			environment:        map[string]string{},
			gitHubCLIAvailable: true,
			expectedCredential: githubauth.Credential{Method: githubauth.MethodGHCLI},
		},
		{
			name:          "automatic_without_sources_fails",
			method:        githubauth.MethodAutomatic,
			environment:   map[string]string{},
			expectedError: githubauth.ErrNoAuthenticationSource,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			credential, resolveError := githubauth.ResolveCredential(
				testCase.method,
				environmentFromMap(testCase.environment),
				commandAvailable(testCase.gitHubCLIAvailable),
			)

			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, resolveError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedCredential, credential)
		})
	}
}
