// Package githubauth resolves GitHub credentials from the environment or the
// authenticated gh CLI session.
package githubauth

import (
	"errors"
	"fmt"
	"strings"
)

// Method selects how GitHub API requests authenticate.
type Method string

// Supported authentication methods.
const (
	MethodAutomatic Method = "auto"
	MethodToken     Method = "token"
	MethodGHCLI     Method = "gh"
)

// Environment variable names inspected for a GitHub token, in priority order.
const (
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubCLIToken = "GH_TOKEN"
)

var tokenPreference = []string{
	EnvGitHubToken,
	EnvGitHubCLIToken,
}

const gitHubCLIExecutableNameConstant = "gh"

// Resolution failure modes surfaced to the command layer.
var (
	ErrTokenNotFound          = errors.New("token authentication requested but GITHUB_TOKEN/GH_TOKEN not found")
	ErrGitHubCLINotFound      = errors.New("gh CLI authentication requested but gh command not found")
	ErrNoAuthenticationSource = errors.New("no authentication available; set GITHUB_TOKEN or install gh CLI")
)

// Credential captures the resolved authentication method and token, if any.
// A credential with an empty Token relies on the gh CLI's stored session.
type Credential struct {
	Method Method
	Token  string
}

// EnvironmentLookup reports the value of an environment variable.
type EnvironmentLookup func(key string) (string, bool)

// CommandLocator reports the path of an executable, mirroring exec.LookPath.
type CommandLocator func(executableName string) (string, error)

// ParseMethod validates a user-supplied authentication method string.
func ParseMethod(candidate string) (Method, error) {
	switch Method(candidate) {
	case MethodAutomatic, MethodToken, MethodGHCLI:
		return Method(candidate), nil
	default:
		return "", fmt.Errorf("invalid authentication method %q (expected auto, token, or gh)", candidate)
	}
}

// ResolveCredential resolves a usable credential for the requested method.
// Token authentication requires an environment token; gh authentication
// requires the gh executable; automatic resolution prefers a token and falls
// back to the gh CLI, failing only when neither source is available.
func ResolveCredential(method Method, lookupEnvironment EnvironmentLookup, locateCommand CommandLocator) (Credential, error) {
	switch method {
	case MethodToken:
		token, tokenFound := resolveEnvironmentToken(lookupEnvironment)
		if !tokenFound {
			return Credential{}, ErrTokenNotFound
		}
		return Credential{Method: MethodToken, Token: token}, nil
	case MethodGHCLI:
		if _, locateError := locateCommand(gitHubCLIExecutableNameConstant); locateError != nil {
			return Credential{}, ErrGitHubCLINotFound
		}
		return Credential{Method: MethodGHCLI}, nil
	default:
		if token, tokenFound := resolveEnvironmentToken(lookupEnvironment); tokenFound {
			return Credential{Method: MethodToken, Token: token}, nil
		}
		if _, locateError := locateCommand(gitHubCLIExecutableNameConstant); locateError == nil {
			return Credential{Method: MethodGHCLI}, nil
		}
		return Credential{}, ErrNoAuthenticationSource
	}
}

func resolveEnvironmentToken(lookupEnvironment EnvironmentLookup) (string, bool) {
	for _, variableName := range tokenPreference {
		value, exists := lookupEnvironment(variableName)
		if !exists {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) > 0 {
			return value, true
		}
	}
	return "", false
}
