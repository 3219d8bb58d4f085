package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/complykit/pycomply/internal/execshell"
	"github.com/complykit/pycomply/internal/githubauth"
	"github.com/complykit/pycomply/internal/manifest"
)

// DefaultRemoteTimeout bounds every GitHub CLI invocation issued by a RemoteSource.
const DefaultRemoteTimeout = 10 * time.Second

const (
	apiSubcommandConstant               = "api"
	jqFlagConstant                      = "--jq"
	headerFlagConstant                  = "--header"
	rawContentAcceptHeaderConstant      = "Accept: application/vnd.github.raw"
	contentsEndpointTemplateConstant    = "/repos/%s/contents/%s"
	repositoryEndpointTemplateConstant  = "/repos/%s"
	entryNameQueryConstant              = ".name"
	entryNamesQueryConstant             = ".[].name"
	nullOutputSentinelConstant          = "null"
	tokenEnvironmentVariableKeyConstant = "GH_TOKEN"
)

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RemoteSource reads repository facts from GitHub through the gh CLI. Every
// call is bounded by a timeout; any command failure or timeout is reported as
// absence so a transient transport problem degrades to failing checks rather
// than aborting the scan.
type RemoteSource struct {
	repository  string
	executor    GitHubCommandExecutor
	credential  githubauth.Credential
	callTimeout time.Duration
	logger      *zap.Logger
}

// NewRemoteSource constructs a source for the owner/name repository. A
// non-positive timeout falls back to DefaultRemoteTimeout.
func NewRemoteSource(repository string, executor GitHubCommandExecutor, credential githubauth.Credential, callTimeout time.Duration, logger *zap.Logger) *RemoteSource {
	if callTimeout <= 0 {
		callTimeout = DefaultRemoteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteSource{
		repository:  repository,
		executor:    executor,
		credential:  credential,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// Repository returns the owner/name pair this source reads from.
func (repositorySource *RemoteSource) Repository() string {
	return repositorySource.repository
}

// LoadConfiguration fetches and parses pyproject.toml. A missing or
// malformed manifest yields the empty document.
func (repositorySource *RemoteSource) LoadConfiguration(executionContext context.Context) manifest.Document {
	manifestContent, manifestFound := repositorySource.ReadFile(executionContext, manifestFileNameConstant)
	if !manifestFound {
		return manifest.EmptyDocument()
	}

	document, parseError := manifest.Parse([]byte(manifestContent))
	if parseError != nil {
		repositorySource.logger.Debug("manifest parse failed",
			zap.String("repository", repositorySource.repository),
			zap.Error(parseError),
		)
		return manifest.EmptyDocument()
	}
	return document
}

// FileExists queries the contents endpoint for the path's entry name.
func (repositorySource *RemoteSource) FileExists(executionContext context.Context, relativePath string) bool {
	commandOutput, commandSucceeded := repositorySource.runAPI(executionContext,
		fmt.Sprintf(contentsEndpointTemplateConstant, repositorySource.repository, relativePath),
		jqFlagConstant, entryNameQueryConstant,
	)
	if !commandSucceeded {
		return false
	}
	trimmedOutput := strings.TrimSpace(commandOutput)
	return len(trimmedOutput) > 0 && trimmedOutput != nullOutputSentinelConstant
}

// ReadFile fetches the raw content of the path.
func (repositorySource *RemoteSource) ReadFile(executionContext context.Context, relativePath string) (string, bool) {
	commandOutput, commandSucceeded := repositorySource.runAPI(executionContext,
		fmt.Sprintf(contentsEndpointTemplateConstant, repositorySource.repository, relativePath),
		headerFlagConstant, rawContentAcceptHeaderConstant,
	)
	if !commandSucceeded || len(strings.TrimSpace(commandOutput)) == 0 {
		return "", false
	}
	return commandOutput, true
}

// ListDirectory queries the contents endpoint for entry names under the path.
func (repositorySource *RemoteSource) ListDirectory(executionContext context.Context, relativePath string) []string {
	commandOutput, commandSucceeded := repositorySource.runAPI(executionContext,
		fmt.Sprintf(contentsEndpointTemplateConstant, repositorySource.repository, relativePath),
		jqFlagConstant, entryNamesQueryConstant,
	)
	if !commandSucceeded {
		return nil
	}

	var entryNames []string
	for _, outputLine := range strings.Split(commandOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 || trimmedLine == nullOutputSentinelConstant {
			continue
		}
		entryNames = append(entryNames, trimmedLine)
	}
	return entryNames
}

// RepositoryTopics fetches the repository metadata and extracts its topics.
// The boolean is false when the metadata fetch or decode fails.
func (repositorySource *RemoteSource) RepositoryTopics(executionContext context.Context) ([]string, bool) {
	commandOutput, commandSucceeded := repositorySource.runAPI(executionContext,
		fmt.Sprintf(repositoryEndpointTemplateConstant, repositorySource.repository),
	)
	if !commandSucceeded {
		return nil, false
	}

	var response struct {
		Topics []string `json:"topics"`
	}
	if decodingError := json.Unmarshal([]byte(commandOutput), &response); decodingError != nil {
		repositorySource.logger.Debug("repository metadata decode failed",
			zap.String("repository", repositorySource.repository),
			zap.Error(decodingError),
		)
		return nil, false
	}
	return response.Topics, true
}

func (repositorySource *RemoteSource) runAPI(executionContext context.Context, arguments ...string) (string, bool) {
	boundedContext, cancelFunction := context.WithTimeout(executionContext, repositorySource.callTimeout)
	defer cancelFunction()

	commandDetails := execshell.CommandDetails{
		Arguments: append([]string{apiSubcommandConstant}, arguments...),
	}
	if len(repositorySource.credential.Token) > 0 {
		commandDetails.EnvironmentVariables = map[string]string{
			tokenEnvironmentVariableKeyConstant: repositorySource.credential.Token,
		}
	}

	executionResult, executionError := repositorySource.executor.ExecuteGitHubCLI(boundedContext, commandDetails)
	if executionError != nil {
		return "", false
	}
	return executionResult.StandardOutput, true
}
