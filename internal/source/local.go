package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/complykit/pycomply/internal/manifest"
	"go.uber.org/zap"
)

// ErrPathNotDirectory indicates the local target path is missing or not a directory.
var ErrPathNotDirectory = errors.New("path does not exist or is not a directory")

const manifestFileNameConstant = "pyproject.toml"

// LocalSource reads repository facts from a directory on the local filesystem.
type LocalSource struct {
	rootDirectory string
	logger        *zap.Logger
}

// NewLocalSource resolves the target path and validates that it is an
// existing directory.
func NewLocalSource(targetPath string, logger *zap.Logger) (*LocalSource, error) {
	resolvedPath, resolveError := filepath.Abs(targetPath)
	if resolveError != nil {
		return nil, fmt.Errorf("%w: %s", ErrPathNotDirectory, targetPath)
	}

	pathInformation, statError := os.Stat(resolvedPath)
	if statError != nil || !pathInformation.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPathNotDirectory, resolvedPath)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &LocalSource{rootDirectory: resolvedPath, logger: logger}, nil
}

// RootDirectory returns the resolved absolute path of the repository.
func (repositorySource *LocalSource) RootDirectory() string {
	return repositorySource.rootDirectory
}

// LoadConfiguration parses pyproject.toml from the repository root. A missing
// or malformed manifest yields the empty document.
func (repositorySource *LocalSource) LoadConfiguration(executionContext context.Context) manifest.Document {
	manifestContent, manifestFound := repositorySource.ReadFile(executionContext, manifestFileNameConstant)
	if !manifestFound {
		return manifest.EmptyDocument()
	}

	document, parseError := manifest.Parse([]byte(manifestContent))
	if parseError != nil {
		repositorySource.logger.Debug("manifest parse failed",
			zap.String("path", filepath.Join(repositorySource.rootDirectory, manifestFileNameConstant)),
			zap.Error(parseError),
		)
		return manifest.EmptyDocument()
	}
	return document
}

// FileExists reports whether the relative path exists under the repository root.
func (repositorySource *LocalSource) FileExists(_ context.Context, relativePath string) bool {
	_, statError := os.Stat(filepath.Join(repositorySource.rootDirectory, relativePath))
	return statError == nil
}

// ReadFile returns the text content of the relative path under the
// repository root, reporting absence for any filesystem failure.
func (repositorySource *LocalSource) ReadFile(_ context.Context, relativePath string) (string, bool) {
	fileContent, readError := os.ReadFile(filepath.Join(repositorySource.rootDirectory, relativePath))
	if readError != nil {
		return "", false
	}
	return string(fileContent), true
}

// ListDirectory returns the entry names under the relative path, or an empty
// slice when the directory cannot be read.
func (repositorySource *LocalSource) ListDirectory(_ context.Context, relativePath string) []string {
	directoryEntries, readError := os.ReadDir(filepath.Join(repositorySource.rootDirectory, relativePath))
	if readError != nil {
		return nil
	}

	entryNames := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryNames = append(entryNames, directoryEntry.Name())
	}
	return entryNames
}
