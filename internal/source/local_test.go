package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/complykit/pycomply/internal/source"
)

const sampleManifestConstant = `[project]
name = "widget"
requires-python = ">=3.13"
`

func writeRepositoryFile(testInstance *testing.T, rootDirectory string, relativePath string, content string) {
	testInstance.Helper()
	absolutePath := filepath.Join(rootDirectory, relativePath)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
	require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o644))
}

func TestNewLocalSourceValidatesPath(testInstance *testing.T) {
	testCases := []struct {
		name        string
		preparePath func(testInstance *testing.T) string
		expectError bool
	}{
		{
			name: "existing_directory",
			preparePath: func(testInstance *testing.T) string {
				return testInstance.TempDir()
			},
		},
		{
			name: "missing_path",
			preparePath: func(testInstance *testing.T) string {
				return filepath.Join(testInstance.TempDir(), "absent")
			},
			expectError: true,
		},
		{
			name: "regular_file",
			preparePath: func(testInstance *testing.T) string {
				rootDirectory := testInstance.TempDir()
				writeRepositoryFile(testInstance, rootDirectory, "plain.txt", "content")
				return filepath.Join(rootDirectory, "plain.txt")
			},
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			repositorySource, creationError := source.NewLocalSource(testCase.preparePath(testInstance), zap.NewNop())
			if testCase.expectError {
				require.ErrorIs(testInstance, creationError, source.ErrPathNotDirectory)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, repositorySource)
		})
	}
}

func TestLocalSourceOperations(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	writeRepositoryFile(testInstance, rootDirectory, "pyproject.toml", sampleManifestConstant)
	writeRepositoryFile(testInstance, rootDirectory, "README.md", "# widget")
	writeRepositoryFile(testInstance, rootDirectory, ".github/workflows/Ruff.yml", "name: Ruff")
	writeRepositoryFile(testInstance, rootDirectory, ".github/workflows/Tests.yml", "name: Tests")

	repositorySource, creationError := source.NewLocalSource(rootDirectory, zap.NewNop())
	require.NoError(testInstance, creationError)

	document := repositorySource.LoadConfiguration(context.Background())
	declaredVersion, versionFound := document.StringValue("project", "requires-python")
	require.True(testInstance, versionFound)
	require.Equal(testInstance, ">=3.13", declaredVersion)

	require.True(testInstance, repositorySource.FileExists(context.Background(), "README.md"))
	require.False(testInstance, repositorySource.FileExists(context.Background(), "SRD.md"))

	readmeContent, readmeFound := repositorySource.ReadFile(context.Background(), "README.md")
	require.True(testInstance, readmeFound)
	require.Equal(testInstance, "# widget", readmeContent)

	_, missingFound := repositorySource.ReadFile(context.Background(), "missing.txt")
	require.False(testInstance, missingFound)

	workflowEntries := repositorySource.ListDirectory(context.Background(), ".github/workflows")
	require.ElementsMatch(testInstance, []string{"Ruff.yml", "Tests.yml"}, workflowEntries)
	require.Empty(testInstance, repositorySource.ListDirectory(context.Background(), "absent-directory"))
}

func TestLocalSourceMalformedManifestDegradesToEmptyDocument(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	writeRepositoryFile(testInstance, rootDirectory, "pyproject.toml", "not [valid toml")

	repositorySource, creationError := source.NewLocalSource(rootDirectory, zap.NewNop())
	require.NoError(testInstance, creationError)

	document := repositorySource.LoadConfiguration(context.Background())
	require.True(testInstance, document.IsEmpty())
}
