package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/complykit/pycomply/internal/manifest"
)

const sampleManifestConstant = `
[project]
requires-python = ">=3.13"
keywords = ["python-lib", "tooling"]

[tool.ruff]
target-version = "py313"
line-length = 120

[tool.ruff.format]
quote-style = "single"
`

func TestParseBehaviors(testInstance *testing.T) {
	testCases := []struct {
		name        string
		rawManifest string
		expectEmpty bool
		expectError bool
	}{
		{
			name:        "valid_manifest",
			rawManifest: sampleManifestConstant,
			expectEmpty: false,
			expectError: false,
		},
		{
			name:        "empty_input",
			rawManifest: "",
			expectEmpty: true,
			expectError: false,
		},
		{
			name:        "malformed_input",
			rawManifest: "[project\nrequires-python = oops",
			expectEmpty: true,
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			document, parseError := manifest.Parse([]byte(testCase.rawManifest))
			if testCase.expectError {
				require.Error(testInstance, parseError)
			} else {
				require.NoError(testInstance, parseError)
			}
			require.Equal(testInstance, testCase.expectEmpty, document.IsEmpty())
		})
	}
}

func TestDocumentAccessors(testInstance *testing.T) {
	document, parseError := manifest.Parse([]byte(sampleManifestConstant))
	require.NoError(testInstance, parseError)

	requiresPython, requiresPythonFound := document.StringValue("project", "requires-python")
	require.True(testInstance, requiresPythonFound)
	require.Equal(testInstance, ">=3.13", requiresPython)

	keywords, keywordsFound := document.StringSlice("project", "keywords")
	require.True(testInstance, keywordsFound)
	require.Equal(testInstance, []string{"python-lib", "tooling"}, keywords)

	lineLength, lineLengthFound := document.IntegerValue("tool", "ruff", "line-length")
	require.True(testInstance, lineLengthFound)
	require.Equal(testInstance, int64(120), lineLength)

	require.True(testInstance, document.HasTable("tool", "ruff", "format"))
	require.True(testInstance, document.HasKey("tool", "ruff", "format", "quote-style"))

	_, missingFound := document.StringValue("tool", "poetry", "requires-poetry")
	require.False(testInstance, missingFound)
	require.False(testInstance, document.HasTable("tool", "poetry"))

	_, scalarAsTableFound := document.Table("project", "requires-python")
	require.False(testInstance, scalarAsTableFound)
}

func TestEmptyDocumentAccessorsReportAbsence(testInstance *testing.T) {
	document := manifest.EmptyDocument()

	require.True(testInstance, document.IsEmpty())
	require.False(testInstance, document.HasTable("tool"))
	require.False(testInstance, document.HasKey("project", "keywords"))

	_, found := document.StringValue("project", "requires-python")
	require.False(testInstance, found)
}
