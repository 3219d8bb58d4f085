package source_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/complykit/pycomply/internal/report"
	"github.com/complykit/pycomply/internal/source"
)

func TestDetect(testInstance *testing.T) {
	testCases := []struct {
		name         string
		target       string
		expectedKind report.SourceKind
	}{
		{name: "https_url", target: "https://github.com/acme/widget", expectedKind: report.SourceKindGitHub},
		{name: "http_url", target: "http://github.com/acme/widget", expectedKind: report.SourceKindGitHub},
		{name: "ssh_specification", target: "git@github.com:acme/widget", expectedKind: report.SourceKindGitHub},
		{name: "host_prefixed", target: "github.com/acme/widget", expectedKind: report.SourceKindGitHub},
		{name: "bare_owner_name", target: "acme/widget", expectedKind: report.SourceKindGitHub},
		{name: "unix_path", target: "/home/x/project", expectedKind: report.SourceKindLocal},
		{name: "windows_path", target: `C:\proj`, expectedKind: report.SourceKindLocal},
		{name: "relative_path", target: "./project", expectedKind: report.SourceKindLocal},
		{name: "single_segment", target: "project", expectedKind: report.SourceKindLocal},
		{name: "three_segments_not_bare_form", target: "a/b/c", expectedKind: report.SourceKindLocal},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedKind, source.Detect(testCase.target))
		})
	}
}

func TestParseRemoteSpecification(testInstance *testing.T) {
	testCases := []struct {
		name               string
		specification      string
		expectedRepository string
		expectError        bool
	}{
		{name: "https_url", specification: "https://github.com/acme/widget", expectedRepository: "acme/widget"},
		{name: "https_url_with_suffix", specification: "https://github.com/acme/widget/tree/main", expectedRepository: "acme/widget"},
		{name: "ssh_specification", specification: "git@github.com:acme/widget.git", expectedRepository: "acme/widget"},
		{name: "host_prefixed", specification: "github.com/acme/widget", expectedRepository: "acme/widget"},
		{name: "bare_owner_name", specification: "acme/widget", expectedRepository: "acme/widget"},
		{name: "missing_name_segment", specification: "acme", expectError: true},
		{name: "invalid_segment_characters", specification: "acme/wid get", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			repository, parseError := source.ParseRemoteSpecification(testCase.specification)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedRepository, repository)
		})
	}
}
