package source

import (
	"context"

	"github.com/complykit/pycomply/internal/manifest"
)

// RepositorySource exposes the read operations the compliance pipeline
// performs against a repository. Expected failures (missing files, transport
// errors, timeouts) surface as absence sentinels rather than errors.
type RepositorySource interface {
	// LoadConfiguration returns the parsed pyproject.toml document, or the
	// empty document when the manifest is missing or malformed.
	LoadConfiguration(executionContext context.Context) manifest.Document
	// FileExists reports whether the repository contains the relative path.
	FileExists(executionContext context.Context, relativePath string) bool
	// ReadFile returns the text content of the relative path. The boolean is
	// false when the file is absent or unreadable.
	ReadFile(executionContext context.Context, relativePath string) (string, bool)
	// ListDirectory returns entry names under the relative path, or an empty
	// slice when the directory is absent.
	ListDirectory(executionContext context.Context, relativePath string) []string
}

// TopicsProvider is implemented by sources that can report repository topics
// from hosting metadata. The boolean is false when metadata could not be
// fetched, which is distinct from an empty topic list.
type TopicsProvider interface {
	RepositoryTopics(executionContext context.Context) ([]string, bool)
}
