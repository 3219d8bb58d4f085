// Package source abstracts where repository facts come from. The
// RepositorySource interface exposes the four read operations the compliance
// pipeline needs, with a filesystem-backed implementation for local paths and
// a GitHub CLI backed implementation for remote repositories. Both
// implementations convert expected failures into absence sentinels so the
// pipeline never branches on transport details.
package source
