// Package manifest models the parsed pyproject.toml document as a nested
// key/value tree and provides typed accessors that report field absence
// explicitly at any nesting depth. Missing or malformed manifests degrade to
// the empty document rather than surfacing errors.
package manifest
