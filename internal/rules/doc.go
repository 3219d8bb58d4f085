// Package rules implements the pure compliance predicates evaluated against
// a parsed pyproject.toml document. Rule functions perform no I/O and are
// deterministic; every function treats the empty document as a distinct,
// always-failing input.
package rules
