package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/complykit/pycomply/internal/report"
)

var remoteSpecificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://github\.com/[\w-]+/[\w-]+`),
	regexp.MustCompile(`^git@github\.com:[\w-]+/[\w-]+`),
	regexp.MustCompile(`^github\.com/[\w-]+/[\w-]+`),
	regexp.MustCompile(`^[\w-]+/[\w-]+$`),
}

var repositorySegmentPattern = regexp.MustCompile(`^[\w-]+$`)

const (
	remoteURLSchemePrefixHTTPSConstant = "https://"
	remoteURLSchemePrefixHTTPConstant  = "http://"
	remoteHostPrefixConstant           = "github.com/"
	remoteSSHPrefixConstant            = "git@github.com:"
	remoteGitSuffixConstant            = ".git"
	repositorySegmentSeparatorConstant = "/"
)

// Detect classifies a repository identifier as remote when it matches any
// recognized GitHub specification form, and local otherwise.
func Detect(targetIdentifier string) report.SourceKind {
	for _, pattern := range remoteSpecificationPatterns {
		if pattern.MatchString(targetIdentifier) {
			return report.SourceKindGitHub
		}
	}
	return report.SourceKindLocal
}

// ParseRemoteSpecification normalizes any recognized GitHub specification
// form to its owner/name pair.
func ParseRemoteSpecification(repositorySpecification string) (string, error) {
	normalized := repositorySpecification
	normalized = strings.TrimPrefix(normalized, remoteURLSchemePrefixHTTPSConstant)
	normalized = strings.TrimPrefix(normalized, remoteURLSchemePrefixHTTPConstant)
	normalized = strings.TrimPrefix(normalized, remoteSSHPrefixConstant)
	normalized = strings.TrimPrefix(normalized, remoteHostPrefixConstant)
	normalized = strings.TrimSuffix(normalized, remoteGitSuffixConstant)
	normalized = strings.Trim(normalized, repositorySegmentSeparatorConstant)

	segments := strings.Split(normalized, repositorySegmentSeparatorConstant)
	if len(segments) < 2 {
		return "", fmt.Errorf("invalid repository format: %s", repositorySpecification)
	}

	ownerSegment := segments[0]
	nameSegment := segments[1]
	if !repositorySegmentPattern.MatchString(ownerSegment) || !repositorySegmentPattern.MatchString(nameSegment) {
		return "", fmt.Errorf("invalid repository format: %s", repositorySpecification)
	}

	return ownerSegment + repositorySegmentSeparatorConstant + nameSegment, nil
}
