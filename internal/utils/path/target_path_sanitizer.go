package pathutils

import (
	"path/filepath"
	"strings"
)

// TargetPathSanitizer normalizes configured file path lists consistently
// across commands.
type TargetPathSanitizer struct {
	homeExpander *HomeExpander
}

// NewTargetPathSanitizer constructs a TargetPathSanitizer with default behavior.
func NewTargetPathSanitizer() *TargetPathSanitizer {
	return NewTargetPathSanitizerWithExpander(nil)
}

// NewTargetPathSanitizerWithExpander constructs a TargetPathSanitizer using the provided expander.
func NewTargetPathSanitizerWithExpander(homeExpander *HomeExpander) *TargetPathSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &TargetPathSanitizer{homeExpander: resolvedExpander}
}

// Sanitize trims whitespace, expands the user's home directory, cleans each
// path, and removes empty entries and duplicates while preserving order.
func (sanitizer *TargetPathSanitizer) Sanitize(candidatePaths []string) []string {
	expander := sanitizer.resolveExpander()

	sanitizedPaths := make([]string, 0, len(candidatePaths))
	seenPaths := make(map[string]struct{}, len(candidatePaths))
	for candidateIndex := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePaths[candidateIndex])
		if len(trimmedCandidate) == 0 {
			continue
		}

		cleanedPath := filepath.Clean(expander.Expand(trimmedCandidate))
		if _, alreadySeen := seenPaths[cleanedPath]; alreadySeen {
			continue
		}
		seenPaths[cleanedPath] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, cleanedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}
	return sanitizedPaths
}

func (sanitizer *TargetPathSanitizer) resolveExpander() *HomeExpander {
	if sanitizer == nil || sanitizer.homeExpander == nil {
		return NewHomeExpander()
	}
	return sanitizer.homeExpander
}
