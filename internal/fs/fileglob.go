package fs

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchGlob returns true if the slash-separated path matches pattern.
// Patterns use the filepath.Match syntax with the addition that '**' matches
// files and directories recursively.
func MatchGlob(pattern, path string) (bool, error) {
	return doublestar.Match(pattern, path)
}

// ValidateGlob returns an error if pattern is malformed.
func ValidateGlob(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("%q is not a valid glob pattern", pattern)
	}

	return nil
}
