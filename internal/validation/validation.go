// Package validation contains validators for user supplied identifiers.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// StrID ensures that id does not contain leading or trailing white spaces
// ([unicode.IsSpace] and only printable characters ([unicode.IsPrint].
func StrID(id string) error {
	if id == "" {
		return errors.New("can not be empty")
	}

	for pos, r := range id {
		if (pos == 0 || pos == len(id)-1) && unicode.IsSpace(r) {
			return errors.New("contains leading or trailing white spaces")
		}

		if !unicode.IsPrint(r) {
			return fmt.Errorf("contains non-printable character: %+q", r)
		}
	}

	return nil
}

// Identifier ensures that s starts with an ASCII letter or digit and
// only contains letters, digits, '_', '.' and '-'.
// Identifiers are safe to be embedded in shell command lines.
func Identifier(s string) error {
	if s == "" {
		return errors.New("can not be empty")
	}

	if !identifierRe.MatchString(s) {
		return fmt.Errorf("%q contains characters that are not allowed, allowed are letters, digits, '_', '.' and '-'", s)
	}

	return nil
}
