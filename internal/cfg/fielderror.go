package cfg

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes an error related to an element in a configuration struct.
type FieldError struct {
	elementPath []string
	err         error
}

// newFieldError creates a new FieldError with the given error message and ElementPath.
func newFieldError(msg string, path ...string) *FieldError {
	return &FieldError{
		err:         errors.New(msg),
		elementPath: path,
	}
}

// fieldErrorWrap returns a new FieldError thats wraps the passed err, if err
// is not of type FieldError.
// If it is of type FieldError, the passed paths are prepended to it's
// ElementPath and err is returned.
func fieldErrorWrap(err error, path ...string) error {
	var fErr *FieldError
	if errors.As(err, &fErr) {
		fErr.elementPath = append(path, fErr.elementPath...)
		return err
	}

	return &FieldError{
		elementPath: path,
		err:         err,
	}
}

// ElementPath returns the path of the configuration element, e.g.
// ["Watch[1]", "task"].
func (f *FieldError) ElementPath() string {
	return strings.Join(f.elementPath, ".")
}

func (f *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", f.ElementPath(), f.err)
}

func (f *FieldError) Unwrap() error {
	return f.err
}
