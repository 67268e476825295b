// Package fstest provides test utilties to operate with files and directories
package fstest

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteToFile writes data to a file.
// Directories that are in the path but do not exist are created.
// If an error happens, t.Fatal() is called.
func WriteToFile(t *testing.T, data []byte, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o775); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// MkdirAll creates path and all missing parents, it calls t.Fatal() on
// errors.
func MkdirAll(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o775); err != nil {
		t.Fatal(err)
	}
}
