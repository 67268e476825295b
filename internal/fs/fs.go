// Package fs provides filesystem helpers.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotInRoot is returned by RelSlashPath when a path is outside of the
// root directory.
var ErrNotInRoot = errors.New("path is not in root directory")

// IsFile returns true if path is a regular file.
// If the path does not exist an error is returned
func IsFile(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	return fi.Mode().IsRegular(), nil
}

// FileExists returns true if path exist and is a file
func FileExists(path string) bool {
	ret, _ := IsFile(path)

	return ret
}

// IsDir returns true if the path is a directory.
// If the directory does not exist, the error from os.Stat() is returned.
func IsDir(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	return fi.IsDir(), nil
}

// RelSlashPath returns path relative to root with forward slashes as
// separators.
func RelSlashPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrNotInRoot
	}

	return filepath.ToSlash(rel), nil
}

// Dirs returns root and all directories below it.
// Directories for which skip returns true are not descended into and are not
// part of the result. Directories that can not be read are ignored.
func Dirs(root string, skip func(name string) bool) ([]string, error) {
	return walk(root, skip, func(entry iofs.DirEntry) bool {
		return entry.IsDir()
	})
}

// Files returns all regular files below root.
// Directories for which skip returns true are not descended into.
// Directories that can not be read are ignored.
func Files(root string, skip func(name string) bool) ([]string, error) {
	return walk(root, skip, func(entry iofs.DirEntry) bool {
		return entry.Type().IsRegular()
	})
}

func walk(root string, skip func(name string) bool, include func(iofs.DirEntry) bool) ([]string, error) {
	var result []string

	err := filepath.WalkDir(root, func(path string, entry iofs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			return nil
		}

		if entry.IsDir() && path != root && skip != nil && skip(entry.Name()) {
			return filepath.SkipDir
		}

		if include(entry) {
			result = append(result, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
