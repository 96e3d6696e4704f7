// Package filesys provides the small set of file system helpers the storage
// and engine layers need: directory creation, existence checks, and whole
// -file reads/writes for the .engine marker file.
package filesys

import (
	"errors"
	"os"
)

var ErrIsNotDir = errors.New("path isn't a directory")

// CreateDir creates dirPath with the given permission, including parents.
// If the path already exists and is not a directory, it returns ErrIsNotDir.
func CreateDir(dirPath string, permission os.FileMode) error {
	stat, err := os.Stat(dirPath)
	if err == nil {
		if !stat.IsDir() {
			return ErrIsNotDir
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dirPath, permission)
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ReadFile reads the entire content of the file at path.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes contents to path, creating or truncating it.
func WriteFile(path string, permission os.FileMode, contents []byte) error {
	return os.WriteFile(path, contents, permission)
}
