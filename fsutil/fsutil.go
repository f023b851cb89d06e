// Package fsutil holds the directory checks run before any plotting
// or encoding work is dealt out to workers.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CheckReadableDir verifies that path exists, is a directory and can
// be opened for reading.
func CheckReadableDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s exists but is not readable: %w", path, err)
	}
	f.Close()
	return nil
}

// CheckWritableDir verifies that path exists, is a directory and that
// a file can be created in it.
func CheckWritableDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", path)
	}
	probe, err := os.CreateTemp(path, ".awap-probe-")
	if err != nil {
		return fmt.Errorf("%s exists but is not writeable: %w", path, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// EnsureDir creates path (and any parents) if it does not already
// exist. An existing non-directory at path is an error.
func EnsureDir(path string) error {
	fi, err := os.Stat(path)
	if err == nil {
		if fi.IsDir() {
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}
