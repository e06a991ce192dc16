// Package filex has small filesystem helpers for saving downloads.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (relative paths are resolved against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// SafeName reduces a server-supplied file name to a single path element.
// Names that would escape the directory or are empty become fallback.
func SafeName(name, fallback string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == ".." || strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

// CreateUnique creates a new file named name inside dir. When the name is
// taken it tries "name (1).ext", "name (2).ext" and so on.
func CreateUnique(dir, name string) (*os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}

		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("no free name for %s in %s", name, dir)
}
