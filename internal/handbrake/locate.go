package handbrake

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Locate resolves binary to an executable path. A name containing a path
// separator is checked as given; otherwise each search dir is tried in order,
// then PATH.
func Locate(binary string, searchDirs []string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "", fmt.Errorf("%w: no binary configured", ErrBinaryNotFound)
	}

	if strings.ContainsRune(binary, os.PathSeparator) {
		if isExecutable(binary) {
			return filepath.Clean(binary), nil
		}
		return "", fmt.Errorf("%w: %s is not executable", ErrBinaryNotFound, binary)
	}

	for _, dir := range searchDirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		candidate := filepath.Join(dir, binary)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(binary); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s not found in %s or PATH", ErrBinaryNotFound, binary, strings.Join(searchDirs, ", "))
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}
