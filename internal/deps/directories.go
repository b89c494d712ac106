package deps

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// DirectoryStatus reports whether a configured directory is usable.
type DirectoryStatus struct {
	Name   string
	Path   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that path is a directory the current user
// can read and write.
func CheckDirectoryAccess(name, path string) DirectoryStatus {
	status := DirectoryStatus{Name: name, Path: path}
	if strings.TrimSpace(path) == "" {
		status.Detail = "not configured"
		return status
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			status.Detail = "does not exist"
			return status
		}
		status.Detail = fmt.Sprintf("stat failed: %v", err)
		return status
	}
	if !info.IsDir() {
		status.Detail = "not a directory"
		return status
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("not accessible: %v", err)
		return status
	}

	status.Passed = true
	status.Detail = "read/write ok"
	return status
}
