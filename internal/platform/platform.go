// Package platform provides an OS abstraction layer for the filesystem
// checks the probe performs before reading a snapshot.
// Each supported OS implements the Platform interface.
package platform

import (
	"os"
	"time"
)

// Platform provides OS-specific file access checks.
type Platform interface {
	// Readable reports whether the current process may read path.
	// It returns nil when the file is readable.
	Readable(path string) error

	// ModTime returns the last modification time of path.
	ModTime(path string) (time.Time, error)

	// Name returns the platform name (unix, windows).
	Name() string
}

// statModTime is shared by all implementations; os.Stat is portable.
func statModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
