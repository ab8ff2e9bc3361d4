//go:build !windows

// Unix Platform implementation.
// Readability uses access(2) with R_OK against the real uid/gid.
package platform

import (
	"time"

	"golang.org/x/sys/unix"
)

// UnixPlatform implements Platform for Linux, macOS and the BSDs.
type UnixPlatform struct{}

// New creates a platform instance for the running OS.
func New() Platform {
	return &UnixPlatform{}
}

// Name returns the platform identifier.
func (p *UnixPlatform) Name() string { return "unix" }

// Readable checks R_OK access on path.
func (p *UnixPlatform) Readable(path string) error {
	return unix.Access(path, unix.R_OK)
}

// ModTime returns the file's mtime.
func (p *UnixPlatform) ModTime(path string) (time.Time, error) {
	return statModTime(path)
}
