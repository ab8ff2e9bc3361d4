//go:build windows

// Windows Platform implementation.
// Windows has no access(2); readability is probed by opening the file.
package platform

import (
	"os"
	"time"
)

// WindowsPlatform implements Platform for Windows systems.
type WindowsPlatform struct{}

// New creates a new Windows platform instance.
func New() Platform {
	return &WindowsPlatform{}
}

// Name returns the platform identifier.
func (p *WindowsPlatform) Name() string { return "windows" }

// Readable opens and immediately closes path.
func (p *WindowsPlatform) Readable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// ModTime returns the file's last write time.
func (p *WindowsPlatform) ModTime(path string) (time.Time, error) {
	return statModTime(path)
}
