//go:build !windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".check_pdu", "config.yaml"),
		"/etc/check_pdu/config.yaml",
	}
}
