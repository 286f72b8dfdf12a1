package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.userpeek/logs/).
// Falls back to temp directory if home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".userpeek", "logs")
	}
	return filepath.Join(home, ".userpeek", "logs")
}

// DefaultLogPath returns the default log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "userpeek.log")
}
