package helper

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultPIDPath = "/var/run/inventory-apiserver.pid"

// GetPIDPath resolves a PID file location. Relative names resolve against
// the working directory when its parent exists, otherwise the default path is used.
func GetPIDPath(filename string) string {
	if filename == "" {
		return defaultPIDPath
	}
	if filepath.IsAbs(filename) {
		return filename
	}

	currentDir, err := os.Getwd()
	if err != nil || currentDir == "" {
		return defaultPIDPath
	}
	absPath, err := filepath.Abs(filepath.Join(currentDir, filename))
	if err != nil {
		return defaultPIDPath
	}
	if _, err := os.Stat(filepath.Dir(absPath)); err != nil {
		return defaultPIDPath
	}
	return absPath
}

// WritePID writes the current process id to path, creating parent directories
func WritePID(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create PID directory: %w", err)
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
}

// RemovePID removes the PID file, ignoring a missing file
func RemovePID(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
