// Package dotdir manages the .outfitter/ and ~/.outfitter directories.
//
// The dot directory holds the persistent configuration file (config.toml).
// Resolution prefers a project-local .outfitter/ directory so per-catalog
// setups can live next to the data they index, falling back to the home
// directory for a global install.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// dirName is the name of the outfitter directory.
	dirName = ".outfitter"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .outfitter/ directory.
// Order of precedence is as follows:
//  1. Provided override
//  2. Local ./.outfitter/ dir
//  3. Home ~/.outfitter/ dir
//  4. If none found, attempt to create ~/.outfitter/ dir
func (m *Manager) Target(overrideDir string) (string, error) {
	var dir string

	switch {
	case overrideDir != "":
		dir = overrideDir

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, dirName)

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating outfitter directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// localDirExists checks whether a .outfitter/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}
