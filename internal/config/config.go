package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	WorkspaceDir = ".dblp2wd"
	SessionFile  = "session.db"
	OutputDir    = "out"
)

// ErrNoWorkspace is returned when no .dblp2wd directory is found.
var ErrNoWorkspace = errors.New("not in a dblp2wd workspace (no .dblp2wd directory found)")

// WorkspacePath returns the path to the .dblp2wd directory from a root path.
func WorkspacePath(root string) string {
	return filepath.Join(root, WorkspaceDir)
}

// SessionPath returns the path to session.db from a root path.
func SessionPath(root string) string {
	return filepath.Join(root, WorkspaceDir, SessionFile)
}

// OutputPath returns the default artifact directory from a root path.
func OutputPath(root string) string {
	return filepath.Join(root, OutputDir)
}

// IsWorkspace checks if the given path contains a workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(WorkspacePath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find a workspace.
// Returns the workspace root or ErrNoWorkspace.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoWorkspace
		}
		abs = parent
	}
}

// InitWorkspace creates the workspace directory under root.
// It reports false if the workspace already existed.
func InitWorkspace(root string) (bool, error) {
	if IsWorkspace(root) {
		return false, nil
	}
	if err := os.MkdirAll(WorkspacePath(root), 0755); err != nil {
		return false, fmt.Errorf("creating workspace: %w", err)
	}
	return true, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
