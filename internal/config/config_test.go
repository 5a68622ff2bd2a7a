package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	root := "/test/work"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"WorkspacePath", WorkspacePath, "/test/work/.dblp2wd"},
		{"SessionPath", SessionPath, "/test/work/.dblp2wd/session.db"},
		{"OutputPath", OutputPath, "/test/work/out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(root)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, root, got, tt.want)
			}
		})
	}
}

func TestIsWorkspace(t *testing.T) {
	tmpDir := t.TempDir()

	if IsWorkspace(tmpDir) {
		t.Error("IsWorkspace() = true for plain directory")
	}

	if err := os.Mkdir(filepath.Join(tmpDir, WorkspaceDir), 0755); err != nil {
		t.Fatalf("Failed to create .dblp2wd: %v", err)
	}

	if !IsWorkspace(tmpDir) {
		t.Error("IsWorkspace() = false for workspace directory")
	}
}

func TestIsWorkspace_FileNotDir(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, WorkspaceDir), []byte("not a dir"), 0644); err != nil {
		t.Fatalf("Failed to create .dblp2wd file: %v", err)
	}

	if IsWorkspace(tmpDir) {
		t.Error("IsWorkspace() = true when .dblp2wd is a file")
	}
}

func TestFindWorkspace(t *testing.T) {
	// Create nested structure: /tmp/xxx/work/.dblp2wd
	tmpDir := t.TempDir()
	workDir := filepath.Join(tmpDir, "work")
	nestedDir := filepath.Join(workDir, "out", "2024")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	if err := os.Mkdir(filepath.Join(workDir, WorkspaceDir), 0755); err != nil {
		t.Fatalf("Failed to create .dblp2wd: %v", err)
	}

	for _, start := range []string{nestedDir, workDir} {
		found, err := FindWorkspace(start)
		if err != nil {
			t.Fatalf("FindWorkspace(%q) error = %v", start, err)
		}
		if found != workDir {
			t.Errorf("FindWorkspace(%q) = %q, want %q", start, found, workDir)
		}
	}
}

func TestFindWorkspace_NotFound(t *testing.T) {
	_, err := FindWorkspace(t.TempDir())
	if !errors.Is(err, ErrNoWorkspace) {
		t.Errorf("FindWorkspace() error = %v, want ErrNoWorkspace", err)
	}
}

func TestInitWorkspace(t *testing.T) {
	tmpDir := t.TempDir()

	created, err := InitWorkspace(tmpDir)
	if err != nil {
		t.Fatalf("InitWorkspace() error = %v", err)
	}
	if !created {
		t.Error("InitWorkspace() = false on first call")
	}
	if !IsWorkspace(tmpDir) {
		t.Error("workspace directory missing after InitWorkspace")
	}

	created, err = InitWorkspace(tmpDir)
	if err != nil {
		t.Fatalf("second InitWorkspace() error = %v", err)
	}
	if created {
		t.Error("InitWorkspace() = true for existing workspace")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~", home},
		{"~/logs/x.log", filepath.Join(home, "logs/x.log")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
