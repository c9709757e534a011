package security

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/d-kuro/bank/internal/errors"
)

func TestNewDefaultValidator(t *testing.T) {
	v := NewDefaultValidator()

	if v == nil {
		t.Fatal("NewDefaultValidator returned nil")
	}
	if len(v.protectedPaths) != 0 {
		t.Errorf("expected no protected paths, got %d", len(v.protectedPaths))
	}
	if err := v.ValidatePath("/anything/at/all"); err != nil {
		t.Errorf("expected no error without protected paths, got %v", err)
	}
}

func TestWithProtectedPaths(t *testing.T) {
	v := NewDefaultValidator().WithProtectedPaths([]string{"/srv/data/", "", "relative"})

	if len(v.protectedPaths) != 2 {
		t.Fatalf("expected 2 protected paths, got %d", len(v.protectedPaths))
	}
	if v.protectedPaths[0] != filepath.Clean("/srv/data") {
		t.Errorf("expected cleaned path, got %s", v.protectedPaths[0])
	}
	if !filepath.IsAbs(v.protectedPaths[1]) {
		t.Errorf("expected relative entry to be made absolute, got %s", v.protectedPaths[1])
	}
}

func TestSanitizePath(t *testing.T) {
	v := NewDefaultValidator()

	tests := []struct {
		name        string
		path        string
		want        string
		expectError bool
	}{
		{name: "plain file", path: "notes.txt", want: "notes.txt"},
		{name: "trailing separator kept", path: "build/", want: "build/"},
		{name: "nested", path: "a/b/../c", want: "a/b/../c"},
		{name: "empty", path: "", expectError: true},
		{name: "nul byte", path: "bad\x00name", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.SanitizePath(tt.path)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, errors.ErrConfiguration) {
					t.Errorf("expected configuration error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tempDir := t.TempDir()
	protected := filepath.Join(tempDir, "protected")
	if err := os.Mkdir(protected, 0755); err != nil {
		t.Fatalf("failed to create protected dir: %v", err)
	}

	v := NewDefaultValidator().WithProtectedPaths([]string{protected})

	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{name: "protected dir itself", path: protected, expectError: true},
		{name: "inside protected dir", path: filepath.Join(protected, "new.txt"), expectError: true},
		{name: "deep inside protected dir", path: filepath.Join(protected, "a", "b", "c"), expectError: true},
		{name: "sibling with shared prefix", path: protected + "-other", expectError: false},
		{name: "outside", path: filepath.Join(tempDir, "free.txt"), expectError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePath(tt.path)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, errors.ErrPermission) {
					t.Errorf("expected permission error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePathThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	tempDir := t.TempDir()
	protected := filepath.Join(tempDir, "protected")
	if err := os.Mkdir(protected, 0755); err != nil {
		t.Fatalf("failed to create protected dir: %v", err)
	}
	link := filepath.Join(tempDir, "link")
	if err := os.Symlink(protected, link); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	v := NewDefaultValidator().WithProtectedPaths([]string{protected})

	if err := v.ValidatePath(filepath.Join(link, "sneaky.txt")); !errors.Is(err, errors.ErrPermission) {
		t.Errorf("expected permission error through symlink, got %v", err)
	}
}
