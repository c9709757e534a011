package detect

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/d-kuro/bank/internal/errors"
)

type mockPrompter struct {
	kind  Kind
	err   error
	asked []string
}

func (m *mockPrompter) Choose(path string) (Kind, error) {
	m.asked = append(m.asked, path)
	return m.kind, m.err
}

func TestResolve(t *testing.T) {
	tempDir := t.TempDir()
	existingDir := filepath.Join(tempDir, "config.d")
	existingFile := filepath.Join(tempDir, "Makefile")
	if err := os.Mkdir(existingDir, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(existingFile, nil, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	tests := []struct {
		name  string
		path  string
		flags Flags
		want  Kind
		rule  Rule
	}{
		{name: "explicit directory beats extension", path: "archive.tar.gz", flags: Flags{Directory: true}, want: Directory, rule: RuleExplicit},
		{name: "explicit file beats separator", path: "build/", flags: Flags{File: true}, want: File, rule: RuleExplicit},
		{name: "existing directory with dot", path: existingDir, want: Directory, rule: RuleExisting},
		{name: "existing file without extension", path: existingFile, want: File, rule: RuleExisting},
		{name: "trailing separator", path: filepath.Join(tempDir, "out") + "/", want: Directory, rule: RuleSeparator},
		{name: "trailing separator with extension", path: filepath.Join(tempDir, "site.com") + "/", want: Directory, rule: RuleSeparator},
		{name: "extension", path: filepath.Join(tempDir, "notes.txt"), want: File, rule: RuleExtension},
		{name: "dotfile has no extension", path: filepath.Join(tempDir, ".env"), want: File, rule: RuleDefault},
		{name: "no hint", path: filepath.Join(tempDir, "thing"), want: File, rule: RuleDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(nil, nil)
			kind, rule, err := r.Resolve(tt.path, tt.flags)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, kind)
			}
			if rule != tt.rule {
				t.Errorf("expected rule %s, got %s", tt.rule, rule)
			}
		})
	}
}

func TestResolveConflictingFlags(t *testing.T) {
	r := NewResolver(nil, nil)
	for _, path := range []string{"a.txt", "dir/", "plain", ""} {
		_, _, err := r.Resolve(path, Flags{File: true, Directory: true})
		if !errors.Is(err, errors.ErrConfiguration) {
			t.Errorf("path %q: expected configuration error, got %v", path, err)
		}
	}
}

func TestResolveInteractive(t *testing.T) {
	missing := func(string) (fs.FileInfo, error) { return nil, fs.ErrNotExist }

	t.Run("prompt decides ambiguous path", func(t *testing.T) {
		prompter := &mockPrompter{kind: Directory}
		r := NewResolver(missing, prompter)

		kind, rule, err := r.Resolve("project", Flags{Interactive: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if kind != Directory || rule != RulePrompt {
			t.Errorf("expected directory by prompt, got %s by %s", kind, rule)
		}
		if len(prompter.asked) != 1 || prompter.asked[0] != "project" {
			t.Errorf("unexpected prompts: %v", prompter.asked)
		}
	})

	t.Run("heuristics win over prompt", func(t *testing.T) {
		prompter := &mockPrompter{kind: Directory}
		r := NewResolver(missing, prompter)

		kind, _, err := r.Resolve("main.go", Flags{Interactive: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if kind != File {
			t.Errorf("expected file, got %s", kind)
		}
		if len(prompter.asked) != 0 {
			t.Errorf("prompter should not be asked, got %v", prompter.asked)
		}
	})

	t.Run("prompt failure", func(t *testing.T) {
		prompter := &mockPrompter{err: errors.NotFound("standard input is not a terminal")}
		r := NewResolver(missing, prompter)

		_, _, err := r.Resolve("project", Flags{Interactive: true})
		if !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("no prompter", func(t *testing.T) {
		r := NewResolver(missing, nil)

		_, _, err := r.Resolve("project", Flags{Interactive: true})
		if !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}

func TestResolveLookupError(t *testing.T) {
	denied := func(string) (fs.FileInfo, error) { return nil, fs.ErrPermission }
	r := NewResolver(denied, nil)

	_, _, err := r.Resolve("secret", Flags{})
	if !errors.Is(err, errors.ErrPermission) {
		t.Errorf("expected permission error, got %v", err)
	}
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.txt", true},
		{"dir/archive.tar.gz", true},
		{"dir.d/file", false},
		{".bashrc", false},
		{"name.", false},
		{"..", false},
		{"plain", false},
	}

	for _, tt := range tests {
		if got := HasExtension(tt.path); got != tt.want {
			t.Errorf("HasExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestHasTrailingSeparator(t *testing.T) {
	if !HasTrailingSeparator("a/b/") {
		t.Error("expected trailing separator")
	}
	if HasTrailingSeparator("a/b") {
		t.Error("unexpected trailing separator")
	}
}
