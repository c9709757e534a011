// Package security provides path validation for filesystem targets.
package security

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/d-kuro/bank/internal/errors"
)

// Validator defines the path validation interface.
type Validator interface {
	ValidatePath(path string) error
	SanitizePath(path string) (string, error)
}

// DefaultValidator provides default path validation implementation.
type DefaultValidator struct {
	protectedPaths []string
}

// NewDefaultValidator creates a validator with no protected paths.
func NewDefaultValidator() *DefaultValidator {
	return &DefaultValidator{}
}

// WithProtectedPaths adds directories that must never be created or touched.
// Relative entries are made absolute against the working directory; an
// existing entry reached through a symlink is also recorded resolved.
func (v *DefaultValidator) WithProtectedPaths(paths []string) *DefaultValidator {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		p = filepath.Clean(p)
		v.protectedPaths = append(v.protectedPaths, p)
		if resolved, err := filepath.EvalSymlinks(p); err == nil && resolved != p {
			v.protectedPaths = append(v.protectedPaths, resolved)
		}
	}
	return v
}

// SanitizePath rejects arguments that can never name a filesystem entry.
// The path is returned unchanged so a trailing separator stays visible to
// type detection.
func (v *DefaultValidator) SanitizePath(path string) (string, error) {
	if path == "" {
		return "", errors.Configuration("path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", errors.Configuration("path contains a NUL byte: %q", path)
	}
	return path, nil
}

// ValidatePath checks that path is outside every protected directory.
func (v *DefaultValidator) ValidatePath(path string) error {
	if len(v.protectedPaths) == 0 {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.IOWithCause(err, "cannot resolve %s", path)
	}
	resolved := resolveExisting(absPath)

	for _, protected := range v.protectedPaths {
		if within(absPath, protected) || within(resolved, protected) {
			return errors.Permission("%s is inside protected path %s", path, protected)
		}
	}
	return nil
}

// resolveExisting evaluates symlinks in the longest existing prefix of path.
func resolveExisting(path string) string {
	rest := ""
	current := path
	for {
		if _, err := os.Lstat(current); err == nil {
			if resolved, err := filepath.EvalSymlinks(current); err == nil {
				return filepath.Join(resolved, rest)
			}
			break
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		rest = filepath.Join(filepath.Base(current), rest)
		current = parent
	}
	return path
}

func within(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}
