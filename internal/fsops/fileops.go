// Package fsops provides the filesystem operations applied to each target:
// existence lookups, file and directory creation, permissions and timestamps.
package fsops

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/d-kuro/bank/internal/errors"
	"github.com/d-kuro/bank/internal/security"
)

// Times outside this range have no nanosecond Unix representation.
var (
	minTime = time.Unix(0, math.MinInt64)
	maxTime = time.Unix(0, math.MaxInt64)
)

// FileOps provides file operation utilities with path validation.
type FileOps struct {
	validator security.Validator
}

// NewFileOps creates a new FileOps instance with the given validator.
func NewFileOps(validator security.Validator) *FileOps {
	return &FileOps{
		validator: validator,
	}
}

// ValidateAndSanitizePath validates and sanitizes a target path using the validator.
func (f *FileOps) ValidateAndSanitizePath(path string) (string, error) {
	sanitizedPath, err := f.validator.SanitizePath(path)
	if err != nil {
		return "", errors.Wrap(err, "invalid path")
	}

	if err := f.validator.ValidatePath(sanitizedPath); err != nil {
		return "", errors.Wrap(err, "path validation failed")
	}

	return sanitizedPath, nil
}

// Lookup stats path. With follow unset a symlink is reported as itself.
func (f *FileOps) Lookup(path string, follow bool) (fs.FileInfo, error) {
	if follow {
		return os.Stat(path)
	}
	return os.Lstat(path)
}

// CreateFile creates an empty file if path does not exist and reports
// whether it did. An existing file is left untouched. With follow set a
// dangling symlink gets its target created.
func (f *FileOps) CreateFile(path string, follow bool) (bool, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if errors.Is(err, fs.ErrExist) {
		if !follow {
			return false, nil
		}
		if _, statErr := os.Stat(path); !errors.Is(statErr, fs.ErrNotExist) {
			return false, nil
		}
		file, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o666)
	}
	if err != nil {
		return false, createError(err, "failed to create file %s", path)
	}
	if err := file.Close(); err != nil {
		return true, errors.Classify(err, "failed to close file %s", path)
	}
	return true, nil
}

// CreateDir creates the directory path, with all missing parents when
// parents is set, and reports whether path itself was created. An existing
// directory is not an error; an existing non-directory is.
func (f *FileOps) CreateDir(path string, parents bool) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, errors.IO("path exists but is not a directory: %s", path)
	case !errors.Is(err, fs.ErrNotExist):
		return false, errors.Classify(err, "failed to stat %s", path)
	}

	if parents {
		err = os.MkdirAll(path, 0o777)
	} else {
		err = os.Mkdir(path, 0o777)
	}
	if errors.Is(err, fs.ErrExist) {
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return false, nil
		}
	}
	if err != nil {
		return false, createError(err, "failed to create directory %s", path)
	}
	return true, nil
}

// EnsureParent creates the missing parent directories of path. It returns
// the parent directory when something was created and "" otherwise.
func (f *FileOps) EnsureParent(path string) (string, error) {
	parent := filepath.Dir(filepath.Clean(path))
	if _, err := os.Stat(parent); err == nil {
		return "", nil
	}
	if err := os.MkdirAll(parent, 0o777); err != nil {
		return "", createError(err, "failed to create parent directories for %s", path)
	}
	return parent, nil
}

// createError classifies a failed create. A missing parent is an I/O
// failure of the create, not a missing target.
func createError(err error, format string, args ...interface{}) error {
	if errors.Is(err, fs.ErrPermission) {
		return errors.PermissionWithCause(err, format, args...)
	}
	return errors.IOWithCause(err, format, args...)
}

// Chmod sets the permission bits of path.
func (f *FileOps) Chmod(path string, mode os.FileMode) error {
	if err := os.Chmod(path, mode); err != nil {
		return errors.Classify(err, "failed to set permissions for %s", path)
	}
	return nil
}

// StatTimes returns the access and modification times of path. With follow
// unset the times of a symlink itself are returned.
func (f *FileOps) StatTimes(path string, follow bool) (atime, mtime time.Time, err error) {
	atime, mtime, err = statTimes(path, follow)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Classify(err, "failed to read timestamps for %s", path)
	}
	return atime, mtime, nil
}

// SetTimes sets the access and modification times of path. A zero time
// keeps the current value of that field. With follow unset a symlink's own
// times are changed instead of its target's.
func (f *FileOps) SetTimes(path string, atime, mtime time.Time, follow bool) error {
	if atime.IsZero() && mtime.IsZero() {
		return nil
	}
	for _, t := range []time.Time{atime, mtime} {
		if !t.IsZero() && (t.Before(minTime) || t.After(maxTime)) {
			return errors.IO("timestamp %s for %s is outside the supported range", t.Format(time.RFC3339), path)
		}
	}
	if err := setTimes(path, atime, mtime, follow); err != nil {
		return errors.Classify(err, "failed to set timestamps for %s", path)
	}
	return nil
}

// ParseMode parses an octal permission string such as "755" or "0644".
// Setuid, setgid and sticky bits are accepted.
func ParseMode(s string) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Parse("invalid mode format: empty")
	}

	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, errors.ParseWithCause(err, "invalid mode format: %s", s)
	}
	if v > 0o7777 {
		return 0, errors.Parse("invalid mode format: %s is out of range", s)
	}

	mode := os.FileMode(v & 0o777)
	if v&0o4000 != 0 {
		mode |= os.ModeSetuid
	}
	if v&0o2000 != 0 {
		mode |= os.ModeSetgid
	}
	if v&0o1000 != 0 {
		mode |= os.ModeSticky
	}
	return mode, nil
}

// FormatMode renders mode in the octal form ParseMode accepts.
func FormatMode(mode os.FileMode) string {
	v := uint32(mode.Perm())
	if mode&os.ModeSetuid != 0 {
		v |= 0o4000
	}
	if mode&os.ModeSetgid != 0 {
		v |= 0o2000
	}
	if mode&os.ModeSticky != 0 {
		v |= 0o1000
	}
	return strconv.FormatUint(uint64(v), 8)
}
