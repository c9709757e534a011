//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package fsops

import (
	"os"
	"time"

	"github.com/d-kuro/bank/internal/errors"
)

func setTimes(path string, atime, mtime time.Time, follow bool) error {
	if !follow {
		info, err := os.Lstat(path)
		if err != nil {
			return err
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return errors.IO("changing symlink timestamps is not supported on this platform: %s", path)
		}
	}
	return os.Chtimes(path, atime, mtime)
}
