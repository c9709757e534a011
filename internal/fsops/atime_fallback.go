//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package fsops

import (
	"os"
	"time"

	"github.com/d-kuro/bank/internal/errors"
)

// accessTime fails rather than substituting the modification time.
func accessTime(path string, _ os.FileInfo) (time.Time, error) {
	return time.Time{}, errors.IO("reading access times is not supported on this platform: %s", path)
}
