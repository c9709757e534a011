//go:build windows

package fsops

import (
	"os"
	"syscall"
	"time"

	"github.com/d-kuro/bank/internal/errors"
)

func accessTime(path string, info os.FileInfo) (time.Time, error) {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, errors.IO("access time unavailable for %s", path)
	}
	return time.Unix(0, data.LastAccessTime.Nanoseconds()), nil
}
