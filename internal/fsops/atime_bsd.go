//go:build darwin || freebsd || netbsd

package fsops

import (
	"os"
	"syscall"
	"time"

	"github.com/d-kuro/bank/internal/errors"
)

func accessTime(path string, info os.FileInfo) (time.Time, error) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, errors.IO("access time unavailable for %s", path)
	}
	return time.Unix(st.Atimespec.Unix()), nil
}
