//go:build linux || darwin || freebsd || netbsd || openbsd

package fsops

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func setTimes(path string, atime, mtime time.Time, follow bool) error {
	at, err := timeToTimespec(atime)
	if err != nil {
		return &os.PathError{Op: "utimensat", Path: path, Err: err}
	}
	mt, err := timeToTimespec(mtime)
	if err != nil {
		return &os.PathError{Op: "utimensat", Path: path, Err: err}
	}

	flags := 0
	if !follow {
		flags = unix.AT_SYMLINK_NOFOLLOW
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, path, []unix.Timespec{at, mt}, flags); err != nil {
		return &os.PathError{Op: "utimensat", Path: path, Err: err}
	}
	return nil
}

// timeToTimespec maps the zero time to UTIME_OMIT so the field is left alone.
func timeToTimespec(t time.Time) (unix.Timespec, error) {
	if t.IsZero() {
		return unix.Timespec{Sec: 0, Nsec: unix.UTIME_OMIT}, nil
	}
	return unix.TimeToTimespec(t)
}
