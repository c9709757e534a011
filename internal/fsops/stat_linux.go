//go:build linux

package fsops

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func statTimes(path string, follow bool) (time.Time, time.Time, error) {
	var st unix.Stat_t
	var err error
	if follow {
		err = unix.Stat(path, &st)
	} else {
		err = unix.Lstat(path, &st)
	}
	if err != nil {
		op := "stat"
		if !follow {
			op = "lstat"
		}
		return time.Time{}, time.Time{}, &os.PathError{Op: op, Path: path, Err: err}
	}
	return time.Unix(st.Atim.Unix()), time.Unix(st.Mtim.Unix()), nil
}
