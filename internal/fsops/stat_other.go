//go:build !linux

package fsops

import (
	"os"
	"time"
)

func statTimes(path string, follow bool) (time.Time, time.Time, error) {
	var info os.FileInfo
	var err error
	if follow {
		info, err = os.Stat(path)
	} else {
		info, err = os.Lstat(path)
	}
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	atime, err := accessTime(path, info)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return atime, info.ModTime(), nil
}
