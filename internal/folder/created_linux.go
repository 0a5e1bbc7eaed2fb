//go:build linux

package folder

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// createdTime reports the birth time when the filesystem records one and
// falls back to the modification time otherwise.
func createdTime(path string, info os.FileInfo) time.Time {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err != nil {
		return info.ModTime()
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return info.ModTime()
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
