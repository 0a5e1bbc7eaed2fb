//go:build !linux

package folder

import (
	"os"
	"time"
)

func createdTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
