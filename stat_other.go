//go:build !linux

package gitlite

import (
	"os"

	"github.com/gitlite/gitlite/gitcore/index"
)

// fillStatEntry completes an index entry with the stat fields only
// the OS can provide. On platforms without a full stat structure the
// fields stay zero, so the stat shortcut of the status computation
// compares the mtime alone (the ctime is zero on both sides)
func fillStatEntry(fi os.FileInfo, e *index.Entry) {}

// statTimes returns the ctime and mtime of a file as nanoseconds,
// matching the granularity stored in the index
func statTimes(fi os.FileInfo) (ctimeNanos, mtimeNanos int64) {
	return 0, int64(uint32(fi.ModTime().Unix()))*1e9 + int64(uint32(fi.ModTime().Nanosecond()))
}
