//go:build linux

package gitlite

import (
	"os"
	"syscall"

	"github.com/gitlite/gitlite/gitcore/index"
)

// fillStatEntry completes an index entry with the stat fields only
// the OS can provide: ctime, device, inode, uid, and gid.
// Files coming from an in-memory filesystem don't have them, in which
// case they stay zero
func fillStatEntry(fi os.FileInfo, e *index.Entry) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	e.CtimeSec = uint32(st.Ctim.Sec)
	e.CtimeNsec = uint32(st.Ctim.Nsec)
	e.MtimeSec = uint32(st.Mtim.Sec)
	e.MtimeNsec = uint32(st.Mtim.Nsec)
	e.Dev = uint32(st.Dev)
	e.Ino = uint32(st.Ino)
	e.UID = st.Uid
	e.GID = st.Gid
}

// statTimes returns the ctime and mtime of a file as nanoseconds,
// matching the granularity stored in the index
func statTimes(fi os.FileInfo) (ctimeNanos, mtimeNanos int64) {
	mtimeNanos = int64(uint32(fi.ModTime().Unix()))*1e9 + int64(uint32(fi.ModTime().Nanosecond()))
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, mtimeNanos
	}
	ctimeNanos = int64(uint32(st.Ctim.Sec))*1e9 + int64(uint32(st.Ctim.Nsec))
	mtimeNanos = int64(uint32(st.Mtim.Sec))*1e9 + int64(uint32(st.Mtim.Nsec))
	return ctimeNanos, mtimeNanos
}
