package gitlite

import (
	"errors"
	"os"
	"path"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/index"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

var (
	// ErrPathOutsideWorktree is thrown when a path given to a command
	// is not inside the working tree of the repository
	ErrPathOutsideWorktree = errors.New("path is outside the working tree")

	// ErrPathNotStaged is thrown when trying to remove a path that
	// isn't in the index
	ErrPathNotStaged = errors.New("path is not in the index")
)

// RemoveOptions contains the optional behaviors of Remove
type RemoveOptions struct {
	// KeepFiles prevents the files from being deleted from the
	// working tree
	KeepFiles bool
	// SkipMissing makes paths that aren't staged a no-op instead of
	// an error
	SkipMissing bool
}

// Add stages the given files: their current content is stored as
// blobs, and the index entries are created or refreshed.
// Paths may be absolute or relative to the current directory, but
// must be inside the working tree
func (r *Repository) Add(paths []string) error {
	// If a file was already staged we drop the stale entry first,
	// keeping the file on disk
	if err := r.Remove(paths, &RemoveOptions{KeepFiles: true, SkipMissing: true}); err != nil {
		return err
	}

	idx, err := r.Index()
	if err != nil {
		return err
	}

	for _, p := range paths {
		rel, err := r.workTreeRel(p)
		if err != nil {
			return err
		}
		abs := r.workTreePath(rel)

		isDir, err := afero.IsDir(r.fs, abs)
		if err != nil {
			return xerrors.Errorf("could not stat %s: %w", p, err)
		}
		if isDir {
			return xerrors.Errorf("%s is a directory, only files can be staged", p)
		}

		data, err := afero.ReadFile(r.fs, abs)
		if err != nil {
			return xerrors.Errorf("could not read %s: %w", p, err)
		}
		oid, err := r.WriteObject(object.New(object.TypeBlob, data))
		if err != nil {
			return err
		}

		fi, err := r.fs.Stat(abs)
		if err != nil {
			return xerrors.Errorf("could not stat %s: %w", p, err)
		}
		idx.Add(newIndexEntry(rel, oid, fi))
	}

	return r.writeIndex(idx)
}

// Remove unstages the given files and, unless opts.KeepFiles is set,
// deletes them from the working tree
func (r *Repository) Remove(paths []string, opts *RemoveOptions) error {
	if opts == nil {
		opts = &RemoveOptions{}
	}

	idx, err := r.Index()
	if err != nil {
		return err
	}

	toDelete := []string{}
	for _, p := range paths {
		rel, err := r.workTreeRel(p)
		if err != nil {
			return err
		}

		if _, ok := idx.Entry(rel); !ok {
			if opts.SkipMissing {
				continue
			}
			return xerrors.Errorf("%s: %w", p, ErrPathNotStaged)
		}
		idx.Remove(rel)
		toDelete = append(toDelete, rel)
	}

	if !opts.KeepFiles {
		for _, rel := range toDelete {
			if err := r.fs.Remove(r.workTreePath(rel)); err != nil && !os.IsNotExist(err) {
				return xerrors.Errorf("could not delete %s: %w", rel, err)
			}
		}
	}

	return r.writeIndex(idx)
}

// newIndexEntry builds an index entry from the stat information of a
// file on disk
func newIndexEntry(rel string, oid gitcore.Oid, fi os.FileInfo) *index.Entry {
	e := &index.Entry{
		ModeType:  index.ModeTypeRegular,
		ModePerms: 0o644,
		FileSize:  uint32(fi.Size()),
		ID:        oid,
		Stage:     0,
		Path:      path.Clean(rel),
	}
	if fi.Mode()&0o111 != 0 {
		e.ModePerms = 0o755
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		e.ModeType = index.ModeTypeSymlink
		e.ModePerms = 0
	}
	e.MtimeSec = uint32(fi.ModTime().Unix())
	e.MtimeNsec = uint32(fi.ModTime().Nanosecond())
	// dev, ino, uid, gid, and ctime only exist on some platforms
	fillStatEntry(fi, e)
	return e
}
