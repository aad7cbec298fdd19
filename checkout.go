package gitlite

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

var (
	// ErrTargetNotDirectory is thrown when the target of a checkout
	// exists but is not a directory
	ErrTargetNotDirectory = errors.New("target is not a directory")

	// ErrTargetNotEmpty is thrown when the target directory of a
	// checkout is not empty
	ErrTargetNotEmpty = errors.New("target directory is not empty")
)

// Checkout instantiates the tree of the given commit (or the given
// tree directly) inside dir, which must be empty or missing
func (r *Repository) Checkout(name, dir string) error {
	oid, err := r.ResolveName(name, object.TypeTree, true)
	if err != nil {
		return err
	}

	exists, err := afero.Exists(r.fs, dir)
	if err != nil {
		return xerrors.Errorf("could not check %s: %w", dir, err)
	}
	if exists {
		isDir, err := afero.IsDir(r.fs, dir)
		if err != nil {
			return xerrors.Errorf("could not check %s: %w", dir, err)
		}
		if !isDir {
			return xerrors.Errorf("%s: %w", dir, ErrTargetNotDirectory)
		}
		empty, err := afero.IsEmpty(r.fs, dir)
		if err != nil {
			return xerrors.Errorf("could not check %s: %w", dir, err)
		}
		if !empty {
			return xerrors.Errorf("%s: %w", dir, ErrTargetNotEmpty)
		}
	} else if err := r.fs.MkdirAll(dir, 0o755); err != nil {
		return xerrors.Errorf("could not create %s: %w", dir, err)
	}

	return r.checkoutTree(oid, dir)
}

// checkoutTree writes the blobs and subtrees of a tree under dest,
// depth first
func (r *Repository) checkoutTree(oid gitcore.Oid, dest string) error {
	o, err := r.Object(oid)
	if err != nil {
		return err
	}
	tree, err := o.AsTree()
	if err != nil {
		return err
	}

	for _, e := range tree.Entries() {
		target := filepath.Join(dest, e.Path)

		if e.Mode.IsDirectory() {
			if err := r.fs.Mkdir(target, 0o755); err != nil {
				return xerrors.Errorf("could not create %s: %w", target, err)
			}
			if err := r.checkoutTree(e.ID, target); err != nil {
				return err
			}
			continue
		}

		blob, err := r.Object(e.ID)
		if err != nil {
			return err
		}
		perms := fs.FileMode(0o644)
		if e.Mode == object.ModeExecutable {
			perms = 0o755
		}
		if err := afero.WriteFile(r.fs, target, blob.Bytes(), perms); err != nil {
			return xerrors.Errorf("could not write %s: %w", target, err)
		}
	}
	return nil
}
