package gitlite

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Status describes how HEAD, the index, and the working tree differ
type Status struct {
	// Branch is the short name of the active branch, empty when HEAD
	// is detached
	Branch string
	// DetachedOid is the commit HEAD points to when detached
	DetachedOid gitcore.Oid

	// Changes to be committed (HEAD vs index)
	Added    []string
	Modified []string
	Deleted  []string

	// Changes not staged for commit (index vs working tree)
	WorktreeModified []string
	WorktreeDeleted  []string

	// Files in the working tree that are neither staged nor ignored
	Untracked []string
}

// TreeToDict resolves the given name to a tree and flattens it
// recursively into a map of full path to blob oid
func (r *Repository) TreeToDict(name string) (map[string]gitcore.Oid, error) {
	out := map[string]gitcore.Oid{}

	oid, err := r.ResolveName(name, object.TypeTree, true)
	if err != nil {
		return nil, err
	}
	if err := r.flattenTree(oid, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) flattenTree(oid gitcore.Oid, prefix string, out map[string]gitcore.Oid) error {
	o, err := r.Object(oid)
	if err != nil {
		return err
	}
	tree, err := o.AsTree()
	if err != nil {
		return err
	}

	for _, e := range tree.Entries() {
		full := path.Join(prefix, e.Path)
		if e.Mode.IsDirectory() {
			if err := r.flattenTree(e.ID, full, out); err != nil {
				return err
			}
			continue
		}
		out[full] = e.ID
	}
	return nil
}

// Status computes the state of the repository: the differences
// between HEAD and the index (changes to be committed), between the
// index and the working tree (changes not staged), and the untracked
// files
func (r *Repository) Status() (st *Status, err error) {
	st = &Status{}

	if st.Branch, err = r.ActiveBranch(); err != nil {
		return nil, err
	}
	if st.Branch == "" {
		ref, err := r.Reference(gitcore.Head)
		if err != nil && !errors.Is(err, gitcore.ErrRefNotFound) {
			return nil, err
		}
		if err == nil {
			st.DetachedOid = ref.Target()
		}
	}

	idx, err := r.Index()
	if err != nil {
		return nil, err
	}

	// HEAD vs index.
	// An unborn branch has no commit yet, which is the same as
	// comparing against an empty tree
	head := map[string]gitcore.Oid{}
	if _, err := r.Reference(gitcore.Head); err == nil {
		if head, err = r.TreeToDict(gitcore.Head); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, gitcore.ErrRefNotFound) {
		return nil, err
	}

	for _, e := range idx.Entries() {
		headOid, tracked := head[e.Path]
		switch {
		case !tracked:
			st.Added = append(st.Added, e.Path)
		case headOid != e.ID:
			st.Modified = append(st.Modified, e.Path)
		}
		delete(head, e.Path)
	}
	for p := range head {
		st.Deleted = append(st.Deleted, p)
	}
	sort.Strings(st.Deleted)

	// Index vs working tree
	worktreeFiles, err := r.worktreeFiles()
	if err != nil {
		return nil, err
	}

	for _, e := range idx.Entries() {
		fi, seen := worktreeFiles[e.Path]
		if !seen {
			st.WorktreeDeleted = append(st.WorktreeDeleted, e.Path)
			continue
		}
		delete(worktreeFiles, e.Path)

		// If the cached stat times match the file hasn't changed.
		// Otherwise we have to re-hash the content, since touching a
		// file doesn't necessarily modify it
		ctimeNanos, mtimeNanos := statTimes(fi)
		if ctimeNanos == e.CtimeNanos() && mtimeNanos == e.MtimeNanos() {
			continue
		}
		data, err := afero.ReadFile(r.fs, r.workTreePath(e.Path))
		if err != nil {
			return nil, xerrors.Errorf("could not read %s: %w", e.Path, err)
		}
		if object.New(object.TypeBlob, data).ID() != e.ID {
			st.WorktreeModified = append(st.WorktreeModified, e.Path)
		}
	}

	// Whatever is left on disk is untracked, unless ignored
	ignore, err := r.GitIgnore()
	if err != nil {
		return nil, err
	}
	for p := range worktreeFiles {
		ignored, err := ignore.CheckIgnore(p)
		if err != nil {
			return nil, err
		}
		if !ignored {
			st.Untracked = append(st.Untracked, p)
		}
	}
	sort.Strings(st.Untracked)

	return st, nil
}

// worktreeFiles walks the working tree and returns every file in it,
// skipping the .git directory, keyed by path relative to the root of
// the work tree
func (r *Repository) worktreeFiles() (map[string]os.FileInfo, error) {
	files := map[string]os.FileInfo{}

	err := afero.Walk(r.fs, r.worktree, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if p == r.gitDir {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := r.workTreeRel(p)
		if err != nil {
			return err
		}
		files[rel] = info
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("could not walk the working tree: %w", err)
	}
	return files, nil
}
