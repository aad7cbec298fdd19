package gitlite

import (
	"errors"
	"strings"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/config"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Commit writes a tree from the current index, wraps it in a commit
// object with the current HEAD as parent (if any), and advances the
// active branch (or HEAD itself when detached) to the new commit.
//
// The author and committer are read from the user's global config
func (r *Repository) Commit(message string) (*object.Commit, error) {
	idx, err := r.Index()
	if err != nil {
		return nil, err
	}
	treeID, err := r.WriteTreeFromIndex(idx)
	if err != nil {
		return nil, err
	}

	opts := &object.CommitOptions{
		Message: message,
	}
	if !strings.HasSuffix(opts.Message, "\n") {
		opts.Message += "\n"
	}

	// HEAD doesn't resolve on an unborn branch: the commit we're
	// creating is then a root commit, with no parent
	head, err := r.Reference(gitcore.Head)
	switch {
	case err == nil:
		opts.ParentIDs = []gitcore.Oid{head.Target()}
	case !errors.Is(err, gitcore.ErrRefNotFound):
		return nil, err
	}

	name, email, err := config.Identity(r.fs, r.env)
	if err != nil {
		return nil, err
	}

	ci := object.NewCommit(treeID, object.NewSignature(name, email), opts)
	oid, err := r.WriteObject(ci.ToObject())
	if err != nil {
		return nil, err
	}

	// Advance the active branch, or HEAD directly when detached
	branch, err := r.ActiveBranch()
	if err != nil {
		return nil, err
	}
	if branch != "" {
		ref := gitcore.NewReference(gitcore.LocalBranchFullName(branch), oid)
		if err := r.WriteReference(ref); err != nil {
			return nil, err
		}
		return ci, nil
	}
	if err := afero.WriteFile(r.fs, r.refPath(gitcore.Head), []byte(oid.String()+"\n"), 0o644); err != nil {
		return nil, xerrors.Errorf("could not update HEAD: %w", err)
	}
	return ci, nil
}
