package gitlite

import (
	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
)

// WalkHistory walks the commit graph depth first starting at from,
// following each commit's parents in order, and calls fn once per
// commit. A commit reachable through several paths is visited on the
// first path that reaches it, so across merges a parent can be visited
// before one of its children
func (r *Repository) WalkHistory(from gitcore.Oid, fn func(*object.Commit) error) error {
	seen := map[gitcore.Oid]struct{}{}
	return r.walkHistory(from, fn, seen)
}

func (r *Repository) walkHistory(oid gitcore.Oid, fn func(*object.Commit) error, seen map[gitcore.Oid]struct{}) error {
	if _, ok := seen[oid]; ok {
		return nil
	}
	seen[oid] = struct{}{}

	o, err := r.Object(oid)
	if err != nil {
		return err
	}
	ci, err := o.AsCommit()
	if err != nil {
		return err
	}
	if err := fn(ci); err != nil {
		return err
	}

	for _, parent := range ci.ParentIDs() {
		if err := r.walkHistory(parent, fn, seen); err != nil {
			return err
		}
	}
	return nil
}
