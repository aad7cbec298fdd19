package gitlite

import (
	"path"
	"sort"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/index"
	"github.com/gitlite/gitlite/gitcore/object"
	"golang.org/x/xerrors"
)

// WriteTreeFromIndex folds the flat list of paths of the index into
// nested tree objects, writes them all, and returns the Oid of the
// root tree.
//
// Children are built before their parents: the buckets (one per
// directory present in the index) are processed deepest first, each
// tree's oid becoming a subtree leaf in its parent's bucket
func (r *Repository) WriteTreeFromIndex(idx *index.Index) (gitcore.Oid, error) {
	// Every directory gets a bucket, up to the root (""). The root
	// bucket always exists so an empty index produces the empty tree
	buckets := map[string][]object.TreeEntry{
		"": {},
	}
	for _, e := range idx.Entries() {
		for d := dirOf(e.Path); d != ""; d = dirOf(d) {
			if _, ok := buckets[d]; !ok {
				buckets[d] = []object.TreeEntry{}
			}
		}
		buckets[dirOf(e.Path)] = append(buckets[dirOf(e.Path)], object.TreeEntry{
			Mode: object.TreeObjectMode(e.Mode()),
			Path: path.Base(e.Path),
			ID:   e.ID,
		})
	}

	// Deepest directories first, so a tree is always written after
	// every tree below it
	dirs := make([]string, 0, len(buckets))
	for d := range buckets {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		return len(dirs[i]) > len(dirs[j])
	})

	var rootOid gitcore.Oid
	for _, d := range dirs {
		tree := object.NewTree(buckets[d])
		oid, err := r.WriteObject(tree.ToObject())
		if err != nil {
			return gitcore.NullOid, xerrors.Errorf("could not write the tree of %q: %w", d, err)
		}

		if d == "" {
			rootOid = oid
			continue
		}
		parent := dirOf(d)
		buckets[parent] = append(buckets[parent], object.TreeEntry{
			Mode: object.ModeDirectory,
			Path: path.Base(d),
			ID:   oid,
		})
	}

	return rootOid, nil
}
