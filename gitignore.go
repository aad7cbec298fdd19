package gitlite

import (
	"os"
	"path"
	"path/filepath"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/gitignore"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// GitIgnore assembles every ignore rule applying to the repository.
//
// Scoped rules come from the .gitignore blobs present in the index
// (not from the files on disk: an unstaged .gitignore has no effect
// yet). Absolute rules come from the user's global ignore file and
// from .git/info/exclude
func (r *Repository) GitIgnore() (*gitignore.Ruleset, error) {
	rs := gitignore.NewRuleset()

	// Absolute rulesets, checked in this order
	xdgHome := r.env("XDG_CONFIG_HOME")
	if xdgHome == "" {
		xdgHome = filepath.Join(r.env("HOME"), ".config")
	}
	absoluteSources := []string{
		filepath.Join(xdgHome, "git", "ignore"),
		r.gitPath(filepath.FromSlash(gitcore.ExcludePath)),
	}
	for _, p := range absoluteSources {
		data, err := afero.ReadFile(r.fs, p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, xerrors.Errorf("could not read %s: %w", p, err)
		}
		rs.Absolute = append(rs.Absolute, gitignore.Parse(data))
	}

	// Scoped rulesets, one per .gitignore staged in the index
	idx, err := r.Index()
	if err != nil {
		return nil, err
	}
	for _, e := range idx.Entries() {
		if path.Base(e.Path) != ".gitignore" {
			continue
		}
		o, err := r.Object(e.ID)
		if err != nil {
			return nil, xerrors.Errorf("could not read the blob of %s: %w", e.Path, err)
		}
		rs.Scoped[path.Dir(e.Path)] = gitignore.Parse(o.Bytes())
	}

	return rs, nil
}
