// Package gitlite implements a minimal content-addressed version
// control system compatible at the on-disk level with the git
// repository layout: loose objects, references, the binary staging
// index, and the status/diff computation between HEAD, index, and
// working tree
package gitlite

import (
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/config"
	"github.com/gitlite/gitlite/gitcore/index"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/ini.v1"
)

// List of errors returned by the Repository struct
var (
	// ErrNotARepository is thrown when no .git directory could be
	// found in the given directory or any of its parents
	ErrNotARepository = errors.New("not a git repository (or any of the parent directories)")

	// ErrRepositoryUnsupportedVersion is thrown when the
	// repositoryformatversion of a repo isn't supported
	ErrRepositoryUnsupportedVersion = errors.New("repository format version not supported")

	// ErrRepositoryExists is thrown when initializing a repository
	// in a place that already contains one
	ErrRepositoryExists = errors.New("repository already exists")
)

// Repository represents a git repository.
// A git repository is a working tree and the .git/ directory inside
// it, which tracks all changes made to the files of the project
// https://git-scm.com/book/en/v2/Git-Internals-Plumbing-and-Porcelain
type Repository struct {
	fs   afero.Fs
	env  config.Env
	conf *ini.File

	worktree string
	gitDir   string
}

// Options contains the optional dependencies of a Repository.
// The zero value uses the OS filesystem and environment
type Options struct {
	// FS represents the filesystem implementation to use.
	// Defaults to the OS filesystem
	FS afero.Fs
	// Env represents the method used to look up environment
	// variables. Defaults to os.Getenv
	Env config.Env
}

func (o *Options) setDefaults() {
	if o.FS == nil {
		o.FS = afero.NewOsFs()
	}
	if o.Env == nil {
		o.Env = os.Getenv
	}
}

// InitRepository initializes a new git repository by creating the
// .git directory in the given path, which is where almost everything
// git stores and manipulates is located
func InitRepository(repoPath string, opts *Options) (*Repository, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.setDefaults()

	r := &Repository{
		fs:       opts.FS,
		env:      opts.Env,
		worktree: repoPath,
		gitDir:   filepath.Join(repoPath, gitcore.DotGitPath),
	}

	// The path must either not exist, or be a directory with an
	// empty-or-missing .git
	exists, err := afero.Exists(r.fs, repoPath)
	if err != nil {
		return nil, xerrors.Errorf("could not check %s: %w", repoPath, err)
	}
	if exists {
		isDir, err := afero.IsDir(r.fs, repoPath)
		if err != nil {
			return nil, xerrors.Errorf("could not check %s: %w", repoPath, err)
		}
		if !isDir {
			return nil, xerrors.Errorf("%s is not a directory", repoPath)
		}
		hasGitDir, err := afero.DirExists(r.fs, r.gitDir)
		if err != nil {
			return nil, xerrors.Errorf("could not check %s: %w", r.gitDir, err)
		}
		if hasGitDir {
			empty, err := afero.IsEmpty(r.fs, r.gitDir)
			if err != nil {
				return nil, xerrors.Errorf("could not check %s: %w", r.gitDir, err)
			}
			if !empty {
				return nil, xerrors.Errorf("%s: %w", r.gitDir, ErrRepositoryExists)
			}
		}
	}

	// Create the directories
	dirs := []string{
		gitcore.BranchesPath,
		gitcore.ObjectsPath,
		gitcore.RefsTagsPath,
		gitcore.RefsHeadsPath,
		gitcore.InfoPath,
	}
	for _, d := range dirs {
		if err := r.fs.MkdirAll(r.gitPath(d), 0o755); err != nil {
			return nil, xerrors.Errorf("could not create directory %s: %w", d, err)
		}
	}

	// Create the files with their default content
	description := "Unnamed repository; edit this file 'description' to name the repository.\n"
	if err := afero.WriteFile(r.fs, r.gitPath(gitcore.DescriptionPath), []byte(description), 0o644); err != nil {
		return nil, xerrors.Errorf("could not create the description file: %w", err)
	}

	ref := gitcore.NewSymbolicReference(gitcore.Head, gitcore.LocalBranchFullName(gitcore.Master))
	if err := r.WriteReference(ref); err != nil {
		return nil, xerrors.Errorf("could not write HEAD: %w", err)
	}

	if err := config.WriteDefault(r.fs, r.gitPath(gitcore.ConfigPath)); err != nil {
		return nil, err
	}
	if r.conf, err = config.Load(r.fs, r.gitPath(gitcore.ConfigPath)); err != nil {
		return nil, err
	}

	return r, nil
}

// OpenRepository loads the existing git repository at the given path
// after validating its config, and returns a Repository instance
func OpenRepository(repoPath string, opts *Options) (*Repository, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.setDefaults()

	r := &Repository{
		fs:       opts.FS,
		env:      opts.Env,
		worktree: repoPath,
		gitDir:   filepath.Join(repoPath, gitcore.DotGitPath),
	}

	isDir, err := afero.DirExists(r.fs, r.gitDir)
	if err != nil {
		return nil, xerrors.Errorf("could not check %s: %w", r.gitDir, err)
	}
	if !isDir {
		return nil, xerrors.Errorf("%s: %w", repoPath, ErrNotARepository)
	}

	// Validate the config
	// https://git-scm.com/docs/git-config
	if r.conf, err = config.Load(r.fs, r.gitPath(gitcore.ConfigPath)); err != nil {
		return nil, err
	}
	version, ok := config.RepoFormatVersion(r.conf)
	if !ok || version != 0 {
		return nil, xerrors.Errorf("version %d: %w", version, ErrRepositoryUnsupportedVersion)
	}

	return r, nil
}

// FindRepository looks for a repository in the given directory or,
// recursively, in any of its parents
func FindRepository(fromPath string, opts *Options) (*Repository, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.setDefaults()

	current, err := filepath.Abs(fromPath)
	if err != nil {
		return nil, xerrors.Errorf("could not canonicalize %s: %w", fromPath, err)
	}

	for {
		found, err := afero.DirExists(opts.FS, filepath.Join(current, gitcore.DotGitPath))
		if err != nil {
			return nil, xerrors.Errorf("could not check %s: %w", current, err)
		}
		if found {
			return OpenRepository(current, opts)
		}

		parent := filepath.Dir(current)
		if parent == current {
			// we reached the root of the filesystem
			return nil, xerrors.Errorf("%s: %w", fromPath, ErrNotARepository)
		}
		current = parent
	}
}

// Worktree returns the path of the working tree of the repository
func (r *Repository) Worktree() string {
	return r.worktree
}

// GitDir returns the path of the .git directory of the repository
func (r *Repository) GitDir() string {
	return r.gitDir
}

// gitPath returns the path of a file inside the .git directory
func (r *Repository) gitPath(elems ...string) string {
	return filepath.Join(append([]string{r.gitDir}, elems...)...)
}

// workTreePath returns the path of a file inside the working tree
// from its relative path
func (r *Repository) workTreePath(rel string) string {
	return filepath.Join(r.worktree, filepath.FromSlash(rel))
}

// workTreeRel returns the path of a file relative to the root of the
// working tree, using "/" separators.
// An error is returned if the file is outside the working tree
func (r *Repository) workTreeRel(p string) (string, error) {
	abs := p
	if !filepath.IsAbs(p) {
		var err error
		if abs, err = filepath.Abs(p); err != nil {
			return "", xerrors.Errorf("could not canonicalize %s: %w", p, err)
		}
	}
	rel, err := filepath.Rel(r.worktree, abs)
	if err != nil || rel == ".." || len(rel) > 2 && rel[0:3] == ".."+string(filepath.Separator) {
		return "", xerrors.Errorf("%s: %w", p, ErrPathOutsideWorktree)
	}
	return filepath.ToSlash(rel), nil
}

// Index returns the content of the staging area.
// A repository with no staged files has an empty index
func (r *Repository) Index() (*index.Index, error) {
	return index.Read(r.fs, r.gitPath(gitcore.IndexPath))
}

// writeIndex persists the staging area
func (r *Repository) writeIndex(idx *index.Index) error {
	return idx.Write(r.fs, r.gitPath(gitcore.IndexPath))
}

// dirOf returns the directory part of a slash-separated relative
// path, "" for the root
func dirOf(p string) string {
	d := path.Dir(p)
	if d == "." {
		return ""
	}
	return d
}
