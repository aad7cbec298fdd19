package gitlite

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// refPath returns the on-disk path of a reference from its name.
// Reference names always use "/" but the filesystem may not
func (r *Repository) refPath(name string) string {
	return r.gitPath(filepath.FromSlash(name))
}

// Reference returns the resolved reference matching the given name.
// The chain of symbolic references is followed until an Oid is found.
// gitcore.ErrRefNotFound is returned if the reference doesn't exist
func (r *Repository) Reference(name string) (*gitcore.Reference, error) {
	finder := func(name string) ([]byte, error) {
		data, err := afero.ReadFile(r.fs, r.refPath(name))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, xerrors.Errorf(`ref "%s": %w`, name, gitcore.ErrRefNotFound)
			}
			return nil, xerrors.Errorf("could not read reference content: %w", err)
		}
		return data, nil
	}
	return gitcore.ResolveReference(name, finder)
}

// WriteReference writes the given reference on disk. If the
// reference already exists it will be overwritten
func (r *Repository) WriteReference(ref *gitcore.Reference) error {
	if !gitcore.IsRefNameValid(ref.Name()) {
		return gitcore.ErrRefNameInvalid
	}

	target := ""
	switch ref.Type() {
	case gitcore.SymbolicReference:
		target = "ref: " + ref.SymbolicTarget() + "\n"
	case gitcore.OidReference:
		target = ref.Target().String() + "\n"
	default:
		return xerrors.Errorf("reference type %d: %w", ref.Type(), gitcore.ErrUnknownRefType)
	}

	p := r.refPath(ref.Name())
	if err := r.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return xerrors.Errorf("could not create the parent directories of %s: %w", ref.Name(), err)
	}
	if err := afero.WriteFile(r.fs, p, []byte(target), 0o644); err != nil {
		return xerrors.Errorf("could not persist reference to disk: %w", err)
	}
	return nil
}

// References returns all the references stored under refs/, resolved,
// in the order of a recursive walk sorted lexicographically at each
// level
func (r *Repository) References() ([]*gitcore.Reference, error) {
	return r.listReferences(gitcore.RefsPath)
}

func (r *Repository) listReferences(prefix string) ([]*gitcore.Reference, error) {
	// ReadDir returns the entries sorted by name, which gives us the
	// ordered traversal for free
	infos, err := afero.ReadDir(r.fs, r.refPath(prefix))
	if err != nil {
		return nil, xerrors.Errorf("could not list %s: %w", prefix, err)
	}

	refs := []*gitcore.Reference{}
	for _, info := range infos {
		name := path.Join(prefix, info.Name())
		if info.IsDir() {
			sub, err := r.listReferences(name)
			if err != nil {
				return nil, err
			}
			refs = append(refs, sub...)
			continue
		}
		ref, err := r.Reference(name)
		if err != nil {
			return nil, xerrors.Errorf("could not resolve %s: %w", name, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// ActiveBranch returns the short name of the branch HEAD is on, or
// an empty string if HEAD is detached
func (r *Repository) ActiveBranch() (string, error) {
	data, err := afero.ReadFile(r.fs, r.refPath(gitcore.Head))
	if err != nil {
		return "", xerrors.Errorf("could not read HEAD: %w", err)
	}
	content := strings.TrimSuffix(string(data), "\n")
	if !strings.HasPrefix(content, "ref: "+gitcore.RefsHeadsPath+"/") {
		return "", nil
	}
	return gitcore.LocalBranchShortName(strings.TrimPrefix(content, "ref: ")), nil
}
