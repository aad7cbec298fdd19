package gitlite

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

var (
	// ErrUnknownIdentifier is thrown when a name cannot be resolved
	// to any object
	ErrUnknownIdentifier = errors.New("no such reference")

	// ErrAmbiguousIdentifier is thrown when a name resolves to more
	// than one object
	ErrAmbiguousIdentifier = errors.New("ambiguous reference")

	// ErrNoMatchingObject is thrown when a name resolves to an object
	// that cannot be dereferenced to the requested type
	ErrNoMatchingObject = errors.New("no object of the requested type")
)

// hexPrefixRegexp matches a short or full object hash
var hexPrefixRegexp = regexp.MustCompile(`^[0-9A-Fa-f]{4,40}$`)

// resolveName collects every object a user-provided name could refer
// to: HEAD, a short or full hash, a tag name, or a branch name
func (r *Repository) resolveName(name string) ([]gitcore.Oid, error) {
	candidates := []gitcore.Oid{}

	if name == gitcore.Head {
		ref, err := r.Reference(gitcore.Head)
		switch {
		case err == nil:
			candidates = append(candidates, ref.Target())
		case !errors.Is(err, gitcore.ErrRefNotFound):
			return nil, err
		}
		return candidates, nil
	}

	if hexPrefixRegexp.MatchString(name) {
		// A hash prefix may match several loose objects, so we list
		// the fanout directory and collect everything that starts
		// with the remainder
		name = strings.ToLower(name)
		prefix, rem := name[:2], name[2:]

		infos, err := afero.ReadDir(r.fs, r.gitPath(gitcore.ObjectsPath, prefix))
		if err == nil {
			for _, info := range infos {
				if !info.IsDir() && strings.HasPrefix(info.Name(), rem) {
					oid, err := gitcore.NewOidFromStr(prefix + info.Name())
					if err != nil {
						continue
					}
					candidates = append(candidates, oid)
				}
			}
		}
	}

	// the name may also be a tag or a branch
	for _, refName := range []string{
		gitcore.LocalTagFullName(name),
		gitcore.LocalBranchFullName(name),
	} {
		ref, err := r.Reference(refName)
		switch {
		case err == nil:
			candidates = append(candidates, ref.Target())
		case !errors.Is(err, gitcore.ErrRefNotFound):
			return nil, err
		}
	}

	return candidates, nil
}

// ResolveName resolves a user-provided name to the Oid of a unique
// object.
//
// If typ is provided (not 0), the resolved object is dereferenced
// until an object of the requested type is found: an annotated tag is
// followed to its target, and a commit can be down-cast to its tree.
// When follow is false no dereferencing happens and an object of the
// wrong type is an ErrNoMatchingObject
func (r *Repository) ResolveName(name string, typ object.Type, follow bool) (gitcore.Oid, error) {
	candidates, err := r.resolveName(name)
	if err != nil {
		return gitcore.NullOid, err
	}

	if len(candidates) == 0 {
		return gitcore.NullOid, xerrors.Errorf("%s: %w", name, ErrUnknownIdentifier)
	}
	if len(candidates) > 1 {
		all := make([]string, len(candidates))
		for i, c := range candidates {
			all[i] = c.String()
		}
		return gitcore.NullOid, xerrors.Errorf("%s, candidates are:\n - %s\n%w",
			name, strings.Join(all, "\n - "), ErrAmbiguousIdentifier)
	}

	oid := candidates[0]
	if typ == 0 {
		return oid, nil
	}

	for {
		o, err := r.Object(oid)
		if err != nil {
			return gitcore.NullOid, err
		}
		if o.Type() == typ {
			return oid, nil
		}
		if !follow {
			return gitcore.NullOid, xerrors.Errorf("%s is a %s, not a %s: %w", name, o.Type(), typ, ErrNoMatchingObject)
		}

		// Only two dereferences exist: tag -> target object, and
		// commit -> tree
		switch {
		case o.Type() == object.TypeTag:
			tag, err := o.AsTag()
			if err != nil {
				return gitcore.NullOid, err
			}
			oid = tag.Target()
		case o.Type() == object.TypeCommit && typ == object.TypeTree:
			ci, err := o.AsCommit()
			if err != nil {
				return gitcore.NullOid, err
			}
			oid = ci.TreeID()
		default:
			return gitcore.NullOid, xerrors.Errorf("%s is a %s, not a %s: %w", name, o.Type(), typ, ErrNoMatchingObject)
		}
	}
}
