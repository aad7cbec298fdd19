package gitlite

import (
	"compress/zlib"
	"io"
	"os"
	"path/filepath"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/gitlite/gitlite/internal/errutil"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// looseObjectPath returns the absolute path of a loose object
// .git/objects/first_2_chars_of_sha/remaining_chars_of_sha
// Ex. path of fcfe68a0e44e04bd7fd564fc0b75f1ae457e18b3 is:
// .git/objects/fc/fe68a0e44e04bd7fd564fc0b75f1ae457e18b3
func (r *Repository) looseObjectPath(sha string) string {
	return r.gitPath(gitcore.LooseObjectPath(sha))
}

// Object returns the object matching the given Oid.
// gitcore.ErrObjectNotFound is returned if the object doesn't exist
func (r *Repository) Object(oid gitcore.Oid) (o *object.Object, err error) {
	strOid := oid.String()
	p := r.looseObjectPath(strOid)

	f, err := r.fs.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xerrors.Errorf("object %s: %w", strOid, gitcore.ErrObjectNotFound)
		}
		return nil, xerrors.Errorf("could not open object %s at path %s: %w", strOid, p, err)
	}
	defer errutil.Close(f, &err)

	// Objects are zlib encoded
	zlibReader, err := zlib.NewReader(f)
	if err != nil {
		return nil, xerrors.Errorf("could not decompress object %s at path %s: %w", strOid, p, err)
	}
	defer errutil.Close(zlibReader, &err)

	// We directly read the entire file since most of it is the content
	// we need, this allows us to easily store the object's content
	buff, err := io.ReadAll(zlibReader)
	if err != nil {
		return nil, xerrors.Errorf("could not read object %s at path %s: %w", strOid, p, err)
	}

	o, err = object.NewFromLoose(buff)
	if err != nil {
		return nil, xerrors.Errorf("object %s at path %s: %w", strOid, p, err)
	}
	return o, nil
}

// HasObject returns whether an object exists in the object database
func (r *Repository) HasObject(oid gitcore.Oid) (bool, error) {
	exists, err := afero.Exists(r.fs, r.looseObjectPath(oid.String()))
	if err != nil {
		return false, xerrors.Errorf("could not check object %s: %w", oid.String(), err)
	}
	return exists, nil
}

// WriteObject writes an object in the object database and returns
// its Oid.
// Objects are immutable once stored: writing an object that already
// exists is a no-op
func (r *Repository) WriteObject(o *object.Object) (gitcore.Oid, error) {
	oid, data, err := o.Compress()
	if err != nil {
		return gitcore.NullOid, xerrors.Errorf("could not compress object: %w", err)
	}

	sha := oid.String()
	p := r.looseObjectPath(sha)

	// content addressing: an existing file necessarily holds the
	// same bytes
	found, err := r.HasObject(oid)
	if err != nil {
		return gitcore.NullOid, err
	}
	if found {
		return oid, nil
	}

	// We need to make sure the dest dir exists
	dest := filepath.Dir(p)
	if err = r.fs.MkdirAll(dest, 0o755); err != nil {
		return gitcore.NullOid, xerrors.Errorf("could not create the destination directory %s: %w", dest, err)
	}

	// We use 444 because git objects are read-only
	if err = afero.WriteFile(r.fs, p, data, 0o444); err != nil {
		return gitcore.NullOid, xerrors.Errorf("could not persist object %s at path %s: %w", sha, p, err)
	}
	return oid, nil
}
