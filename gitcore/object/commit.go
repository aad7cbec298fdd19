package object

import (
	"github.com/gitlite/gitlite/gitcore"
	"golang.org/x/xerrors"
)

// Commit headers
const (
	commitTreeKey      = "tree"
	commitParentKey    = "parent"
	commitAuthorKey    = "author"
	commitCommitterKey = "committer"
	commitGpgSigKey    = "gpgsig"
)

// CommitOptions represents all the optional data available to create
// a commit
type CommitOptions struct {
	Message string
	GPGSig  string
	// Committer represents the person creating the commit.
	// If not provided, the author will be used as committer
	Committer Signature
	ParentIDs []gitcore.Oid
}

// Commit represents a commit object.
//
// The payload of a commit is a KVLM with the conventional keys
// tree, parent (0 to n), author, committer, and an optional gpgsig:
//
// tree {sha}
// parent {sha}
// author {author_name} <{author_email}> {author_date_seconds} {author_date_timezone}
// committer {committer_name} <{committer_email}> {committer_date_seconds} {committer_date_timezone}
// gpgsig -----BEGIN PGP SIGNATURE-----
// {gpg key over multiple lines}
//  -----END PGP SIGNATURE-----
// {a blank line}
// {commit message}
//
// Note:
// - A commit can have 0, 1, or many parent lines
//   The very first commit of a repo has no parents
//   A regular commit has 1 parent
//   A merge commit has 2 or more parents
// - The gpgsig is optional
type Commit struct {
	rawObject *Object
	kvlm      *gitcore.KVLM

	author    Signature
	committer Signature

	parentIDs []gitcore.Oid
	treeID    gitcore.Oid
}

// NewCommit creates a new Commit object.
// Any provided Oid won't be checked
func NewCommit(treeID gitcore.Oid, author Signature, opts *CommitOptions) *Commit {
	c := &Commit{
		treeID:    treeID,
		author:    author,
		committer: opts.Committer,
		parentIDs: opts.ParentIDs,
	}
	if c.committer.IsZero() {
		c.committer = author
	}

	kv := gitcore.NewKVLM()
	kv.Add(commitTreeKey, []byte(treeID.String()))
	for _, p := range c.parentIDs {
		kv.Add(commitParentKey, []byte(p.String()))
	}
	kv.Add(commitAuthorKey, []byte(c.author.String()))
	kv.Add(commitCommitterKey, []byte(c.committer.String()))
	if opts.GPGSig != "" {
		kv.Add(commitGpgSigKey, []byte(opts.GPGSig))
	}
	kv.SetMessage([]byte(opts.Message))
	c.kvlm = kv

	c.rawObject = New(TypeCommit, kv.Serialize())
	return c
}

// NewCommitFromObject creates a commit from a raw object.
//
// The KVLM is kept around so headers this implementation doesn't
// interpret (gpgsig, encoding, ...) survive a reserialization
func NewCommitFromObject(o *Object) (*Commit, error) {
	if o.typ != TypeCommit {
		return nil, xerrors.Errorf("type %s is not a commit: %w", o.typ, ErrObjectInvalid)
	}

	kv, err := gitcore.ParseKVLM(o.Bytes(), nil)
	if err != nil {
		return nil, xerrors.Errorf("could not parse commit payload: %w", ErrCommitInvalid)
	}
	ci := &Commit{
		rawObject: o,
		kvlm:      kv,
	}

	tree, ok := kv.Value(commitTreeKey)
	if !ok {
		return nil, xerrors.Errorf("commit has no tree: %w", ErrCommitInvalid)
	}
	if ci.treeID, err = gitcore.NewOidFromChars(tree); err != nil {
		return nil, xerrors.Errorf("could not parse tree id %q: %w", tree, err)
	}

	for _, parent := range kv.Values(commitParentKey) {
		oid, err := gitcore.NewOidFromChars(parent)
		if err != nil {
			return nil, xerrors.Errorf("could not parse parent id %q: %w", parent, err)
		}
		ci.parentIDs = append(ci.parentIDs, oid)
	}

	author, ok := kv.Value(commitAuthorKey)
	if !ok {
		return nil, xerrors.Errorf("commit has no author: %w", ErrCommitInvalid)
	}
	if ci.author, err = NewSignatureFromBytes(author); err != nil {
		return nil, xerrors.Errorf("could not parse author signature [%s]: %w", author, err)
	}

	if committer, ok := kv.Value(commitCommitterKey); ok {
		if ci.committer, err = NewSignatureFromBytes(committer); err != nil {
			return nil, xerrors.Errorf("could not parse committer signature [%s]: %w", committer, err)
		}
	}

	return ci, nil
}

// ID returns the SHA of the commit object
func (c *Commit) ID() gitcore.Oid {
	return c.rawObject.ID()
}

// Author returns the Signature of the person that made the changes
func (c *Commit) Author() Signature {
	return c.author
}

// Committer returns the Signature of the person that created the commit
func (c *Commit) Committer() Signature {
	return c.committer
}

// Message returns the commit's message
func (c *Commit) Message() string {
	return string(c.kvlm.Message())
}

// ParentIDs returns the list of SHA of the parent commits (if any)
func (c *Commit) ParentIDs() []gitcore.Oid {
	out := make([]gitcore.Oid, len(c.parentIDs))
	copy(out, c.parentIDs)
	return out
}

// TreeID returns the SHA of the commit's tree
func (c *Commit) TreeID() gitcore.Oid {
	return c.treeID
}

// GPGSig returns the GPG signature of the commit, if any
func (c *Commit) GPGSig() string {
	sig, _ := c.kvlm.Value(commitGpgSigKey)
	return string(sig)
}

// KVLM returns the underlying key-value list of the commit
func (c *Commit) KVLM() *gitcore.KVLM {
	return c.kvlm
}

// ToObject returns the underlying Object
func (c *Commit) ToObject() *Object {
	return c.rawObject
}
