package object_test

import (
	"testing"
	"time"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rawCommit = []byte(`tree 29ff16c9c14e2652b22f8b78bb08a5a07930c147
parent 206941306e8a8af65b66eaaaea388a7ae24d49a0
author John Doe <john@domain.tld> 1527025023 +0200
committer Jane Doe <jane@domain.tld> 1527025044 +0200

Add the first draft
`)

func TestNewCommitFromObject(t *testing.T) {
	t.Parallel()

	t.Run("Should parse every field", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeCommit, rawCommit)
		ci, err := o.AsCommit()
		require.NoError(t, err)

		assert.Equal(t, "29ff16c9c14e2652b22f8b78bb08a5a07930c147", ci.TreeID().String())
		require.Len(t, ci.ParentIDs(), 1)
		assert.Equal(t, "206941306e8a8af65b66eaaaea388a7ae24d49a0", ci.ParentIDs()[0].String())

		assert.Equal(t, "John Doe", ci.Author().Name)
		assert.Equal(t, "john@domain.tld", ci.Author().Email)
		assert.Equal(t, int64(1527025023), ci.Author().Time.Unix())
		assert.Equal(t, "Jane Doe", ci.Committer().Name)
		assert.Equal(t, "Add the first draft\n", ci.Message())
	})

	t.Run("Reserializing a parsed commit should not change its bytes", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeCommit, rawCommit)
		ci, err := o.AsCommit()
		require.NoError(t, err)

		assert.Equal(t, rawCommit, ci.KVLM().Serialize())
		assert.Equal(t, o.ID(), ci.ToObject().ID())
	})

	t.Run("Should fail without a tree", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeCommit, []byte("author John Doe <john@domain.tld> 1527025023 +0200\n\nmsg\n"))
		_, err := o.AsCommit()
		require.ErrorIs(t, err, object.ErrCommitInvalid)
	})

	t.Run("Should fail without an author", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeCommit, []byte("tree 29ff16c9c14e2652b22f8b78bb08a5a07930c147\n\nmsg\n"))
		_, err := o.AsCommit()
		require.ErrorIs(t, err, object.ErrCommitInvalid)
	})

	t.Run("Should refuse a non-commit object", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello\n"))
		_, err := object.NewCommitFromObject(o)
		require.ErrorIs(t, err, object.ErrObjectInvalid)
	})
}

func TestNewCommit(t *testing.T) {
	t.Parallel()

	t.Run("Should default the committer to the author", func(t *testing.T) {
		t.Parallel()

		treeID := mustOid(t, "29ff16c9c14e2652b22f8b78bb08a5a07930c147")
		author := object.Signature{
			Name:  "John Doe",
			Email: "john@domain.tld",
			Time:  time.Unix(1527025023, 0).In(time.FixedZone("", 2*60*60)),
		}

		ci := object.NewCommit(treeID, author, &object.CommitOptions{
			Message: "Add the first draft\n",
		})
		assert.Equal(t, author, ci.Committer())
		assert.Empty(t, ci.ParentIDs())

		// a created commit must parse back to itself
		parsed, err := object.NewCommitFromObject(ci.ToObject())
		require.NoError(t, err)
		assert.Equal(t, ci.TreeID(), parsed.TreeID())
		assert.Equal(t, ci.Message(), parsed.Message())
		assert.Equal(t, ci.ID(), parsed.ID())
	})

	t.Run("Parents should appear in the payload in order", func(t *testing.T) {
		t.Parallel()

		treeID := mustOid(t, "29ff16c9c14e2652b22f8b78bb08a5a07930c147")
		p1 := mustOid(t, "206941306e8a8af65b66eaaaea388a7ae24d49a0")
		p2 := mustOid(t, "34cc00039eeb1f069b0c963e80d58c6ec108fe47")

		ci := object.NewCommit(treeID, object.NewSignature("John Doe", "john@domain.tld"), &object.CommitOptions{
			Message:   "merge\n",
			ParentIDs: []gitcore.Oid{p1, p2},
		})

		parsed, err := object.NewCommitFromObject(ci.ToObject())
		require.NoError(t, err)
		require.Len(t, parsed.ParentIDs(), 2)
		assert.Equal(t, p1, parsed.ParentIDs()[0])
		assert.Equal(t, p2, parsed.ParentIDs()[1])
	})
}

func TestSignature(t *testing.T) {
	t.Parallel()

	t.Run("Should parse and reserialize identically", func(t *testing.T) {
		t.Parallel()

		raw := "John Doe <john@domain.tld> 1527025023 +0200"
		sig, err := object.NewSignatureFromBytes([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, "John Doe", sig.Name)
		assert.Equal(t, "john@domain.tld", sig.Email)
		assert.Equal(t, raw, sig.String())
	})

	t.Run("Should fail on truncated data", func(t *testing.T) {
		t.Parallel()

		testCases := []string{
			"",
			"John Doe",
			"John Doe <john@domain.tld>",
			"John Doe <john@domain.tld> 1527025023",
		}
		for _, raw := range testCases {
			raw := raw
			t.Run(raw, func(t *testing.T) {
				t.Parallel()

				_, err := object.NewSignatureFromBytes([]byte(raw))
				require.Error(t, err)
			})
		}
	})
}
