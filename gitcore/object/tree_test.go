package object_test

import (
	"testing"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOid(t *testing.T, sha string) gitcore.Oid {
	t.Helper()
	oid, err := gitcore.NewOidFromStr(sha)
	require.NoError(t, err)
	return oid
}

func TestNewTree(t *testing.T) {
	t.Parallel()

	t.Run("The empty tree should have the well-known oid", func(t *testing.T) {
		t.Parallel()

		tree := object.NewTree([]object.TreeEntry{})
		assert.Equal(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904", tree.ID().String())
	})

	t.Run("Directories should sort as if they had a trailing slash", func(t *testing.T) {
		t.Parallel()

		blobID := mustOid(t, "0343d67ca3d80a531d0d163f0078a81c95c9085a")
		treeID := mustOid(t, "e5b9e846e1b468bc9597ff95d71dfacda8bd54e3")

		// given unsorted, "foo.txt" < "foo/" < "foo0" byte-wise
		tree := object.NewTree([]object.TreeEntry{
			{Mode: object.ModeFile, Path: "foo0", ID: blobID},
			{Mode: object.ModeDirectory, Path: "foo", ID: treeID},
			{Mode: object.ModeFile, Path: "foo.txt", ID: blobID},
		})

		entries := tree.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, "foo.txt", entries[0].Path)
		assert.Equal(t, "foo", entries[1].Path)
		assert.Equal(t, "foo0", entries[2].Path)
	})

	t.Run("The oid should depend on the entries, not on the order they are given in", func(t *testing.T) {
		t.Parallel()

		blobID := mustOid(t, "0343d67ca3d80a531d0d163f0078a81c95c9085a")

		a := object.NewTree([]object.TreeEntry{
			{Mode: object.ModeFile, Path: "a", ID: blobID},
			{Mode: object.ModeFile, Path: "b", ID: blobID},
		})
		b := object.NewTree([]object.TreeEntry{
			{Mode: object.ModeFile, Path: "b", ID: blobID},
			{Mode: object.ModeFile, Path: "a", ID: blobID},
		})

		// the canonical sort makes the two listings identical
		assert.Equal(t, a.ID(), b.ID())

		c := object.NewTree([]object.TreeEntry{
			{Mode: object.ModeFile, Path: "a", ID: blobID},
			{Mode: object.ModeFile, Path: "c", ID: blobID},
		})
		assert.NotEqual(t, a.ID(), c.ID())
	})
}

func TestNewTreeFromObject(t *testing.T) {
	t.Parallel()

	t.Run("o.AsTree().ToObject() should return the same object", func(t *testing.T) {
		t.Parallel()

		blobID := mustOid(t, "0343d67ca3d80a531d0d163f0078a81c95c9085a")
		treeID := mustOid(t, "e5b9e846e1b468bc9597ff95d71dfacda8bd54e3")

		source := object.NewTree([]object.TreeEntry{
			{Mode: object.ModeFile, Path: "README.md", ID: blobID},
			{Mode: object.ModeDirectory, Path: "internal", ID: treeID},
			{Mode: object.ModeExecutable, Path: "run.sh", ID: blobID},
		})

		o := source.ToObject()
		tree, err := o.AsTree()
		require.NoError(t, err)

		newO := tree.ToObject()
		require.Equal(t, o.ID(), newO.ID())
		require.Equal(t, o.Bytes(), newO.Bytes())
	})

	t.Run("Should normalize a 5-digit mode", func(t *testing.T) {
		t.Parallel()

		blobID := mustOid(t, "0343d67ca3d80a531d0d163f0078a81c95c9085a")

		// 5-digit directory mode, as emitted by canonical git
		payload := append([]byte("40000 sub\x00"), blobID.Bytes()...)
		o := object.New(object.TypeTree, payload)

		tree, err := o.AsTree()
		require.NoError(t, err)
		require.Len(t, tree.Entries(), 1)
		assert.Equal(t, object.ModeDirectory, tree.Entries()[0].Mode)
	})

	t.Run("Should fail on a truncated payload", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeTree, []byte("100644 foo\x00too-short"))
		_, err := o.AsTree()
		require.ErrorIs(t, err, object.ErrTreeInvalid)
	})

	t.Run("Should refuse a non-tree object", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello\n"))
		_, err := object.NewTreeFromObject(o)
		require.ErrorIs(t, err, object.ErrObjectInvalid)
	})
}

func TestTreeObjectMode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc     string
		mode     object.TreeObjectMode
		expected object.Type
	}{
		{desc: "file is a blob", mode: object.ModeFile, expected: object.TypeBlob},
		{desc: "executable is a blob", mode: object.ModeExecutable, expected: object.TypeBlob},
		{desc: "symlink is a blob", mode: object.ModeSymLink, expected: object.TypeBlob},
		{desc: "directory is a tree", mode: object.ModeDirectory, expected: object.TypeTree},
		{desc: "gitlink is a commit", mode: object.ModeGitLink, expected: object.TypeCommit},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.mode.ObjectType())
			assert.True(t, tc.mode.IsValid())
		})
	}
}
