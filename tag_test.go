package gitlite_test

import (
	"testing"

	git "github.com/gitlite/gitlite"
	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag(t *testing.T) {
	t.Parallel()

	t.Run("A lightweight tag should be a plain ref to the target", func(t *testing.T) {
		t.Parallel()

		r, fs := newTestRepo(t)
		oid := writeFileAndCommit(t, r, fs, "a.txt", "hello\n", "first")

		require.NoError(t, r.CreateTag("v1", oid, nil))

		ref, err := r.Reference(gitcore.LocalTagFullName("v1"))
		require.NoError(t, err)
		assert.Equal(t, oid, ref.Target())
	})

	t.Run("An annotated tag should be a tag object", func(t *testing.T) {
		t.Parallel()

		r, fs := newTestRepo(t)
		oid := writeFileAndCommit(t, r, fs, "a.txt", "hello\n", "first")

		require.NoError(t, r.CreateTag("v1", oid, &git.TagOptions{
			Annotated: true,
			Message:   "Release v1\n",
		}))

		ref, err := r.Reference(gitcore.LocalTagFullName("v1"))
		require.NoError(t, err)
		assert.NotEqual(t, oid, ref.Target(), "the ref should point at the tag object")

		o, err := r.Object(ref.Target())
		require.NoError(t, err)
		tag, err := o.AsTag()
		require.NoError(t, err)
		assert.Equal(t, oid, tag.Target())
		assert.Equal(t, object.TypeCommit, tag.Type())
		assert.Equal(t, "v1", tag.Name())
		assert.Equal(t, "Release v1\n", tag.Message())
		assert.Equal(t, "John Doe", tag.Tagger().Name)
	})

	t.Run("Tags should appear in the references listing", func(t *testing.T) {
		t.Parallel()

		r, fs := newTestRepo(t)
		oid := writeFileAndCommit(t, r, fs, "a.txt", "hello\n", "first")
		require.NoError(t, r.CreateTag("v1", oid, nil))
		require.NoError(t, r.CreateTag("v2", oid, nil))

		refs, err := r.References()
		require.NoError(t, err)

		names := make([]string, len(refs))
		for i, ref := range refs {
			names[i] = ref.Name()
		}
		assert.Equal(t, []string{"refs/heads/master", "refs/tags/v1", "refs/tags/v2"}, names)
	})
}
