package gitlite_test

import (
	"testing"

	git "github.com/gitlite/gitlite"
	"github.com/gitlite/gitlite/internal/testhelper"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	t.Parallel()

	t.Run("Should materialize the tree of a commit", func(t *testing.T) {
		t.Parallel()

		r, fs := newTestRepo(t)
		testhelper.WriteFile(t, fs, "/repo/a.txt", "hello\n")
		testhelper.WriteFile(t, fs, "/repo/sub/b.txt", "world\n")
		require.NoError(t, r.Add([]string{"/repo/a.txt", "/repo/sub/b.txt"}))
		_, err := r.Commit("first")
		require.NoError(t, err)

		require.NoError(t, r.Checkout("HEAD", "/export"))

		a, err := afero.ReadFile(fs, "/export/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(a))

		b, err := afero.ReadFile(fs, "/export/sub/b.txt")
		require.NoError(t, err)
		assert.Equal(t, "world\n", string(b))
	})

	t.Run("Should refuse a non-empty directory", func(t *testing.T) {
		t.Parallel()

		r, fs := newTestRepo(t)
		writeFileAndCommit(t, r, fs, "a.txt", "hello\n", "first")

		testhelper.WriteFile(t, fs, "/export/existing.txt", "data")

		err := r.Checkout("HEAD", "/export")
		require.ErrorIs(t, err, git.ErrTargetNotEmpty)
	})

	t.Run("Should refuse a file as target", func(t *testing.T) {
		t.Parallel()

		r, fs := newTestRepo(t)
		writeFileAndCommit(t, r, fs, "a.txt", "hello\n", "first")

		testhelper.WriteFile(t, fs, "/export", "i am a file")

		err := r.Checkout("HEAD", "/export")
		require.ErrorIs(t, err, git.ErrTargetNotDirectory)
	})
}
