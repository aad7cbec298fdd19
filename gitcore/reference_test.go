package gitcore_test

import (
	"testing"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReference(t *testing.T) {
	t.Parallel()

	finderFor := func(refs map[string]string) gitcore.RefContent {
		return func(name string) ([]byte, error) {
			content, ok := refs[name]
			if !ok {
				return nil, gitcore.ErrRefNotFound
			}
			return []byte(content), nil
		}
	}

	t.Run("Should resolve an oid reference", func(t *testing.T) {
		t.Parallel()

		ref, err := gitcore.ResolveReference("refs/heads/master", finderFor(map[string]string{
			"refs/heads/master": "bbb720a96e4c29b9950a4c577c98470a4d5dd089\n",
		}))
		require.NoError(t, err)
		assert.Equal(t, gitcore.OidReference, ref.Type())
		assert.Equal(t, "refs/heads/master", ref.Name())
		assert.Equal(t, "bbb720a96e4c29b9950a4c577c98470a4d5dd089", ref.Target().String())
	})

	t.Run("Should follow a chain of symbolic references", func(t *testing.T) {
		t.Parallel()

		ref, err := gitcore.ResolveReference("HEAD", finderFor(map[string]string{
			"HEAD":              "ref: refs/heads/master\n",
			"refs/heads/master": "bbb720a96e4c29b9950a4c577c98470a4d5dd089\n",
		}))
		require.NoError(t, err)
		assert.Equal(t, gitcore.SymbolicReference, ref.Type())
		assert.Equal(t, "refs/heads/master", ref.SymbolicTarget())
		assert.Equal(t, "bbb720a96e4c29b9950a4c577c98470a4d5dd089", ref.Target().String())
	})

	t.Run("Should fail cleanly on a circular chain", func(t *testing.T) {
		t.Parallel()

		_, err := gitcore.ResolveReference("HEAD", finderFor(map[string]string{
			"HEAD":              "ref: refs/heads/master\n",
			"refs/heads/master": "ref: refs/heads/other\n",
			"refs/heads/other":  "ref: refs/heads/master\n",
		}))
		require.ErrorIs(t, err, gitcore.ErrRefInvalid)
	})

	t.Run("Should fail if the reference doesn't exist", func(t *testing.T) {
		t.Parallel()

		_, err := gitcore.ResolveReference("refs/heads/nope", finderFor(map[string]string{}))
		require.ErrorIs(t, err, gitcore.ErrRefNotFound)
	})

	t.Run("Should fail on garbage content", func(t *testing.T) {
		t.Parallel()

		_, err := gitcore.ResolveReference("refs/heads/master", finderFor(map[string]string{
			"refs/heads/master": "not a valid reference content",
		}))
		require.ErrorIs(t, err, gitcore.ErrRefInvalid)
	})
}

func TestIsRefNameValid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		expected bool
	}{
		{name: "refs/heads/master", expected: true},
		{name: "HEAD", expected: true},
		{name: "refs/heads/feat/login", expected: true},
		{name: "", expected: false},
		{name: "refs/heads/", expected: false},
		{name: "refs/heads/master.", expected: false},
		{name: "refs/heads/mas..ter", expected: false},
		{name: "refs/heads/.master", expected: false},
		{name: "refs/heads/master.lock", expected: false},
		{name: "refs/heads/ma ster", expected: false},
		{name: "refs/heads/ma:ster", expected: false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, gitcore.IsRefNameValid(tc.name))
		})
	}
}
