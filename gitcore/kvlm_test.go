package gitcore_test

import (
	"testing"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a real commit payload, with a multi-line gpgsig and two parents
var commitPayload = []byte(`tree 29ff16c9c14e2652b22f8b78bb08a5a07930c147
parent 206941306e8a8af65b66eaaaea388a7ae24d49a0
parent 34cc00039eeb1f069b0c963e80d58c6ec108fe47
author John Doe <john@domain.tld> 1527025023 +0200
committer John Doe <john@domain.tld> 1527025044 +0200
gpgsig -----BEGIN PGP SIGNATURE-----
 
 iQIzBAABCAAdFiEExwXquOM8bWb4Q2zVGxM2FxoLkGQFAlsEjZQACgkQGxM2FxoL
 kGQdcBAAqPP+ln4nGDd2gETXjvOpOxLzIMEw4A9gU6CzWzm+oB8mEIKyaH0UFIPh
 =lgTX
 -----END PGP SIGNATURE-----

Create first draft`)

func TestParseKVLM(t *testing.T) {
	t.Parallel()

	t.Run("Should parse a commit payload", func(t *testing.T) {
		t.Parallel()

		kv, err := gitcore.ParseKVLM(commitPayload, nil)
		require.NoError(t, err)

		tree, ok := kv.Value("tree")
		require.True(t, ok)
		assert.Equal(t, "29ff16c9c14e2652b22f8b78bb08a5a07930c147", string(tree))

		parents := kv.Values("parent")
		require.Len(t, parents, 2)
		assert.Equal(t, "206941306e8a8af65b66eaaaea388a7ae24d49a0", string(parents[0]))
		assert.Equal(t, "34cc00039eeb1f069b0c963e80d58c6ec108fe47", string(parents[1]))

		// the continuation lines of the gpgsig are unescaped
		sig, ok := kv.Value("gpgsig")
		require.True(t, ok)
		assert.Contains(t, string(sig), "-----END PGP SIGNATURE-----")
		assert.NotContains(t, string(sig), "\n ")

		assert.Equal(t, "Create first draft", string(kv.Message()))
		assert.Equal(t, []string{"tree", "parent", "author", "committer", "gpgsig"}, kv.Keys())
	})

	t.Run("Serialize(Parse(x)) should return x", func(t *testing.T) {
		t.Parallel()

		kv, err := gitcore.ParseKVLM(commitPayload, nil)
		require.NoError(t, err)
		assert.Equal(t, commitPayload, kv.Serialize())
	})

	t.Run("Should reuse the provided accumulator", func(t *testing.T) {
		t.Parallel()

		acc := gitcore.NewKVLM()
		acc.Add("extra", []byte("kept"))

		kv, err := gitcore.ParseKVLM([]byte("tree 29ff16c9c14e2652b22f8b78bb08a5a07930c147\n\nmsg\n"), acc)
		require.NoError(t, err)
		require.Same(t, acc, kv)

		_, ok := kv.Value("extra")
		assert.True(t, ok, "the provided accumulator should not be replaced")
	})

	t.Run("Should fail without a blank line before the message", func(t *testing.T) {
		t.Parallel()

		_, err := gitcore.ParseKVLM([]byte("tree 29ff16c9c14e2652b22f8b78bb08a5a07930c147\nmessage with no space"), nil)
		require.ErrorIs(t, err, gitcore.ErrKVLMInvalid)
	})

	t.Run("Should fail on an unterminated value", func(t *testing.T) {
		t.Parallel()

		_, err := gitcore.ParseKVLM([]byte("tree 29ff16c9c14e2652b22f8b78bb08a5a0"), nil)
		require.ErrorIs(t, err, gitcore.ErrKVLMInvalid)
	})
}

func TestSerializeKVLM(t *testing.T) {
	t.Parallel()

	t.Run("Should escape multi-line values", func(t *testing.T) {
		t.Parallel()

		kv := gitcore.NewKVLM()
		kv.Add("key", []byte("line1\nline2"))
		kv.SetMessage([]byte("msg\n"))

		assert.Equal(t, "key line1\n line2\n\nmsg\n", string(kv.Serialize()))
	})

	t.Run("Should emit repeated keys in order", func(t *testing.T) {
		t.Parallel()

		kv := gitcore.NewKVLM()
		kv.Add("parent", []byte("a"))
		kv.Add("parent", []byte("b"))
		kv.SetMessage([]byte(""))

		assert.Equal(t, "parent a\nparent b\n\n", string(kv.Serialize()))
	})
}
