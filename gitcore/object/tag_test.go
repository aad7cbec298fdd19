package object_test

import (
	"testing"

	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rawTag = []byte(`object 29ff16c9c14e2652b22f8b78bb08a5a07930c147
type commit
tag v1.0.0
tagger John Doe <john@domain.tld> 1527025023 +0200

Release v1.0.0
`)

func TestNewTagFromObject(t *testing.T) {
	t.Parallel()

	t.Run("Should parse every field", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeTag, rawTag)
		tag, err := o.AsTag()
		require.NoError(t, err)

		assert.Equal(t, "29ff16c9c14e2652b22f8b78bb08a5a07930c147", tag.Target().String())
		assert.Equal(t, object.TypeCommit, tag.Type())
		assert.Equal(t, "v1.0.0", tag.Name())
		assert.Equal(t, "John Doe", tag.Tagger().Name)
		assert.Equal(t, "Release v1.0.0\n", tag.Message())
	})

	t.Run("Should fail without a target", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeTag, []byte("type commit\ntag v1\ntagger John Doe <john@domain.tld> 1527025023 +0200\n\nmsg\n"))
		_, err := o.AsTag()
		require.ErrorIs(t, err, object.ErrTagInvalid)
	})

	t.Run("Should refuse a non-tag object", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello\n"))
		_, err := object.NewTagFromObject(o)
		require.ErrorIs(t, err, object.ErrObjectInvalid)
	})
}

func TestNewTag(t *testing.T) {
	t.Parallel()

	t.Run("A created tag should parse back to itself", func(t *testing.T) {
		t.Parallel()

		target := object.New(object.TypeCommit, rawCommit)
		tag := object.NewTag(&object.TagParams{
			Target:  target,
			Name:    "v1.0.0",
			Tagger:  object.NewSignature("John Doe", "john@domain.tld"),
			Message: "Release v1.0.0\n",
		})

		parsed, err := object.NewTagFromObject(tag.ToObject())
		require.NoError(t, err)
		assert.Equal(t, target.ID(), parsed.Target())
		assert.Equal(t, object.TypeCommit, parsed.Type())
		assert.Equal(t, "v1.0.0", parsed.Name())
		assert.Equal(t, "Release v1.0.0\n", parsed.Message())
	})
}
