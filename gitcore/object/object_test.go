package object_test

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/gitlite/gitlite/gitcore/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("A blob's oid should be the SHA1 of its header and content", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello\n"))
		assert.Equal(t, "ce013625030ba8dba906f756967f9e9ca394464a", o.ID().String())
		assert.Equal(t, 6, o.Size())
		assert.Equal(t, object.TypeBlob, o.Type())
	})
}

func TestCompress(t *testing.T) {
	t.Parallel()

	t.Run("Should produce a zlib stream holding the header and content", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello\n"))
		oid, data, err := o.Compress()
		require.NoError(t, err)
		assert.Equal(t, o.ID(), oid)

		zr, err := zlib.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		raw, err := io.ReadAll(zr)
		require.NoError(t, err)
		require.NoError(t, zr.Close())

		assert.Equal(t, []byte("blob 6\x00hello\n"), raw)
	})
}

func TestNewFromLoose(t *testing.T) {
	t.Parallel()

	t.Run("read(write(o)) should return o", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello\n"))
		_, data, err := o.Compress()
		require.NoError(t, err)

		zr, err := zlib.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		raw, err := io.ReadAll(zr)
		require.NoError(t, err)

		parsed, err := object.NewFromLoose(raw)
		require.NoError(t, err)
		assert.Equal(t, o.ID(), parsed.ID())
		assert.Equal(t, o.Type(), parsed.Type())
		assert.Equal(t, o.Bytes(), parsed.Bytes())
	})

	t.Run("Should fail if the declared size doesn't match", func(t *testing.T) {
		t.Parallel()

		_, err := object.NewFromLoose([]byte("blob 7\x00hello\n"))
		require.ErrorIs(t, err, object.ErrObjectMalformed)
	})

	t.Run("Should fail on an unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := object.NewFromLoose([]byte("blub 6\x00hello\n"))
		require.ErrorIs(t, err, object.ErrObjectUnknown)
	})

	t.Run("Should fail without a header", func(t *testing.T) {
		t.Parallel()

		_, err := object.NewFromLoose([]byte("hello-without-spaces-or-null"))
		require.ErrorIs(t, err, object.ErrObjectMalformed)
	})
}

func TestNewTypeFromString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		typ      string
		expected object.Type
	}{
		{typ: "commit", expected: object.TypeCommit},
		{typ: "tree", expected: object.TypeTree},
		{typ: "blob", expected: object.TypeBlob},
		{typ: "tag", expected: object.TypeTag},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.typ, func(t *testing.T) {
			t.Parallel()

			typ, err := object.NewTypeFromString(tc.typ)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, typ)
			assert.Equal(t, tc.typ, typ.String())
			assert.True(t, typ.IsValid())
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := object.NewTypeFromString("packfile")
		require.ErrorIs(t, err, object.ErrObjectUnknown)
	})
}
