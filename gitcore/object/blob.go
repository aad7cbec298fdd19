package object

import "github.com/gitlite/gitlite/gitcore"

// Blob represents a blob object, an opaque sequence of bytes
type Blob struct {
	rawObject *Object
}

// NewBlob returns a new Blob object from a git Object
func NewBlob(o *Object) *Blob {
	return &Blob{
		rawObject: o,
	}
}

// NewBlobFromContent returns a new Blob holding the given bytes
func NewBlobFromContent(data []byte) *Blob {
	return &Blob{
		rawObject: New(TypeBlob, data),
	}
}

// ID returns the blob's ID
func (b *Blob) ID() gitcore.Oid {
	return b.rawObject.ID()
}

// Bytes returns the blob's contents
func (b *Blob) Bytes() []byte {
	return b.rawObject.content
}

// Size returns the size of the blob
func (b *Blob) Size() int {
	return len(b.rawObject.content)
}

// ToObject returns the Blob's underlying Object
func (b *Blob) ToObject() *Object {
	return b.rawObject
}
