// Package gitcore contains the low-level types and codecs shared by
// the rest of the library: object IDs, references, the commit/tag
// header grammar, and the layout of the .git directory.
package gitcore

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
)

// ErrInvalidOid is returned when a given value isn't a valid Oid
var ErrInvalidOid = errors.New("invalid Oid")

// oidSize is the length of an oid, in bytes
const oidSize = 20

// NullOid is an Oid with only 0s
var NullOid = Oid{}

// Oid represents a git Object ID, the SHA-1 sum of an object's
// header and content
type Oid [oidSize]byte

// NewOidFromContent returns the Oid of the given content.
// The oid will be the SHA1 sum of the content
func NewOidFromContent(bytes []byte) Oid {
	return sha1.Sum(bytes)
}

// NewOidFromStr creates an Oid from a 40 chars hex string
// For the SHA 9b91da06e69613397b38e0808e0ba5ee6983251b
// the oid will be {0x9b, 0x91, 0xda, ...}
func NewOidFromStr(id string) (Oid, error) {
	bytes, err := hex.DecodeString(id)
	if err != nil {
		return NullOid, ErrInvalidOid
	}
	return NewOidFromBytes(bytes)
}

// NewOidFromChars creates an Oid from the given hex chars
// For the SHA {'9', 'b', '9', '1', 'd', 'a', ...}
// the oid will be {0x9b, 0x91, 0xda, ...}
func NewOidFromChars(id []byte) (Oid, error) {
	return NewOidFromStr(string(id))
}

// NewOidFromBytes creates an Oid from the provided byte-encoded oid
// This basically casts a slice that contains an encoded oid into
// an Oid object
func NewOidFromBytes(id []byte) (Oid, error) {
	if len(id) != oidSize {
		return NullOid, ErrInvalidOid
	}

	var oid Oid
	copy(oid[:], id)
	return oid, nil
}

// Bytes returns the raw Oid as []byte.
// This is different than doing []byte(oid.String())
// For the oid 642480605b8b0fd464ab5762e044269cf29a60a3:
// oid.Bytes(): []byte{ 0x64, 0x24, 0x80, ... }
// []byte(oid.String()): []byte{ '6', '4', '2', '4', '8', '0', ... }
func (o Oid) Bytes() []byte {
	return o[:]
}

// String converts an oid to a 40 chars hex string
func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero returns whether the oid has the zero value (NullOid)
func (o Oid) IsZero() bool {
	return o == NullOid
}
