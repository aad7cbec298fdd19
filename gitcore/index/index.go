// Package index contains the codec for the binary staging file
// (.git/index), version 2 of the format.
//
// The file contains a 12-byte header ("DIRC" magic, version, entry
// count), a list of entries sorted in ascending order by path, and a
// trailing SHA-1 checksum of everything before it.
// https://git-scm.com/docs/index-format
package index

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"sort"

	"github.com/gitlite/gitlite/gitcore"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// ErrIndexInvalid is an error thrown when the index file cannot be
// parsed: bad magic, unsupported version, nonzero reserved bits, or
// the extended flag set
var ErrIndexInvalid = errors.New("index file is malformed")

const (
	// indexMagic is the 4-byte signature that begins every index file
	indexMagic = "DIRC"

	// indexVersion is the only supported version of the format
	indexVersion = 2

	// entryFixedSize is the number of bytes occupied by the fixed-size
	// fields of each entry (ctime through flags, inclusive), before the
	// variable-length NUL-terminated path begins
	entryFixedSize = 62

	// entryAlignment is the boundary to which each entry's total
	// length (fixed fields + path + NUL + padding) is a multiple of
	entryAlignment = 8

	// maxPathLen is the largest length that fits in the 12 bits of
	// the flags field. Longer paths store 0xFFF and rely on the NUL
	// terminator
	maxPathLen = 0xFFF
)

// Mode types stored in the upper 4 bits of an entry's mode
const (
	// ModeTypeRegular is the mode type of a regular file
	ModeTypeRegular uint16 = 0b1000
	// ModeTypeSymlink is the mode type of a symbolic link
	ModeTypeSymlink uint16 = 0b1010
	// ModeTypeGitlink is the mode type of a gitlink (submodule)
	ModeTypeGitlink uint16 = 0b1110
)

// isValidModeType returns whether the given value is one of the three
// recognized mode types
func isValidModeType(t uint16) bool {
	switch t {
	case ModeTypeRegular, ModeTypeSymlink, ModeTypeGitlink:
		return true
	default:
		return false
	}
}

// Entry represents a single file staged in the index.
//
// The stat fields (ctime, mtime, dev, ino, uid, gid, size) are a
// cache used to detect changed files without re-hashing them
type Entry struct {
	CtimeSec  uint32
	CtimeNsec uint32
	MtimeSec  uint32
	MtimeNsec uint32
	Dev       uint32
	Ino       uint32
	// ModeType is one of ModeTypeRegular, ModeTypeSymlink, or
	// ModeTypeGitlink
	ModeType uint16
	// ModePerms holds the 9 permission bits of the mode
	ModePerms uint16
	UID       uint32
	GID       uint32
	FileSize  uint32
	// ID is the oid of the blob the index records for this path
	ID gitcore.Oid
	// AssumeValid mirrors the assume-valid bit of the flags
	AssumeValid bool
	// Stage is the merge stage of the entry (this implementation
	// only ever produces stage 0)
	Stage uint8
	// Path is the path of the file relative to the root of the work
	// tree, using "/" as separator
	Path string
}

// CtimeNanos returns the ctime of the entry as nanoseconds
func (e *Entry) CtimeNanos() int64 {
	return int64(e.CtimeSec)*1e9 + int64(e.CtimeNsec)
}

// MtimeNanos returns the mtime of the entry as nanoseconds
func (e *Entry) MtimeNanos() int64 {
	return int64(e.MtimeSec)*1e9 + int64(e.MtimeNsec)
}

// Mode returns the full mode of the entry, ex. 0o100644 for a regular
// file with perms 644
func (e *Entry) Mode() uint32 {
	return uint32(e.ModeType)<<12 | uint32(e.ModePerms)
}

// Index represents the parsed content of the staging file
type Index struct {
	version uint32
	entries []*Entry
}

// NewIndex returns a new empty index
func NewIndex() *Index {
	return &Index{
		version: indexVersion,
		entries: []*Entry{},
	}
}

// Version returns the version of the format the index was stored in
func (idx *Index) Version() uint32 {
	return idx.version
}

// Len returns the number of entries in the index
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entries returns the index entries, sorted by path
func (idx *Index) Entries() []*Entry {
	idx.sort()
	out := make([]*Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Entry returns the entry matching the given path
func (idx *Index) Entry(path string) (*Entry, bool) {
	for _, e := range idx.entries {
		if e.Path == path {
			return e, true
		}
	}
	return nil, false
}

// Add inserts the given entry in the index, replacing any previous
// entry with the same path
func (idx *Index) Add(entry *Entry) {
	for i, e := range idx.entries {
		if e.Path == entry.Path {
			idx.entries[i] = entry
			return
		}
	}
	idx.entries = append(idx.entries, entry)
}

// Remove removes the entry matching the given path and reports
// whether one was found
func (idx *Index) Remove(path string) bool {
	for i, e := range idx.entries {
		if e.Path == path {
			idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
			return true
		}
	}
	return false
}

// sort orders the entries in ascending order by path
func (idx *Index) sort() {
	sort.Slice(idx.entries, func(i, j int) bool {
		return idx.entries[i].Path < idx.entries[j].Path
	})
}

// Read parses the index file at the given path.
// A missing file is not an error: it corresponds to an empty index,
// for example in a freshly initialized repository
func Read(fs afero.Fs, path string) (*Index, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewIndex(), nil
		}
		return nil, xerrors.Errorf("could not read index file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Index, error) {
	if len(data) < 12 {
		return nil, xerrors.Errorf("file too short for a header: %w", ErrIndexInvalid)
	}
	if string(data[0:4]) != indexMagic {
		return nil, xerrors.Errorf("bad magic %q: %w", data[0:4], ErrIndexInvalid)
	}
	version := binary.BigEndian.Uint32(data[4:8])
	if version != indexVersion {
		return nil, xerrors.Errorf("unsupported version %d: %w", version, ErrIndexInvalid)
	}
	count := binary.BigEndian.Uint32(data[8:12])

	idx := NewIndex()
	offset := 12
	for i := uint32(0); i < count; i++ {
		if offset+entryFixedSize > len(data) {
			return nil, xerrors.Errorf("not enough space for entry %d: %w", i+1, ErrIndexInvalid)
		}

		e := &Entry{
			CtimeSec:  binary.BigEndian.Uint32(data[offset:]),
			CtimeNsec: binary.BigEndian.Uint32(data[offset+4:]),
			MtimeSec:  binary.BigEndian.Uint32(data[offset+8:]),
			MtimeNsec: binary.BigEndian.Uint32(data[offset+12:]),
			Dev:       binary.BigEndian.Uint32(data[offset+16:]),
			Ino:       binary.BigEndian.Uint32(data[offset+20:]),
		}

		// the 2 bytes before the mode are reserved and must be zero
		if binary.BigEndian.Uint16(data[offset+24:]) != 0 {
			return nil, xerrors.Errorf("reserved bytes of entry %d are not zero: %w", i+1, ErrIndexInvalid)
		}
		mode := binary.BigEndian.Uint16(data[offset+26:])
		e.ModeType = mode >> 12
		e.ModePerms = mode & 0o777
		if !isValidModeType(e.ModeType) {
			return nil, xerrors.Errorf("unexpected mode type %04b of entry %d: %w", e.ModeType, i+1, ErrIndexInvalid)
		}
		if mode&0o7000 != 0 {
			return nil, xerrors.Errorf("unused mode bits of entry %d are not zero: %w", i+1, ErrIndexInvalid)
		}

		e.UID = binary.BigEndian.Uint32(data[offset+28:])
		e.GID = binary.BigEndian.Uint32(data[offset+32:])
		e.FileSize = binary.BigEndian.Uint32(data[offset+36:])

		var err error
		e.ID, err = gitcore.NewOidFromBytes(data[offset+40 : offset+60])
		if err != nil {
			return nil, xerrors.Errorf("invalid SHA of entry %d: %w", i+1, ErrIndexInvalid)
		}

		flags := binary.BigEndian.Uint16(data[offset+60:])
		e.AssumeValid = flags&0x8000 != 0
		if flags&0x4000 != 0 {
			return nil, xerrors.Errorf("extended flag of entry %d is set: %w", i+1, ErrIndexInvalid)
		}
		e.Stage = uint8((flags >> 12) & 0x3)

		// The low 12 bits hold the length of the path. 0xFFF means the
		// path didn't fit, in which case it runs until the next NUL
		nameLen := int(flags & maxPathLen)
		nameStart := offset + entryFixedSize
		if nameLen == maxPathLen {
			if nameStart+maxPathLen > len(data) {
				return nil, xerrors.Errorf("not enough space for the path of entry %d: %w", i+1, ErrIndexInvalid)
			}
			end := bytes.IndexByte(data[nameStart+maxPathLen:], 0)
			if end < 0 {
				return nil, xerrors.Errorf("unterminated path of entry %d: %w", i+1, ErrIndexInvalid)
			}
			nameLen = maxPathLen + end
		}
		if nameStart+nameLen+1 > len(data) {
			return nil, xerrors.Errorf("not enough space for the path of entry %d: %w", i+1, ErrIndexInvalid)
		}
		e.Path = string(data[nameStart : nameStart+nameLen])

		idx.entries = append(idx.entries, e)

		// the path is NUL terminated and zero-padded so the whole
		// entry is a multiple of 8 bytes
		entryLen := entryFixedSize + nameLen + 1
		if extra := entryLen % entryAlignment; extra != 0 {
			entryLen += entryAlignment - extra
		}
		offset += entryLen
	}

	// Whatever follows the entries (extensions, trailing checksum) is
	// ignored
	idx.version = version
	return idx, nil
}

// Write persists the index at the given path, entries sorted in
// ascending order by path, with the trailing SHA-1 checksum git
// appends
func (idx *Index) Write(fs afero.Fs, path string) error {
	data := idx.serialize()
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return xerrors.Errorf("could not persist the index: %w", err)
	}
	return nil
}

func (idx *Index) serialize() []byte {
	idx.sort()

	data := make([]byte, 0, 12+len(idx.entries)*(entryFixedSize+16))
	data = append(data, indexMagic...)
	data = binary.BigEndian.AppendUint32(data, idx.version)
	data = binary.BigEndian.AppendUint32(data, uint32(len(idx.entries)))

	for _, e := range idx.entries {
		data = binary.BigEndian.AppendUint32(data, e.CtimeSec)
		data = binary.BigEndian.AppendUint32(data, e.CtimeNsec)
		data = binary.BigEndian.AppendUint32(data, e.MtimeSec)
		data = binary.BigEndian.AppendUint32(data, e.MtimeNsec)
		data = binary.BigEndian.AppendUint32(data, e.Dev)
		data = binary.BigEndian.AppendUint32(data, e.Ino)
		data = binary.BigEndian.AppendUint16(data, 0) // reserved
		data = binary.BigEndian.AppendUint16(data, e.ModeType<<12|e.ModePerms&0o777)
		data = binary.BigEndian.AppendUint32(data, e.UID)
		data = binary.BigEndian.AppendUint32(data, e.GID)
		data = binary.BigEndian.AppendUint32(data, e.FileSize)
		data = append(data, e.ID.Bytes()...)

		nameLen := len(e.Path)
		if nameLen > maxPathLen {
			nameLen = maxPathLen
		}
		flags := uint16(nameLen)
		if e.AssumeValid {
			flags |= 0x8000
		}
		flags |= uint16(e.Stage&0x3) << 12
		data = binary.BigEndian.AppendUint16(data, flags)

		data = append(data, e.Path...)
		data = append(data, 0)
		// zero-pad so the entry length (including the NUL) is a
		// multiple of 8
		entryLen := entryFixedSize + len(e.Path) + 1
		for i := 0; i < (entryAlignment-entryLen%entryAlignment)%entryAlignment; i++ {
			data = append(data, 0)
		}
	}

	sum := gitcore.NewOidFromContent(data)
	return append(data, sum.Bytes()...)
}
