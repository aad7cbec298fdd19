package gitcore

import (
	"bytes"
	"errors"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/xerrors"
)

// ErrKVLMInvalid is an error thrown when parsing a malformed
// commit or tag payload
var ErrKVLMInvalid = errors.New("invalid key-value list with message")

// KVLM is a "key-value list with message", the shared payload format
// of commit and tag objects.
//
// The payload is a list of `key SP value LF` lines followed by a blank
// line and a free-form message:
//
// tree 29ff16c9c14e2652b22f8b78bb08a5a07930c147
// parent 206941306e8a8af65b66eaaaea388a7ae24d49a0
// author John Doe <john@domain.tld> 1527025023 +0200
//
// {message}
//
// Values spanning multiple lines have their extra lines prefixed with
// a space (stripped on parse, reinserted on serialize). A repeated key
// keeps one entry per occurrence, in order. Key insertion order is
// preserved so that Serialize(Parse(x)) == x for any well-formed x.
type KVLM struct {
	headers *linkedhashmap.Map
	message []byte
}

// NewKVLM returns an empty KVLM
func NewKVLM() *KVLM {
	return &KVLM{
		headers: linkedhashmap.New(),
	}
}

// ParseKVLM parses the given payload into kv.
// If kv is nil a new KVLM is allocated, otherwise the provided one is
// reused and returned.
func ParseKVLM(data []byte, kv *KVLM) (*KVLM, error) {
	if kv == nil {
		kv = NewKVLM()
	}

	i := 0
	for {
		sp := bytes.IndexByte(data[i:], ' ')
		nl := bytes.IndexByte(data[i:], '\n')

		// If a newline appears before a space (or there is no space
		// at all), we reached the blank line that separates the
		// headers from the message
		if sp < 0 || (nl >= 0 && nl < sp) {
			if nl != 0 {
				return nil, xerrors.Errorf("headers not followed by a blank line: %w", ErrKVLMInvalid)
			}
			kv.message = append([]byte{}, data[i+1:]...)
			return kv, nil
		}

		key := string(data[i : i+sp])

		// The value may span several lines; every line after the first
		// starts with a space, so we keep advancing while the byte
		// after a LF is a space
		end := i + sp
		for {
			j := bytes.IndexByte(data[end+1:], '\n')
			if j < 0 {
				return nil, xerrors.Errorf("value of %q has no end: %w", key, ErrKVLMInvalid)
			}
			end += 1 + j
			if end+1 >= len(data) || data[end+1] != ' ' {
				break
			}
		}

		value := bytes.ReplaceAll(data[i+sp+1:end], []byte("\n "), []byte("\n"))
		kv.Add(key, value)
		i = end + 1
	}
}

// Serialize returns the payload representation of the KVLM
func (kv *KVLM) Serialize() []byte {
	buf := new(bytes.Buffer)

	it := kv.headers.Iterator()
	for it.Next() {
		key := it.Key().(string)
		for _, v := range it.Value().([][]byte) {
			buf.WriteString(key)
			buf.WriteByte(' ')
			buf.Write(bytes.ReplaceAll(v, []byte("\n"), []byte("\n ")))
			buf.WriteByte('\n')
		}
	}

	buf.WriteByte('\n')
	buf.Write(kv.message)
	return buf.Bytes()
}

// Add appends a value under the given key, preserving the insertion
// order of both keys and values
func (kv *KVLM) Add(key string, value []byte) {
	values := [][]byte{}
	if current, ok := kv.headers.Get(key); ok {
		values = current.([][]byte)
	}
	kv.headers.Put(key, append(values, value))
}

// Value returns the first value stored under the given key
func (kv *KVLM) Value(key string) ([]byte, bool) {
	values, ok := kv.headers.Get(key)
	if !ok {
		return nil, false
	}
	return values.([][]byte)[0], true
}

// Values returns all the values stored under the given key, in
// insertion order
func (kv *KVLM) Values(key string) [][]byte {
	values, ok := kv.headers.Get(key)
	if !ok {
		return nil
	}
	return values.([][]byte)
}

// Has returns whether the given key is present
func (kv *KVLM) Has(key string) bool {
	_, ok := kv.headers.Get(key)
	return ok
}

// Keys returns the keys in insertion order
func (kv *KVLM) Keys() []string {
	raw := kv.headers.Keys()
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = k.(string)
	}
	return keys
}

// Message returns the message part of the payload
func (kv *KVLM) Message() []byte {
	return kv.message
}

// SetMessage sets the message part of the payload
func (kv *KVLM) SetMessage(message []byte) {
	kv.message = message
}
