package gitcore

import (
	"errors"
	"strings"

	"golang.org/x/xerrors"
)

var (
	// ErrRefNotFound is an error thrown when trying to act on a
	// reference that doesn't exists
	ErrRefNotFound = errors.New("reference not found")

	// ErrRefInvalid is an error thrown when the content of a reference
	// is corrupted: garbage instead of an oid, or a symbolic chain
	// that never terminates
	ErrRefInvalid = errors.New("reference is not valid")

	// ErrRefNameInvalid is an error thrown when the name of a reference
	// is not valid
	ErrRefNameInvalid = errors.New("reference name is not valid")

	// ErrUnknownRefType is an error thrown when the type of a reference
	// is unknown
	ErrUnknownRefType = errors.New("unknown reference type")
)

// ReferenceType represents the type of a reference
type ReferenceType int8

const (
	// OidReference represents a reference that targets an Oid
	OidReference ReferenceType = 1
	// SymbolicReference represents a reference that targets another
	// reference
	SymbolicReference ReferenceType = 2
)

// symrefPrefix is the marker that makes the content of a reference
// file point at another reference instead of an oid
const symrefPrefix = "ref: "

// maxSymrefDepth bounds how many symbolic hops a resolution will
// follow. Anything deeper is either a loop or hand-made corruption;
// either way the chain is broken
const maxSymrefDepth = 10

// Reference represents a git reference
// https://git-scm.com/book/en/v2/Git-Internals-Git-References
type Reference struct {
	name      string
	symTarget string
	oid       Oid
	kind      ReferenceType
}

// RefContent represents a method that returns the raw content of a
// reference file. This is used so the resolution can happen here,
// without depending on a specific storage
type RefContent func(name string) ([]byte, error)

// ResolveReference resolves a reference, following symbolic hops
// until an Oid is found.
//
// The returned Reference keeps the requested name; when the first hop
// was symbolic it also keeps that first target, so HEAD resolves to
// both its branch and the branch's oid
func ResolveReference(name string, finder RefContent) (*Reference, error) {
	firstTarget := ""

	current := name
	for depth := 0; depth < maxSymrefDepth; depth++ {
		if !IsRefNameValid(current) {
			return nil, xerrors.Errorf(`ref "%s": %w`, current, ErrRefNameInvalid)
		}

		raw, err := finder(current)
		if err != nil {
			return nil, err
		}
		content := strings.TrimSpace(string(raw))

		next, isSym := strings.CutPrefix(content, symrefPrefix)
		if isSym {
			if depth == 0 {
				firstTarget = next
			}
			current = next
			continue
		}

		// not symbolic: the content has to be an oid
		oid, err := NewOidFromStr(content)
		if err != nil {
			return nil, xerrors.Errorf(`ref "%s": %w`, current, ErrRefInvalid)
		}
		if firstTarget != "" {
			ref := NewSymbolicReference(name, firstTarget)
			ref.oid = oid
			return ref, nil
		}
		return NewReference(name, oid), nil
	}

	return nil, xerrors.Errorf(`ref "%s" has too many symbolic hops (circular reference?): %w`, name, ErrRefInvalid)
}

// NewReference returns a new Reference object that targets
// an object
func NewReference(name string, target Oid) *Reference {
	return &Reference{
		kind: OidReference,
		name: name,
		oid:  target,
	}
}

// NewSymbolicReference returns a new Reference object that targets
// another reference.
// Example HEAD targeting refs/heads/master
func NewSymbolicReference(name, target string) *Reference {
	return &Reference{
		kind:      SymbolicReference,
		name:      name,
		symTarget: target,
	}
}

// Name returns the full name of the reference
// example: refs/heads/master
func (ref *Reference) Name() string {
	return ref.name
}

// Target returns the ID targeted by a reference
func (ref *Reference) Target() Oid {
	return ref.oid
}

// Type returns the type of a reference
func (ref *Reference) Type() ReferenceType {
	return ref.kind
}

// SymbolicTarget returns the symbolic target of a reference
func (ref *Reference) SymbolicTarget() string {
	return ref.symTarget
}

// refForbiddenChars are the characters that can never appear anywhere
// in a reference name, plus DEL
// https://git-scm.com/docs/git-check-ref-format
const refForbiddenChars = " ~^:?*[\\\x7f"

// IsRefNameValid returns whether the given name could be the name of
// a reference
func IsRefNameValid(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return false
	}
	if strings.ContainsAny(name, refForbiddenChars) {
		return false
	}
	if strings.Contains(name, "..") || strings.Contains(name, "@{") {
		return false
	}
	for _, c := range name {
		if c < 32 {
			return false
		}
	}

	// every slash-separated segment has its own constraints
	for _, segment := range strings.Split(name, "/") {
		switch {
		case segment == "",
			strings.HasPrefix(segment, "."),
			strings.HasSuffix(segment, "."),
			strings.HasSuffix(segment, ".lock"):
			return false
		}
	}
	return true
}
