package object

import (
	"github.com/gitlite/gitlite/gitcore"
	"golang.org/x/xerrors"
)

// Tag headers
const (
	tagObjectKey = "object"
	tagTypeKey   = "type"
	tagNameKey   = "tag"
	tagTaggerKey = "tagger"
)

// TagParams represents all the data needed to create an annotated Tag
type TagParams struct {
	Target  *Object
	Name    string
	Tagger  Signature
	Message string
}

// Tag represents an annotated tag object.
//
// The payload of a tag is a KVLM with the conventional keys
// object, type, tag, and tagger:
//
// object {sha}
// type {target_object_type}
// tag {tag_name}
// tagger {author_name} <{author_email}> {author_date_seconds} {author_date_timezone}
// {a blank line}
// {tag message}
//
// Lightweight tags are not tag objects, they are plain refs under
// refs/tags/ pointing at any object
type Tag struct {
	rawObject *Object
	kvlm      *gitcore.KVLM

	tagger Signature
	tag    string

	target gitcore.Oid
	typ    Type
}

// NewTag creates a new Tag object
func NewTag(p *TagParams) *Tag {
	t := &Tag{
		target: p.Target.ID(),
		typ:    p.Target.Type(),
		tag:    p.Name,
		tagger: p.Tagger,
	}

	kv := gitcore.NewKVLM()
	kv.Add(tagObjectKey, []byte(t.target.String()))
	kv.Add(tagTypeKey, []byte(t.typ.String()))
	kv.Add(tagNameKey, []byte(t.tag))
	kv.Add(tagTaggerKey, []byte(t.tagger.String()))
	kv.SetMessage([]byte(p.Message))
	t.kvlm = kv

	t.rawObject = New(TypeTag, kv.Serialize())
	return t
}

// NewTagFromObject creates a new Tag from a raw git object
func NewTagFromObject(o *Object) (*Tag, error) {
	if o.typ != TypeTag {
		return nil, xerrors.Errorf("type %s is not a tag: %w", o.typ, ErrObjectInvalid)
	}

	kv, err := gitcore.ParseKVLM(o.Bytes(), nil)
	if err != nil {
		return nil, xerrors.Errorf("could not parse tag payload: %w", ErrTagInvalid)
	}
	tag := &Tag{
		rawObject: o,
		kvlm:      kv,
	}

	target, ok := kv.Value(tagObjectKey)
	if !ok {
		return nil, xerrors.Errorf("tag has no target: %w", ErrTagInvalid)
	}
	if tag.target, err = gitcore.NewOidFromChars(target); err != nil {
		return nil, xerrors.Errorf("could not parse target id %q: %w", target, err)
	}

	typ, ok := kv.Value(tagTypeKey)
	if !ok {
		return nil, xerrors.Errorf("tag has no type: %w", ErrTagInvalid)
	}
	if tag.typ, err = NewTypeFromString(string(typ)); err != nil {
		return nil, xerrors.Errorf("object type %s: %w", typ, err)
	}

	if name, ok := kv.Value(tagNameKey); ok {
		tag.tag = string(name)
	}

	tagger, ok := kv.Value(tagTaggerKey)
	if !ok {
		return nil, xerrors.Errorf("tag has no tagger: %w", ErrTagInvalid)
	}
	if tag.tagger, err = NewSignatureFromBytes(tagger); err != nil {
		return nil, xerrors.Errorf("could not parse tagger [%s]: %w", tagger, err)
	}

	return tag, nil
}

// ID returns the SHA of the tag object
func (t *Tag) ID() gitcore.Oid {
	return t.rawObject.ID()
}

// Target returns the ID of the object targeted by the tag
func (t *Tag) Target() gitcore.Oid {
	return t.target
}

// Type returns the type of the targeted object
func (t *Tag) Type() Type {
	return t.typ
}

// Name returns the tag's name
func (t *Tag) Name() string {
	return t.tag
}

// Tagger returns the Signature of the person that created the tag
func (t *Tag) Tagger() Signature {
	return t.tagger
}

// Message returns the tag's message
func (t *Tag) Message() string {
	return string(t.kvlm.Message())
}

// ToObject returns the underlying Object
func (t *Tag) ToObject() *Object {
	return t.rawObject
}
