package gitlite

import (
	"github.com/gitlite/gitlite/gitcore"
	"github.com/gitlite/gitlite/gitcore/config"
	"github.com/gitlite/gitlite/gitcore/object"
)

// TagOptions contains the optional behaviors of CreateTag
type TagOptions struct {
	// Annotated creates a tag object carrying the tagger and the
	// message, instead of a lightweight ref
	Annotated bool
	// Message is the message of an annotated tag
	Message string
}

// CreateTag creates a tag named name targeting the given object.
//
// A lightweight tag is a plain ref under refs/tags/ pointing at the
// target. An annotated tag is a tag object (written to the odb)
// pointed at by the ref
func (r *Repository) CreateTag(name string, target gitcore.Oid, opts *TagOptions) error {
	if opts == nil {
		opts = &TagOptions{}
	}

	refTarget := target
	if opts.Annotated {
		o, err := r.Object(target)
		if err != nil {
			return err
		}
		userName, email, err := config.Identity(r.fs, r.env)
		if err != nil {
			return err
		}
		tag := object.NewTag(&object.TagParams{
			Target:  o,
			Name:    name,
			Tagger:  object.NewSignature(userName, email),
			Message: opts.Message,
		})
		if refTarget, err = r.WriteObject(tag.ToObject()); err != nil {
			return err
		}
	}

	return r.WriteReference(gitcore.NewReference(gitcore.LocalTagFullName(name), refTarget))
}
