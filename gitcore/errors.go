package gitcore

import "errors"

// ErrObjectNotFound is an error corresponding to a git object not being
// found in the object database
var ErrObjectNotFound = errors.New("object not found")
