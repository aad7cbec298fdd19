// Package pathutil contains flag values to parse paths on the
// command line
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

// ErrIsNotDirectory is an error returned when a path is expected to
// point to a directory but doesn't
var ErrIsNotDirectory = errors.New("path is not a directory")

// DirPathValue represents a Flag value to be parsed by spf13/pflag.
// The value must be a path to an existing directory
type DirPathValue struct {
	defaultValue string
	userValue    string
	valueSet     bool
}

// we make sure the struct implements the interface
var _ pflag.Value = (*DirPathValue)(nil)

// NewDirPathFlagWithDefault returns a new Flag Value that should hold
// a valid path to a directory
func NewDirPathFlagWithDefault(defaultPath string) *DirPathValue {
	return &DirPathValue{
		defaultValue: defaultPath,
	}
}

// String returns the flag's value
func (v *DirPathValue) String() string {
	if v.valueSet {
		return v.userValue
	}
	return v.defaultValue
}

// Set sets the flag's value, making sure it points to an existing
// directory
func (v *DirPathValue) Set(value string) (err error) {
	if value == "" {
		return nil
	}

	if value, err = filepath.Abs(value); err != nil {
		return fmt.Errorf("could not find absolute path: %w", err)
	}

	info, err := os.Stat(value)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", value, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid path %s: %w", value, ErrIsNotDirectory)
	}

	v.valueSet = true
	v.userValue = value
	return nil
}

// Type returns the unique type of the Value
func (v *DirPathValue) Type() string {
	return "path"
}
