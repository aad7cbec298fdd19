// Package testhelper contains helpers to simplify tests
package testhelper

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Home is the home directory of the fake user of the in-memory
// filesystems returned by NewFS
const Home = "/home/user"

// NewFS returns an empty in-memory filesystem
func NewFS(t *testing.T) afero.Fs {
	t.Helper()
	return afero.NewMemMapFs()
}

// Env returns an environment lookup that only knows HOME (set to
// Home) and whatever overrides are provided
func Env(overrides map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := overrides[key]; ok {
			return v
		}
		if key == "HOME" {
			return Home
		}
		return ""
	}
}

// WriteFile writes a file and its parent directories
func WriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

// WriteIdentity writes a global config carrying the identity used
// by the tests
func WriteIdentity(t *testing.T, fs afero.Fs) {
	t.Helper()
	WriteFile(t, fs, Home+"/.gitconfig", "[user]\n\tname = John Doe\n\temail = john@domain.tld\n")
}
