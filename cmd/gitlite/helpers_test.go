package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCmd executes the root command with the given args and returns
// what was written to stdout
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	root := newRootCmd()
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// mustRunCmd is like runCmd but fails the test on error
func mustRunCmd(t *testing.T, args ...string) string {
	t.Helper()

	out, err := runCmd(t, args...)
	require.NoError(t, err)
	return out
}
