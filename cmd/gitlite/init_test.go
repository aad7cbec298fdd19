package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := mustRunCmd(t, "-C", dir, "init")
	assert.Contains(t, out, "Initialized empty Git repository")

	head, err := os.ReadFile(filepath.Join(dir, ".git", "HEAD"))
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/master\n", string(head))

	for _, sub := range []string{"objects", "refs/heads", "refs/tags", "branches"} {
		fi, err := os.Stat(filepath.Join(dir, ".git", filepath.FromSlash(sub)))
		require.NoError(t, err)
		assert.True(t, fi.IsDir())
	}
}
