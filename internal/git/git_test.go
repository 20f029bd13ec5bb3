package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())
	return dir
}

func gitAdd(t *testing.T, dir, name string) {
	t.Helper()
	cmd := exec.Command("git", "add", "-f", "--", name)
	cmd.Dir = dir
	require.NoError(t, cmd.Run())
}

func TestCheckOutsideRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	status := Check(context.Background(), t.TempDir(), []string{"key.key"})
	assert.False(t, status.IsRepo)
	assert.False(t, status.Exposed())
	assert.Empty(t, Format(status))
}

func TestCheckIgnored(t *testing.T) {
	dir := newRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("key.key\nmpass.txt\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.key"), []byte("k"), 0600))

	status := Check(context.Background(), dir, []string{"key.key", "mpass.txt"})
	assert.True(t, status.IsRepo)
	assert.ElementsMatch(t, []string{"key.key", "mpass.txt"}, status.Ignored)
	assert.Empty(t, status.Tracked)
	assert.False(t, status.Exposed())
	assert.Contains(t, Format(status), "ok: 2 secret file(s)")
}

func TestCheckTrackedAndUnignored(t *testing.T) {
	dir := newRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.key"), []byte("k"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mpass.txt"), []byte("d"), 0600))
	gitAdd(t, dir, "key.key")

	status := Check(context.Background(), dir, []string{"key.key", "mpass.txt"})
	assert.Equal(t, []string{"key.key"}, status.Tracked)
	assert.ElementsMatch(t, []string{"key.key", "mpass.txt"}, status.Unignored)
	assert.True(t, status.Exposed())

	out := Format(status)
	assert.Contains(t, out, "error: key.key is tracked by git")
	assert.Contains(t, out, "warning: mpass.txt not in .gitignore")
	assert.NotContains(t, out, "warning: key.key")
}
