package sync

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	staleDoc  = "A (/)\n- [x] one\n- [ ] two\n"
	syncedDoc = "A (1/2)\n- [x] one\n- [ ] two\n"
)

func setup(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/a.md", []byte(staleDoc), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/docs/b.md", []byte(syncedDoc), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/docs/c.txt", []byte(staleDoc), 0o644))
	return fs
}

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	cmd := newSyncCommand(fs)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func contents(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestSyncWritesFiles(t *testing.T) {
	fs := setup(t)

	out, err := execute(t, fs, "/docs")
	require.NoError(t, err)

	assert.Equal(t, "updated: /docs/a.md\n", out)
	assert.Equal(t, syncedDoc, contents(t, fs, "/docs/a.md"))
	assert.Equal(t, staleDoc, contents(t, fs, "/docs/c.txt"))

	out, err = execute(t, fs, "/docs")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSyncCheck(t *testing.T) {
	fs := setup(t)

	out, err := execute(t, fs, "--check", "/docs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files are out of date")
	assert.Equal(t, "out of date: /docs/a.md\n", out)
	assert.Equal(t, staleDoc, contents(t, fs, "/docs/a.md"))

	_, err = execute(t, fs, "--check", "/docs/b.md")
	require.NoError(t, err)
}

func TestSyncDiff(t *testing.T) {
	fs := setup(t)

	out, err := execute(t, fs, "--check", "--diff", "/docs/a.md")
	require.Error(t, err)
	assert.Contains(t, out, "/docs/a.md")
	assert.Contains(t, out, "-A (/)")
	assert.Contains(t, out, "+A (1/2)")
}

func TestSyncMissingPath(t *testing.T) {
	fs := setup(t)

	out, err := execute(t, fs, "/docs/a.md", "/nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nowhere")
	assert.Equal(t, "updated: /docs/a.md\n", out, "files that exist are still synchronized")
}
