package aeroki

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentLifecycle(t *testing.T) {
	d := NewDocument()
	assert.Equal(t, "Untitled", d.Title())
	assert.Equal(t, "", d.Dir())
	assert.ErrorIs(t, d.Save(), ErrNoPath)
	assert.ErrorIs(t, d.Reload(), ErrNoPath)

	d.SetText("แสดง 1")
	assert.True(t, d.Dirty())
	assert.Equal(t, "Untitled *", d.Title())

	dir := t.TempDir()
	require.NoError(t, d.SaveAs(filepath.Join(dir, "hello")))
	assert.Equal(t, filepath.Join(dir, "hello.aero"), d.Path())
	assert.Equal(t, dir, d.Dir())
	assert.False(t, d.Dirty())
	assert.Equal(t, "hello.aero", d.Title())

	data, err := os.ReadFile(d.Path())
	require.NoError(t, err)
	assert.Equal(t, "แสดง 1", string(data))
}

func TestDocumentSetTextUnchanged(t *testing.T) {
	d := NewDocument()
	d.SetText("")
	assert.False(t, d.Dirty())
}

func TestDocumentOpenAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.aero")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	d, err := OpenDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "v1", d.Text())
	assert.False(t, d.Dirty())

	d.SetText("edited")
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	require.NoError(t, d.Reload())
	assert.Equal(t, "v2", d.Text())
	assert.False(t, d.Dirty())
}

func TestOpenDocumentMissing(t *testing.T) {
	_, err := OpenDocument(filepath.Join(t.TempDir(), "missing.aero"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocumentSaveKeepsExtension(t *testing.T) {
	d := NewDocument()
	d.SetText("x")
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, d.SaveAs(path))
	assert.Equal(t, path, d.Path())

	d.SetText("y")
	require.NoError(t, d.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "y", string(data))
}

func TestWithDefaultExtension(t *testing.T) {
	assert.Equal(t, "a.aero", WithDefaultExtension("a", ".aero"))
	assert.Equal(t, "a.txt", WithDefaultExtension("a.txt", ".aero"))
	assert.Equal(t, "", WithDefaultExtension("", ".aero"))
}
