package aerogui

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroki-lang/aerokiide"
)

func TestMatchesFilters(t *testing.T) {
	assert.True(t, MatchesFilters("a.aero", SourceFilters[:1]))
	assert.True(t, MatchesFilters("A.AERO", SourceFilters[:1]))
	assert.False(t, MatchesFilters("a.txt", SourceFilters[:1]))
	assert.True(t, MatchesFilters("a.txt", SourceFilters))
	assert.True(t, MatchesFilters("f.aerofunc", FunctionFilters[:1]))
	assert.True(t, MatchesFilters("anything", nil))
}

func TestSourceRequests(t *testing.T) {
	doc := aeroki.NewDocument()
	open := OpenSourceRequest(doc)
	assert.Equal(t, "", open.StartDir)
	assert.Len(t, open.Filters, 2)

	dir := t.TempDir()
	doc.SetText("x")
	require.NoError(t, doc.SaveAs(filepath.Join(dir, "main.aero")))

	save := SaveSourceRequest(doc)
	assert.Equal(t, dir, save.StartDir)
	assert.Equal(t, "main.aero", save.StartFile)
	assert.Equal(t, ".aero", save.DefaultExtension)
	assert.Equal(t, []FileFilter{{Desc: "Aeroki files", Extensions: []string{"aero"}}}, save.Filters)
}

func TestSaveFunctionRequest(t *testing.T) {
	req := SaveFunctionRequest(aeroki.FunctionFile{Name: "บวก"})
	assert.Equal(t, "บวก.aerofunc", req.StartFile)
	assert.Equal(t, ".aerofunc", req.DefaultExtension)
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(fmt.Errorf("open: %w", ErrCancelled)))
	assert.False(t, IsCancelled(assert.AnError))
}

func TestResolveSavePath(t *testing.T) {
	dir := t.TempDir()

	placeholder := filepath.Join(dir, "hello")
	require.NoError(t, os.WriteFile(placeholder, nil, 0o644))
	assert.Equal(t, placeholder+aeroki.SourceExtension, ResolveSavePath(placeholder, aeroki.SourceExtension))
	assert.NoFileExists(t, placeholder)

	kept := filepath.Join(dir, "notes")
	require.NoError(t, os.WriteFile(kept, []byte("data"), 0o644))
	assert.Equal(t, kept+aeroki.FunctionExtension, ResolveSavePath(kept, aeroki.FunctionExtension))
	assert.FileExists(t, kept, "files with content are never removed")

	named := filepath.Join(dir, "main.aero")
	require.NoError(t, os.WriteFile(named, nil, 0o644))
	assert.Equal(t, named, ResolveSavePath(named, aeroki.SourceExtension))
	assert.FileExists(t, named)
}
