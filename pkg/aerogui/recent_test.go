package aerogui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aeroki-lang/aerokiide"
)

func TestRecentFilesOrderAndLimit(t *testing.T) {
	dir := t.TempDir()
	a, b, c := filepath.Join(dir, "a.aero"), filepath.Join(dir, "b.aero"), filepath.Join(dir, "c.aero")

	r := NewRecentFiles(2)
	r.Add(a)
	r.Add(b)
	assert.Equal(t, []string{b, a}, r.List())

	r.Add(a) // touching moves it to the front
	assert.Equal(t, []string{a, b}, r.List())

	r.Add(c) // evicts the least recent
	assert.Equal(t, []string{c, a}, r.List())
	assert.Equal(t, 2, r.Len())

	r.Remove(a)
	assert.Equal(t, []string{c}, r.List())

	r.Add("")
	assert.Equal(t, 1, r.Len())

	r.Clear()
	assert.Empty(t, r.List())
}

func TestRecentFilesSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	files := []string{filepath.Join(dir, "new.aero"), filepath.Join(dir, "mid.aero"), filepath.Join(dir, "old.aero")}
	s := &aeroki.Settings{RecentFiles: files}

	r := LoadRecentFiles(s, 10)
	assert.Equal(t, files, r.List())

	r.Add(files[2])
	r.Store(s)
	assert.Equal(t, []string{files[2], files[0], files[1]}, s.RecentFiles)

	assert.Empty(t, LoadRecentFiles(nil, 0).List())
}

func TestRecentFilesDefaultLimit(t *testing.T) {
	r := NewRecentFiles(0)
	for i := 0; i < DefaultRecentLimit+5; i++ {
		r.Add(filepath.Join(t.TempDir(), "f.aero"))
	}
	assert.Equal(t, DefaultRecentLimit, r.Len())
}
