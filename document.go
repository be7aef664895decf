package aeroki

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Document is the editor's text buffer and the file it belongs to.
type Document struct {
	mu    sync.RWMutex
	text  string
	path  string
	dirty bool
}

// NewDocument returns an empty, untitled document.
func NewDocument() *Document {
	return &Document{}
}

// OpenDocument reads path as UTF-8 text.
func OpenDocument(path string) (*Document, error) {
	d := &Document{}
	if err := d.Open(path); err != nil {
		return nil, err
	}
	return d, nil
}

// Open replaces the buffer with the contents of path.
func (d *Document) Open(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = string(data)
	d.path = abs
	d.dirty = false
	return nil
}

// Reload re-reads the current file, discarding unsaved edits.
func (d *Document) Reload() error {
	path := d.Path()
	if path == "" {
		return ErrNoPath
	}
	return d.Open(path)
}

// Text returns the buffer contents.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// SetText replaces the buffer. The document becomes dirty if the text changed.
func (d *Document) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if text != d.text {
		d.text = text
		d.dirty = true
	}
}

// Path returns the associated file, or "" for an untitled document.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// Dirty reports unsaved changes.
func (d *Document) Dirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dirty
}

// Dir returns the directory of the file, or "" for an untitled document.
func (d *Document) Dir() string {
	if p := d.Path(); p != "" {
		return filepath.Dir(p)
	}
	return ""
}

// Title is the window title fragment: file name or "Untitled", "*" when dirty.
func (d *Document) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name := "Untitled"
	if d.path != "" {
		name = filepath.Base(d.path)
	}
	if d.dirty {
		name += " *"
	}
	return name
}

// Save writes the buffer to its file.
func (d *Document) Save() error {
	path := d.Path()
	if path == "" {
		return ErrNoPath
	}
	return d.SaveAs(path)
}

// SaveAs writes the buffer to path and adopts it. A name without an
// extension gets ".aero".
func (d *Document) SaveAs(path string) error {
	path = WithDefaultExtension(path, SourceExtension)
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := os.WriteFile(abs, []byte(d.text), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", abs, err)
	}
	d.path = abs
	d.dirty = false
	return nil
}

// WithDefaultExtension appends ext when path has no extension.
func WithDefaultExtension(path, ext string) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + ext
}
