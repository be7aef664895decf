package aerogui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/aeroki-lang/aerokiide"
)

// ErrCancelled is returned by a FileChooser when the user dismisses the dialog.
var ErrCancelled = errors.New("dialog cancelled")

// FileFilter is one entry of a file dialog's type list.
type FileFilter struct {
	Desc       string
	Extensions []string // without the dot; "*" matches everything
}

// FileRequest describes a file dialog.
type FileRequest struct {
	Title     string
	StartDir  string
	StartFile string
	Filters   []FileFilter
	// DefaultExtension is appended to save paths that have none.
	DefaultExtension string
}

// Source and function file filters offered by the dialogs.
var (
	SourceFilters = []FileFilter{
		{Desc: "Aeroki files", Extensions: []string{strings.TrimPrefix(aeroki.SourceExtension, ".")}},
		{Desc: "All files", Extensions: []string{"*"}},
	}
	FunctionFilters = []FileFilter{
		{Desc: "Aeroki Function", Extensions: []string{strings.TrimPrefix(aeroki.FunctionExtension, ".")}},
		{Desc: "All files", Extensions: []string{"*"}},
	}
)

// FileChooser shows modal open and save dialogs.
type FileChooser interface {
	OpenFile(req FileRequest) (string, error)
	SaveFile(req FileRequest) (string, error)
}

// Notifier shows modal message boxes.
type Notifier interface {
	ShowError(title, message string)
	ShowInfo(title, message string)
}

// IsCancelled reports whether err only means the user closed the dialog.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// OpenSourceRequest returns the request for File > Open.
func OpenSourceRequest(doc *aeroki.Document) FileRequest {
	return FileRequest{
		Title:    "Open",
		StartDir: doc.Dir(),
		Filters:  SourceFilters,
	}
}

// SaveSourceRequest returns the request for File > Save As.
func SaveSourceRequest(doc *aeroki.Document) FileRequest {
	req := FileRequest{
		Title:            "Save As",
		StartDir:         doc.Dir(),
		Filters:          SourceFilters[:1],
		DefaultExtension: aeroki.SourceExtension,
	}
	if p := doc.Path(); p != "" {
		req.StartFile = filepath.Base(p)
	}
	return req
}

// SaveFunctionRequest returns the save request for a function file.
func SaveFunctionRequest(f aeroki.FunctionFile) FileRequest {
	return FileRequest{
		Title:            "Save Function",
		StartFile:        f.DefaultFileName(),
		Filters:          FunctionFilters,
		DefaultExtension: aeroki.FunctionExtension,
	}
}

// MatchesFilters reports whether path is accepted by any filter.
func MatchesFilters(path string, filters []FileFilter) bool {
	if len(filters) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range filters {
		for _, e := range f.Extensions {
			if e == "*" || strings.EqualFold(e, ext) {
				return true
			}
		}
	}
	return false
}

// ResolveSavePath returns created with ext appended when it has none. Toolkit
// save dialogs create the chosen file up front; if the name changes, that
// empty file is removed again.
func ResolveSavePath(created, ext string) string {
	final := aeroki.WithDefaultExtension(created, ext)
	if final == created {
		return final
	}
	if info, err := os.Stat(created); err == nil && info.Mode().IsRegular() && info.Size() == 0 {
		_ = os.Remove(created)
	}
	return final
}
