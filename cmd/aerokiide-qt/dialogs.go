package main

import (
	"path/filepath"
	"strings"

	"github.com/mappu/miqt/qt"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

// qtChooser implements the aerogui dialog interfaces with Qt's static
// dialogs. Every method must run on the Qt main thread.
type qtChooser struct {
	parent *qt.QWidget
}

var (
	_ aerogui.FileChooser = qtChooser{}
	_ aerogui.Notifier    = qtChooser{}
)

// filterString renders filters as "Desc (*.a *.b);;All files (*)".
func filterString(filters []aerogui.FileFilter) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		globs := make([]string, 0, len(f.Extensions))
		for _, ext := range f.Extensions {
			if ext == "*" {
				globs = append(globs, "*")
			} else {
				globs = append(globs, "*."+ext)
			}
		}
		parts = append(parts, f.Desc+" ("+strings.Join(globs, " ")+")")
	}
	return strings.Join(parts, ";;")
}

func startPath(req aerogui.FileRequest) string {
	if req.StartFile == "" {
		return req.StartDir
	}
	return filepath.Join(req.StartDir, req.StartFile)
}

func (c qtChooser) OpenFile(req aerogui.FileRequest) (string, error) {
	path := qt.QFileDialog_GetOpenFileName4(c.parent, req.Title, startPath(req), filterString(req.Filters))
	if path == "" {
		return "", aerogui.ErrCancelled
	}
	return path, nil
}

func (c qtChooser) SaveFile(req aerogui.FileRequest) (string, error) {
	path := qt.QFileDialog_GetSaveFileName4(c.parent, req.Title, startPath(req), filterString(req.Filters))
	if path == "" {
		return "", aerogui.ErrCancelled
	}
	return aeroki.WithDefaultExtension(path, req.DefaultExtension), nil
}

func (c qtChooser) ShowError(title, message string) {
	qt.QMessageBox_Critical(c.parent, title, message)
}

func (c qtChooser) ShowInfo(title, message string) {
	qt.QMessageBox_Information(c.parent, title, message)
}

func (c qtChooser) Confirm(title, message string) bool {
	return qt.QMessageBox_Question(c.parent, title, message) == qt.QMessageBox__Yes
}
