// Package native implements the aerogui dialog interfaces with the
// operating system's own file and message dialogs.
package native

import (
	"errors"

	"github.com/sqweek/dialog"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

// Chooser uses the operating system's dialogs.
type Chooser struct{}

var (
	_ aerogui.FileChooser = Chooser{}
	_ aerogui.Notifier    = Chooser{}
)

func (Chooser) builder(req aerogui.FileRequest) *dialog.FileBuilder {
	b := dialog.File()
	if req.Title != "" {
		b = b.Title(req.Title)
	}
	for _, f := range req.Filters {
		b = b.Filter(f.Desc, f.Extensions...)
	}
	if req.StartDir != "" {
		b = b.SetStartDir(req.StartDir)
	}
	if req.StartFile != "" {
		b = b.SetStartFile(req.StartFile)
	}
	return b
}

// OpenFile asks for an existing file.
func (c Chooser) OpenFile(req aerogui.FileRequest) (string, error) {
	path, err := c.builder(req).Load()
	return path, translate(err)
}

// SaveFile asks for a destination, adding the default extension if needed.
func (c Chooser) SaveFile(req aerogui.FileRequest) (string, error) {
	path, err := c.builder(req).Save()
	if err != nil {
		return "", translate(err)
	}
	return aeroki.WithDefaultExtension(path, req.DefaultExtension), nil
}

func (Chooser) ShowError(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}

func (Chooser) ShowInfo(title, message string) {
	dialog.Message("%s", message).Title(title).Info()
}

func translate(err error) error {
	if errors.Is(err, dialog.ErrCancelled) {
		return aerogui.ErrCancelled
	}
	return err
}
