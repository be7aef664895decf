package main

import (
	"fmt"

	"github.com/gotk3/gotk3/gtk"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

// gtkChooser implements the aerogui dialog interfaces with GTK dialogs.
// Every method must run on the GTK main thread.
type gtkChooser struct {
	parent *gtk.Window
}

var (
	_ aerogui.FileChooser = (*gtkChooser)(nil)
	_ aerogui.Notifier    = (*gtkChooser)(nil)
)

func (c *gtkChooser) fileDialog(req aerogui.FileRequest, action gtk.FileChooserAction, accept string) (string, error) {
	dlg, err := gtk.FileChooserDialogNewWith2Buttons(req.Title, c.parent, action,
		"_Cancel", gtk.RESPONSE_CANCEL, accept, gtk.RESPONSE_ACCEPT)
	if err != nil {
		return "", err
	}
	defer dlg.Destroy()

	for _, f := range req.Filters {
		filter, err := gtk.FileFilterNew()
		if err != nil {
			return "", err
		}
		filter.SetName(fmt.Sprintf("%s (%s)", f.Desc, patterns(f.Extensions)))
		for _, ext := range f.Extensions {
			if ext == "*" {
				filter.AddPattern("*")
			} else {
				filter.AddPattern("*." + ext)
			}
		}
		dlg.AddFilter(filter)
	}
	if req.StartDir != "" {
		dlg.SetCurrentFolder(req.StartDir)
	}
	if action == gtk.FILE_CHOOSER_ACTION_SAVE {
		dlg.SetDoOverwriteConfirmation(true)
		if req.StartFile != "" {
			dlg.SetCurrentName(req.StartFile)
		}
	}

	if dlg.Run() != gtk.RESPONSE_ACCEPT {
		return "", aerogui.ErrCancelled
	}
	return dlg.GetFilename(), nil
}

func patterns(exts []string) string {
	s := ""
	for i, ext := range exts {
		if i > 0 {
			s += ";"
		}
		if ext == "*" {
			s += "*.*"
		} else {
			s += "*." + ext
		}
	}
	return s
}

func (c *gtkChooser) OpenFile(req aerogui.FileRequest) (string, error) {
	return c.fileDialog(req, gtk.FILE_CHOOSER_ACTION_OPEN, "_Open")
}

func (c *gtkChooser) SaveFile(req aerogui.FileRequest) (string, error) {
	path, err := c.fileDialog(req, gtk.FILE_CHOOSER_ACTION_SAVE, "_Save")
	if err != nil {
		return "", err
	}
	return aeroki.WithDefaultExtension(path, req.DefaultExtension), nil
}

func (c *gtkChooser) message(kind gtk.MessageType, title, text string) {
	md := gtk.MessageDialogNew(c.parent, gtk.DIALOG_MODAL, kind, gtk.BUTTONS_OK, "%s", text)
	md.SetTitle(title)
	md.Run()
	md.Destroy()
}

func (c *gtkChooser) ShowError(title, text string) {
	c.message(gtk.MESSAGE_ERROR, title, text)
}

func (c *gtkChooser) ShowInfo(title, text string) {
	c.message(gtk.MESSAGE_INFO, title, text)
}

// Confirm asks a yes/no question.
func (c *gtkChooser) Confirm(title, text string) bool {
	md := gtk.MessageDialogNew(c.parent, gtk.DIALOG_MODAL, gtk.MESSAGE_QUESTION, gtk.BUTTONS_YES_NO, "%s", text)
	md.SetTitle(title)
	defer md.Destroy()
	return md.Run() == gtk.RESPONSE_YES
}

// inputDialog is the modal "Input" dialog for one prompt.
type inputDialog struct {
	dlg   *gtk.Dialog
	entry *gtk.Entry
}

func newInputDialog(parent *gtk.Window, label string) (*inputDialog, error) {
	dlg, err := gtk.DialogNew()
	if err != nil {
		return nil, err
	}
	dlg.SetTitle("Input")
	dlg.SetTransientFor(parent)
	dlg.SetModal(true)
	dlg.AddButton("_Cancel", gtk.RESPONSE_CANCEL)
	dlg.AddButton("_OK", gtk.RESPONSE_OK)
	dlg.SetDefaultResponse(gtk.RESPONSE_OK)

	content, err := dlg.GetContentArea()
	if err != nil {
		dlg.Destroy()
		return nil, err
	}
	lbl, err := gtk.LabelNew(label)
	if err != nil {
		dlg.Destroy()
		return nil, err
	}
	lbl.SetXAlign(0)
	entry, err := gtk.EntryNew()
	if err != nil {
		dlg.Destroy()
		return nil, err
	}
	entry.SetActivatesDefault(true)

	content.SetSpacing(6)
	content.SetMarginStart(12)
	content.SetMarginEnd(12)
	content.SetMarginTop(12)
	content.PackStart(lbl, false, false, 0)
	content.PackStart(entry, false, false, 0)
	dlg.ShowAll()
	return &inputDialog{dlg: dlg, entry: entry}, nil
}

// run blocks in a nested main loop until the dialog is answered or
// cancelled with cancel.
func (d *inputDialog) run() (string, bool) {
	defer d.dlg.Destroy()
	if d.dlg.Run() != gtk.RESPONSE_OK {
		return "", false
	}
	text, err := d.entry.GetText()
	if err != nil {
		return "", false
	}
	return text, true
}

func (d *inputDialog) cancel() {
	d.dlg.Response(gtk.RESPONSE_CANCEL)
}
