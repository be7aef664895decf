package main

import (
	"fmt"

	"github.com/gotk3/gotk3/gtk"

	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

// textOutput is the read-only output area. Feed and Clear run on the GTK
// thread via the console's GUISync.
type textOutput struct {
	view *gtk.TextView
	buf  *gtk.TextBuffer
}

func newTextOutput(h *aerogui.ConfigHelper) (*textOutput, error) {
	view, err := gtk.TextViewNew()
	if err != nil {
		return nil, err
	}
	view.SetEditable(false)
	view.SetCursorVisible(false)
	view.SetMonospace(true)
	view.SetWrapMode(gtk.WRAP_WORD_CHAR)
	view.SetName("aeroki-output")

	css := fmt.Sprintf("#aeroki-output, #aeroki-output text { background-color: %s; color: %s; font-size: %dpt; }",
		aerogui.HexColor(h.GetOutputBackground()), aerogui.HexColor(h.GetOutputForeground()), h.GetFontSize())
	provider, err := gtk.CssProviderNew()
	if err != nil {
		return nil, err
	}
	if err := provider.LoadFromData(css); err != nil {
		return nil, err
	}
	style, err := view.GetStyleContext()
	if err != nil {
		return nil, err
	}
	style.AddProvider(provider, uint(gtk.STYLE_PROVIDER_PRIORITY_APPLICATION))

	buf, err := view.GetBuffer()
	if err != nil {
		return nil, err
	}
	return &textOutput{view: view, buf: buf}, nil
}

func (o *textOutput) Feed(text string) {
	o.buf.Insert(o.buf.GetEndIter(), text)
	o.buf.PlaceCursor(o.buf.GetEndIter())
	o.view.ScrollToMark(o.buf.GetInsert(), 0, false, 0, 1)
}

func (o *textOutput) Clear() {
	o.buf.SetText("")
}
