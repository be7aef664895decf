package main

import (
	"fmt"

	"github.com/mappu/miqt/qt"

	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

// plainOutput is the read-only output pane fed by the console. Escape
// sequences are interpreted by screen and only its text is shown.
type plainOutput struct {
	edit   *qt.QPlainTextEdit
	screen *aerogui.Screen
}

func newPlainOutput(h *aerogui.ConfigHelper) *plainOutput {
	edit := qt.NewQPlainTextEdit2()
	edit.SetReadOnly(true)
	edit.SetStyleSheet(fmt.Sprintf(
		"QPlainTextEdit { background-color: %s; color: %s; font-family: %q; font-size: %dpt; }",
		aerogui.HexColor(h.GetOutputBackground()), aerogui.HexColor(h.GetOutputForeground()),
		h.GetPrimaryFont(), h.GetFontSize()))
	return &plainOutput{edit: edit, screen: aerogui.NewScreen()}
}

func (o *plainOutput) Feed(text string) {
	o.screen.Feed(text)
	o.edit.SetPlainText(o.screen.Text())
	o.edit.MoveCursor(qt.QTextCursor__End)
	o.edit.EnsureCursorVisible()
}

func (o *plainOutput) Clear() {
	o.screen.Clear()
	o.edit.Clear()
}
