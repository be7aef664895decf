package main

import (
	"io"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/fyne-io/terminal"

	"github.com/aeroki-lang/aerokiide"
)

// clearScreen erases the terminal and homes the cursor.
const clearScreen = "\x1b[2J\x1b[H"

// outputTerminal feeds console text to a fyne-io terminal through a pipe.
// Keyboard input in the terminal is discarded; values are entered in dialogs.
type outputTerminal struct {
	term *terminal.Terminal

	mu     sync.Mutex
	writer *io.PipeWriter
	keysW  *io.PipeWriter
}

func newOutputTerminal(logger *aeroki.Logger) *outputTerminal {
	outR, outW := io.Pipe()
	keysR, keysW := io.Pipe()
	t := &outputTerminal{
		term:   terminal.New(),
		writer: outW,
		keysW:  keysW,
	}

	go func() {
		_, _ = io.Copy(io.Discard, keysR)
	}()
	// RunWithConnection expects: in = where to write keyboard input, out = what to display
	go func() {
		if err := t.term.RunWithConnection(keysW, outR); err != nil {
			logger.ErrorCat(aeroki.CatGUI, "terminal: %v", err)
		}
	}()
	return t
}

func (t *outputTerminal) Feed(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = io.WriteString(t.writer, text)
}

func (t *outputTerminal) Clear() {
	t.Feed(clearScreen)
}

func (t *outputTerminal) Close() {
	t.writer.Close()
	t.keysW.Close()
}

// sizedWidget wraps a canvas object and enforces a minimum size
type sizedWidget struct {
	widget.BaseWidget
	wrapped fyne.CanvasObject
	minSize fyne.Size
}

func newSizedWidget(wrapped fyne.CanvasObject, minSize fyne.Size) *sizedWidget {
	s := &sizedWidget{
		wrapped: wrapped,
		minSize: minSize,
	}
	s.ExtendBaseWidget(s)
	return s
}

func (s *sizedWidget) CreateRenderer() fyne.WidgetRenderer {
	return &sizedWidgetRenderer{widget: s}
}

func (s *sizedWidget) MinSize() fyne.Size {
	return s.minSize
}

type sizedWidgetRenderer struct {
	widget *sizedWidget
}

func (r *sizedWidgetRenderer) Layout(size fyne.Size) {
	r.widget.wrapped.Resize(size)
	r.widget.wrapped.Move(fyne.NewPos(0, 0))
}

func (r *sizedWidgetRenderer) MinSize() fyne.Size {
	return r.widget.minSize
}

func (r *sizedWidgetRenderer) Refresh() {
	r.widget.wrapped.Refresh()
}

func (r *sizedWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.widget.wrapped}
}

func (r *sizedWidgetRenderer) Destroy() {}
