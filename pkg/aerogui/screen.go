package aerogui

import (
	"strings"
	"sync"

	"github.com/phroun/purfecterm"
)

const (
	screenCols       = 200
	screenRows       = 50
	screenScrollback = 10000
)

// Screen interprets VT output into plain text for panes that cannot render
// escape sequences themselves. Feed expects \r\n line endings.
type Screen struct {
	mu     sync.Mutex
	buffer *purfecterm.Buffer
	parser *purfecterm.Parser
}

func NewScreen() *Screen {
	s := &Screen{}
	s.reset()
	return s
}

func (s *Screen) reset() {
	s.buffer = purfecterm.NewBuffer(screenCols, screenRows, screenScrollback)
	s.parser = purfecterm.NewParser(s.buffer)
}

func (s *Screen) Feed(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parser.ParseString(text)
}

func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Text returns scrollback and screen contents with trailing blank rows removed.
func (s *Screen) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.SelectAll()
	text := s.buffer.GetSelectedText()
	s.buffer.ClearSelection()
	return strings.TrimRight(text, "\n")
}
