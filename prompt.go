package aeroki

import (
	"strings"
)

const (
	promptBufferLimit = 1024
	promptBufferKeep  = 512
)

// PromptDetector scans child output, one rune at a time, for the prompt the
// aeroki runtime prints before it reads from stdin ("กรอกค่า x:"). Prompts
// carry no trailing newline, so detection cannot be line based.
type PromptDetector struct {
	marker     string
	terminator string
	buf        []rune
}

// NewPromptDetector creates a detector. Empty arguments select the defaults.
func NewPromptDetector(marker, terminator string) *PromptDetector {
	if marker == "" {
		marker = DefaultPromptMarker
	}
	if terminator == "" {
		terminator = DefaultPromptTerminator
	}
	return &PromptDetector{
		marker:     marker,
		terminator: terminator,
		buf:        make([]rune, 0, promptBufferLimit),
	}
}

// Feed appends r and reports a prompt when the buffer holds the marker
// followed by the terminator. The buffer is cleared after a match.
func (d *PromptDetector) Feed(r rune) (Prompt, bool) {
	d.buf = append(d.buf, r)
	if len(d.buf) > promptBufferLimit {
		d.buf = append(d.buf[:0], d.buf[len(d.buf)-promptBufferKeep:]...)
	}

	// The terminator is the cheap check; most runes are not one.
	if !strings.HasSuffix(string(r), lastRune(d.terminator)) {
		return Prompt{}, false
	}

	s := string(d.buf)
	start := strings.LastIndex(s, d.marker)
	if start < 0 {
		return Prompt{}, false
	}
	after := s[start:]
	end := strings.Index(after, d.terminator)
	if end < 0 {
		return Prompt{}, false
	}

	text := after[:end+len(d.terminator)]
	p := Prompt{
		Variable: promptVariable(after[:end]),
		Text:     text,
		marker:   d.marker,
	}
	d.buf = d.buf[:0]
	return p, true
}

// FeedString feeds every rune of s and returns the prompts found, in order.
func (d *PromptDetector) FeedString(s string) []Prompt {
	var prompts []Prompt
	for _, r := range s {
		if p, ok := d.Feed(r); ok {
			prompts = append(prompts, p)
		}
	}
	return prompts
}

// Reset discards buffered output.
func (d *PromptDetector) Reset() {
	d.buf = d.buf[:0]
}

// promptVariable returns the second field of "กรอกค่า name", or "".
func promptVariable(prompt string) string {
	fields := strings.Fields(prompt)
	if len(fields) > 1 {
		return fields[1]
	}
	return ""
}

func lastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return string(r[len(r)-1])
}
