package aeroki

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lookupEncoding maps a configured charset name to an encoding. nil means
// UTF-8 passthrough.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "utf-8-bom", "utf8-bom":
		return unicode.UTF8BOM, nil
	case "windows-874", "cp874", "tis-620", "tis620", "thai", "iso-8859-11", "latin-thai":
		// Windows-874 covers TIS-620 and ISO-8859-11 outside the C1 range.
		return charmap.Windows874, nil
	}
	return nil, fmt.Errorf("unsupported output encoding %q", name)
}

// NewOutputDecoder wraps r so that it yields UTF-8 regardless of the child's
// console charset.
func NewOutputDecoder(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// answerEncoder converts UTF-8 answers into the child's charset.
type answerEncoder struct {
	enc encoding.Encoding
}

func newAnswerEncoder(name string) (*answerEncoder, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return &answerEncoder{enc: enc}, nil
}

func (a *answerEncoder) encode(s string) string {
	if a == nil || a.enc == nil || a.enc == unicode.UTF8BOM {
		return s
	}
	// Unrepresentable runes become the charset's replacement byte.
	out, err := encoding.ReplaceUnsupported(a.enc.NewEncoder()).String(s)
	if err != nil {
		return s
	}
	return out
}
