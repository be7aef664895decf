package aeroki

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestOutputDecoderUTF8Passthrough(t *testing.T) {
	src := bytes.NewBufferString("กรอกค่า x:")
	r, err := NewOutputDecoder(src, "utf-8")
	require.NoError(t, err)
	assert.Same(t, src, r)
}

func TestOutputDecoderWindows874(t *testing.T) {
	raw, err := charmap.Windows874.NewEncoder().String("กรอกค่า x:")
	require.NoError(t, err)

	for _, name := range []string{"windows-874", "TIS-620", "cp874", "iso-8859-11", "latin-thai"} {
		r, err := NewOutputDecoder(bytes.NewBufferString(raw), name)
		require.NoError(t, err, name)
		out, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "กรอกค่า x:", string(out), name)
	}
}

func TestOutputDecoderUnknown(t *testing.T) {
	_, err := NewOutputDecoder(bytes.NewBuffer(nil), "ebcdic")
	assert.Error(t, err)
}

func TestAnswerEncoder(t *testing.T) {
	utf, err := newAnswerEncoder("")
	require.NoError(t, err)
	assert.Equal(t, "สวัสดี", utf.encode("สวัสดี"))

	thai, err := newAnswerEncoder("tis-620")
	require.NoError(t, err)
	encoded := thai.encode("สวัสดี")
	assert.Len(t, encoded, len([]rune("สวัสดี")))

	decoded, err := charmap.Windows874.NewDecoder().String(encoded)
	require.NoError(t, err)
	assert.Equal(t, "สวัสดี", decoded)

	// Runes outside the charset are replaced instead of failing.
	assert.NotEmpty(t, thai.encode("日本"))
}
