package aeroki

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptDetector(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		wantVars []string
		wantText []string
	}{
		{"named variable", "กรอกค่า x:", []string{"x"}, []string{"กรอกค่า x:"}},
		{"no variable", "กรอกค่า:", []string{""}, []string{"กรอกค่า:"}},
		{"preceded by output", "ผลลัพธ์ 42\nกรอกค่า age:", []string{"age"}, []string{"กรอกค่า age:"}},
		{"two prompts", "กรอกค่า a:\nกรอกค่า b:", []string{"a", "b"}, []string{"กรอกค่า a:", "กรอกค่า b:"}},
		{"colon without marker", "time 10:30\n", nil, nil},
		{"marker without colon", "กรอกค่า x", nil, nil},
		{"trailing text after colon", "กรอกค่า n: ", []string{"n"}, []string{"กรอกค่า n:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewPromptDetector("", "")
			prompts := d.FeedString(tt.output)
			require.Len(t, prompts, len(tt.wantVars))
			for i, p := range prompts {
				assert.Equal(t, tt.wantVars[i], p.Variable)
				assert.Equal(t, tt.wantText[i], p.Text)
			}
		})
	}
}

func TestPromptDetectorSplitFeeds(t *testing.T) {
	d := NewPromptDetector("", "")
	assert.Empty(t, d.FeedString("กรอก"))
	assert.Empty(t, d.FeedString("ค่า va"))
	prompts := d.FeedString("lue:")
	require.Len(t, prompts, 1)
	assert.Equal(t, "value", prompts[0].Variable)
}

func TestPromptDetectorClearsAfterMatch(t *testing.T) {
	d := NewPromptDetector("", "")
	require.Len(t, d.FeedString("กรอกค่า x:"), 1)
	// A later colon must not re-trigger the old prompt.
	assert.Empty(t, d.FeedString(" 5\nresult: 5\n"))
}

func TestPromptDetectorBoundedBuffer(t *testing.T) {
	d := NewPromptDetector("", "")
	d.FeedString(strings.Repeat("a", 5000))
	assert.LessOrEqual(t, len(d.buf), promptBufferLimit)

	prompts := d.FeedString("กรอกค่า y:")
	require.Len(t, prompts, 1)
	assert.Equal(t, "y", prompts[0].Variable)
}

func TestPromptDetectorCustomMarker(t *testing.T) {
	d := NewPromptDetector("Enter", "?")
	prompts := d.FeedString("Enter name?")
	require.Len(t, prompts, 1)
	assert.Equal(t, "name", prompts[0].Variable)
	assert.Equal(t, "Enter name:", prompts[0].Label())
}

func TestPromptDetectorReset(t *testing.T) {
	d := NewPromptDetector("", "")
	d.FeedString("กรอกค่า x")
	d.Reset()
	assert.Empty(t, d.FeedString(":"))
}

func TestPromptLabel(t *testing.T) {
	assert.Equal(t, "กรอกค่า x:", Prompt{Variable: "x"}.Label())
	assert.Equal(t, "กรอกค่า:", Prompt{}.Label())
}
