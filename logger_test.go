package aeroki

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(enabled bool) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	l := NewLogger(enabled)
	l.SetOutput(&out, &errOut)
	return l, &out, &errOut
}

func TestLoggerSeverityRouting(t *testing.T) {
	l, out, errOut := newTestLogger(false)

	l.DebugCat(CatProcess, "hidden")
	l.WarnCat(CatProcess, "careful %d", 1)
	l.Error("broken")

	assert.Empty(t, out.String())
	assert.Equal(t, "[Aeroki:process WARN] careful 1\n[Aeroki ERROR] broken\n", errOut.String())
}

func TestLoggerCategories(t *testing.T) {
	l, out, _ := newTestLogger(true)

	l.DebugCat(CatPrompt, "off")
	assert.Empty(t, out.String())

	l.EnableCategory(CatPrompt)
	l.DebugCat(CatPrompt, "on")
	l.Debug("uncategorised")
	assert.Equal(t, "[DEBUG:prompt] on\n[DEBUG] uncategorised\n", out.String())

	l.DisableCategory(CatPrompt)
	out.Reset()
	l.DebugCat(CatPrompt, "off again")
	assert.Empty(t, out.String())
}

func TestLoggerEnableCategories(t *testing.T) {
	l, _, _ := newTestLogger(true)
	unknown := l.EnableCategories(" Process, bogus ,io")
	assert.Equal(t, []string{"bogus"}, unknown)
	assert.True(t, l.IsCategoryEnabled(CatProcess))
	assert.True(t, l.IsCategoryEnabled(CatIO))
	assert.False(t, l.IsCategoryEnabled(CatGUI))

	l.EnableCategories("all")
	for _, cat := range AllCategories {
		assert.True(t, l.IsCategoryEnabled(cat), cat)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.ErrorCat(CatIO, "x") })
}
