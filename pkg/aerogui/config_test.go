package aerogui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aeroki-lang/aerokiide"
)

func TestConfigHelperDefaults(t *testing.T) {
	for _, h := range []*ConfigHelper{nil, NewConfigHelper(nil), NewConfigHelper(&aeroki.Settings{})} {
		assert.Equal(t, GetDefaultFont(), h.GetFontFamily())
		assert.Equal(t, DefaultFontSize, h.GetFontSize())
		assert.Equal(t, ThemeAuto, h.GetTheme())
		w, ht := h.GetWindowSize()
		assert.Equal(t, 800, w)
		assert.Equal(t, 600, ht)
		assert.Equal(t, color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}, h.GetOutputBackground())
		assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, h.GetOutputForeground())
		assert.False(t, h.UseNativeDialogs())
		assert.True(t, h.WatchFiles())
		assert.Equal(t, DefaultRecentLimit, h.GetRecentLimit())
	}
}

func TestConfigHelperConfigured(t *testing.T) {
	watch := false
	h := NewConfigHelper(&aeroki.Settings{GUI: aeroki.GUISettings{
		FontFamily:       "Tahoma, Consolas",
		FontSize:         20,
		Theme:            "Dark",
		WindowWidth:      1024,
		OutputBackground: "#fff",
		OutputForeground: "not a color",
		NativeDialogs:    true,
		WatchFiles:       &watch,
		RecentLimit:      3,
	}})

	assert.Equal(t, "Tahoma, Consolas", h.GetFontFamily())
	assert.Equal(t, "Tahoma", h.GetPrimaryFont())
	assert.Equal(t, 20, h.GetFontSize())
	assert.Equal(t, ThemeDark, h.GetTheme())
	w, ht := h.GetWindowSize()
	assert.Equal(t, 1024, w)
	assert.Equal(t, DefaultWindowHeight, ht)
	assert.Equal(t, "#ffffff", HexColor(h.GetOutputBackground()))
	assert.Equal(t, DefaultOutputForeground, HexColor(h.GetOutputForeground()))
	assert.True(t, h.UseNativeDialogs())
	assert.False(t, h.WatchFiles())
	assert.Equal(t, 3, h.GetRecentLimit())
}

func TestPopulateDefaults(t *testing.T) {
	s := &aeroki.Settings{GUI: aeroki.GUISettings{Theme: "light"}}
	h := NewConfigHelper(s)

	assert.True(t, h.PopulateDefaults())
	assert.Equal(t, "light", s.GUI.Theme)
	assert.Equal(t, GetDefaultFont(), s.GUI.FontFamily)
	assert.Equal(t, DefaultOutputBackground, s.GUI.OutputBackground)
	assert.Equal(t, DefaultRecentLimit, s.GUI.RecentLimit)

	assert.False(t, h.PopulateDefaults(), "second pass changes nothing")
	assert.False(t, NewConfigHelper(nil).PopulateDefaults())
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#00ff00", color.NRGBA{G: 0xff, A: 0xff}, true},
		{"0f0", color.NRGBA{G: 0xff, A: 0xff}, true},
		{" #4CAF50 ", color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}, true},
		{"#12345", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseHexColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
