package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

// ideTheme applies the configured variant and text size on top of the
// default theme.
type ideTheme struct {
	fyne.Theme
	mode     aerogui.ThemeMode
	textSize float32
}

func newIDETheme(h *aerogui.ConfigHelper) *ideTheme {
	return &ideTheme{
		Theme:    theme.DefaultTheme(),
		mode:     h.GetTheme(),
		textSize: float32(h.GetFontSize()),
	}
}

func (t *ideTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch t.mode {
	case aerogui.ThemeDark:
		variant = theme.VariantDark
	case aerogui.ThemeLight:
		variant = theme.VariantLight
	}
	return t.Theme.Color(name, variant)
}

func (t *ideTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.textSize > 0 {
		return t.textSize
	}
	return t.Theme.Size(name)
}
