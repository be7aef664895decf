package main

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

func TestIDEThemeForcesVariant(t *testing.T) {
	h := aerogui.NewConfigHelper(&aeroki.Settings{GUI: aeroki.GUISettings{Theme: "dark", FontSize: 17}})
	th := newIDETheme(h)

	dark := theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark)
	assert.Equal(t, dark, th.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, float32(17), th.Size(theme.SizeNameText))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNamePadding), th.Size(theme.SizeNamePadding))
}

func TestIDEThemeAutoFollowsSystem(t *testing.T) {
	th := newIDETheme(aerogui.NewConfigHelper(nil))
	for _, variant := range []fyne.ThemeVariant{theme.VariantDark, theme.VariantLight} {
		assert.Equal(t,
			theme.DefaultTheme().Color(theme.ColorNameForeground, variant),
			th.Color(theme.ColorNameForeground, variant))
	}
	assert.Equal(t, float32(aerogui.DefaultFontSize), th.Size(theme.SizeNameText))
}
