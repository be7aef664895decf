// Package aerogui provides shared functionality for the Aeroki IDE front-ends.
// This package contains common code used by the Fyne, GTK and Qt programs.
package aerogui

import (
	"fmt"
	"image/color"
	"runtime"
	"strconv"
	"strings"

	"github.com/aeroki-lang/aerokiide"
)

// Default presentation settings
const (
	DefaultFontSize     = 14
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultRecentLimit  = 10

	DefaultOutputBackground = "#111111"
	DefaultOutputForeground = "#00ff00"
)

// SettingsFileName is the IDE's settings file inside aeroki.ConfigDir.
const SettingsFileName = "aerokiide.toml"

// ThemeMode represents the GUI theme setting
type ThemeMode string

const (
	ThemeAuto  ThemeMode = "auto"  // Follow OS preference
	ThemeDark  ThemeMode = "dark"  // Force dark theme
	ThemeLight ThemeMode = "light" // Force light theme
)

// GetDefaultFont returns the best monospace font for the current platform.
// Includes cross-platform fallbacks so config files can be shared between OS.
// Thai-capable faces come before Latin-only ones.
func GetDefaultFont() string {
	switch runtime.GOOS {
	case "darwin":
		return "Menlo, Ayuthaya, SF Mono, Monaco, Courier New"
	case "windows":
		return "Consolas, Tahoma, Cascadia Mono, Courier New"
	default:
		return "DejaVu Sans Mono, Noto Sans Mono, Noto Sans Thai, Liberation Mono, monospace"
	}
}

// ConfigHelper provides common configuration access methods.
type ConfigHelper struct {
	Settings *aeroki.Settings
}

// NewConfigHelper creates a new ConfigHelper with the given settings.
func NewConfigHelper(settings *aeroki.Settings) *ConfigHelper {
	return &ConfigHelper{Settings: settings}
}

func (h *ConfigHelper) gui() *aeroki.GUISettings {
	if h == nil || h.Settings == nil {
		return nil
	}
	return &h.Settings.GUI
}

// GetFontFamily returns the configured font family.
func (h *ConfigHelper) GetFontFamily() string {
	if g := h.gui(); g != nil && g.FontFamily != "" {
		return g.FontFamily
	}
	return GetDefaultFont()
}

// GetPrimaryFont returns the first entry of the font family list.
func (h *ConfigHelper) GetPrimaryFont() string {
	family := h.GetFontFamily()
	if i := strings.Index(family, ","); i >= 0 {
		family = family[:i]
	}
	return strings.TrimSpace(family)
}

// GetFontSize returns the configured font size.
func (h *ConfigHelper) GetFontSize() int {
	if g := h.gui(); g != nil && g.FontSize > 0 {
		return g.FontSize
	}
	return DefaultFontSize
}

// GetTheme returns the configured GUI theme mode.
// Valid values: "auto", "dark", "light"
func (h *ConfigHelper) GetTheme() ThemeMode {
	if g := h.gui(); g != nil {
		switch strings.ToLower(g.Theme) {
		case "dark":
			return ThemeDark
		case "light":
			return ThemeLight
		}
	}
	return ThemeAuto
}

// GetWindowSize returns the initial main window size.
func (h *ConfigHelper) GetWindowSize() (width, height int) {
	width, height = DefaultWindowWidth, DefaultWindowHeight
	if g := h.gui(); g != nil {
		if g.WindowWidth > 0 {
			width = g.WindowWidth
		}
		if g.WindowHeight > 0 {
			height = g.WindowHeight
		}
	}
	return width, height
}

// GetOutputBackground returns the output area background color.
func (h *ConfigHelper) GetOutputBackground() color.NRGBA {
	if g := h.gui(); g != nil {
		if c, ok := ParseHexColor(g.OutputBackground); ok {
			return c
		}
	}
	c, _ := ParseHexColor(DefaultOutputBackground)
	return c
}

// GetOutputForeground returns the output area text color.
func (h *ConfigHelper) GetOutputForeground() color.NRGBA {
	if g := h.gui(); g != nil {
		if c, ok := ParseHexColor(g.OutputForeground); ok {
			return c
		}
	}
	c, _ := ParseHexColor(DefaultOutputForeground)
	return c
}

// UseNativeDialogs reports whether the OS file dialogs should replace the
// toolkit's own.
func (h *ConfigHelper) UseNativeDialogs() bool {
	g := h.gui()
	return g != nil && g.NativeDialogs
}

// WatchFiles reports whether the open document is watched for external edits.
// Defaults to true.
func (h *ConfigHelper) WatchFiles() bool {
	if g := h.gui(); g != nil && g.WatchFiles != nil {
		return *g.WatchFiles
	}
	return true
}

// GetRecentLimit returns the maximum length of the recent files list.
func (h *ConfigHelper) GetRecentLimit() int {
	if g := h.gui(); g != nil && g.RecentLimit > 0 {
		return g.RecentLimit
	}
	return DefaultRecentLimit
}

// PopulateDefaults ensures all GUI settings have explicit values.
// Returns true if the settings were modified.
func (h *ConfigHelper) PopulateDefaults() bool {
	g := h.gui()
	if g == nil {
		return false
	}

	modified := false
	if g.FontFamily == "" {
		g.FontFamily = GetDefaultFont()
		modified = true
	}
	if g.FontSize <= 0 {
		g.FontSize = DefaultFontSize
		modified = true
	}
	if g.Theme == "" {
		g.Theme = string(ThemeAuto)
		modified = true
	}
	if g.WindowWidth <= 0 {
		g.WindowWidth = DefaultWindowWidth
		modified = true
	}
	if g.WindowHeight <= 0 {
		g.WindowHeight = DefaultWindowHeight
		modified = true
	}
	if g.OutputBackground == "" {
		g.OutputBackground = DefaultOutputBackground
		modified = true
	}
	if g.OutputForeground == "" {
		g.OutputForeground = DefaultOutputForeground
		modified = true
	}
	if g.RecentLimit <= 0 {
		g.RecentLimit = DefaultRecentLimit
		modified = true
	}
	return modified
}

// ParseHexColor parses "#rgb" or "#rrggbb".
func ParseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

// HexColor formats c as "#rrggbb".
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// GetConfigPath returns the full path to the IDE settings file.
func GetConfigPath() string {
	return aeroki.SettingsPath(SettingsFileName)
}
