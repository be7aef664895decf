package aeroki

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the settings file.
const (
	EnvCompiler = "AEROKI_COMPILER"
	EnvTempDir  = "AEROKI_TEMP_DIR"
	EnvEncoding = "AEROKI_ENCODING"
	EnvPTY      = "AEROKI_PTY"
	EnvDebug    = "AEROKI_DEBUG"
)

// Settings is the on-disk configuration shared by the front-ends.
type Settings struct {
	Compiler       string   `toml:"compiler"`
	SearchDirs     []string `toml:"search_dirs"`
	TempDir        string   `toml:"temp_dir"`
	OutputEncoding string   `toml:"output_encoding"`
	PromptMarker   string   `toml:"prompt_marker"`
	UsePTY         *bool    `toml:"use_pty"`
	KillPrevious   *bool    `toml:"kill_previous"`
	Debug          bool     `toml:"debug"`
	LogCategories  string   `toml:"log_categories"`

	GUI         GUISettings `toml:"gui"`
	RecentFiles []string    `toml:"recent_files"`
}

// GUISettings holds presentation options. Zero values mean "use the default".
type GUISettings struct {
	FontFamily       string `toml:"font_family"`
	FontSize         int    `toml:"font_size"`
	Theme            string `toml:"theme"`
	WindowWidth      int    `toml:"window_width"`
	WindowHeight     int    `toml:"window_height"`
	OutputBackground string `toml:"output_background"`
	OutputForeground string `toml:"output_foreground"`
	NativeDialogs    bool   `toml:"native_dialogs"`
	WatchFiles       *bool  `toml:"watch_files"`
	RecentLimit      int    `toml:"recent_limit"`
}

const defaultSettingsFile = `# Aeroki IDE configuration
# This file is automatically created on first run

# Path to the aeroki compiler. Empty: look next to the IDE, then in PATH.
compiler = ""

# Charset the compiler writes: "utf-8", "windows-874" or "tis-620".
output_encoding = "utf-8"

# Run the compiler on a pseudo-terminal (Unix only).
# use_pty = true

# Debug logging and the categories to show (process, prompt, io, config, editor, gui, app, all).
debug = false
log_categories = ""

[gui]
# Options: "auto", "dark", "light"
theme = "auto"
font_size = 0
native_dialogs = false
recent_limit = 10
`

// ConfigDir returns ~/.aeroki, or "" when the home directory is unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aeroki")
}

// SettingsPath returns the path of a settings file inside ConfigDir.
func SettingsPath(name string) string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}

// LoadSettings reads path. A missing file is created with defaults. A file
// that does not parse yields empty settings plus the parse error, so callers
// can log and carry on.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		createDefaultSettings(path)
		data = []byte(defaultSettingsFile)
	} else if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}

	if _, err := toml.Decode(string(data), s); err != nil {
		return &Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// createDefaultSettings writes the commented default file. Failure is ignored.
func createDefaultSettings(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, []byte(defaultSettingsFile), 0o644)
}

// Save writes the settings to path as TOML.
func (s *Settings) Save(path string) error {
	if path == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Clone returns a deep copy, so overrides can be layered without touching
// the values that get saved.
func (s *Settings) Clone() *Settings {
	c := *s
	c.SearchDirs = append([]string(nil), s.SearchDirs...)
	c.RecentFiles = append([]string(nil), s.RecentFiles...)
	c.UsePTY = cloneBool(s.UsePTY)
	c.KillPrevious = cloneBool(s.KillPrevious)
	c.GUI.WatchFiles = cloneBool(s.GUI.WatchFiles)
	return &c
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// ApplyEnv overlays AEROKI_* variables. Values come from the process
// environment first, then from the given .env files (missing files are
// skipped). The applied keys are returned for logging.
func (s *Settings) ApplyEnv(envFiles ...string) ([]string, error) {
	env := map[string]string{}
	var existing []string
	for _, f := range envFiles {
		if f != "" && isRegularFile(f) {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		fileEnv, err := godotenv.Read(existing...)
		if err != nil {
			return nil, fmt.Errorf("read env files: %w", err)
		}
		env = fileEnv
	}
	for _, key := range []string{EnvCompiler, EnvTempDir, EnvEncoding, EnvPTY, EnvDebug} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}

	var applied []string
	if v, ok := env[EnvCompiler]; ok && v != "" {
		s.Compiler = v
		applied = append(applied, EnvCompiler)
	}
	if v, ok := env[EnvTempDir]; ok && v != "" {
		s.TempDir = v
		applied = append(applied, EnvTempDir)
	}
	if v, ok := env[EnvEncoding]; ok && v != "" {
		s.OutputEncoding = v
		applied = append(applied, EnvEncoding)
	}
	if v, ok := env[EnvPTY]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return applied, fmt.Errorf("%s: %w", EnvPTY, err)
		}
		s.UsePTY = &b
		applied = append(applied, EnvPTY)
	}
	if v, ok := env[EnvDebug]; ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Debug = b
		} else {
			// AEROKI_DEBUG=process,prompt enables debug for those categories
			s.Debug = true
			s.LogCategories = v
		}
		applied = append(applied, EnvDebug)
	}
	return applied, nil
}

// LauncherConfig converts the settings into a launcher Config.
func (s *Settings) LauncherConfig() *Config {
	cfg := DefaultConfig()
	cfg.Debug = s.Debug
	cfg.CompilerPath = s.Compiler
	cfg.SearchDirs = append([]string(nil), s.SearchDirs...)
	cfg.TempDir = s.TempDir
	if s.OutputEncoding != "" {
		cfg.OutputEncoding = s.OutputEncoding
	}
	if s.PromptMarker != "" {
		cfg.PromptMarker = s.PromptMarker
	}
	if s.UsePTY != nil {
		cfg.UsePTY = *s.UsePTY
	}
	if s.KillPrevious != nil {
		cfg.KillPrevious = *s.KillPrevious
	}

	logger := NewLogger(s.Debug)
	if strings.TrimSpace(s.LogCategories) != "" {
		for _, name := range logger.EnableCategories(s.LogCategories) {
			logger.WarnCat(CatConfig, "unknown log category %q", name)
		}
	} else if s.Debug {
		logger.EnableAllCategories()
	}
	cfg.Logger = logger
	return cfg
}
