package aerogui

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aeroki-lang/aerokiide"
)

// Options are the command line flags shared by the front-ends.
type Options struct {
	ConfigPath    string
	Compiler      string
	Encoding      string
	LogCategories string
	Debug         bool
	NoPTY         bool
	// Files are the positional arguments, usually one document to open.
	Files []string
}

// ParseFlags parses args (without the program name).
func ParseFlags(name string, args []string, stderr io.Writer) (*Options, error) {
	opts := &Options{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Settings file (default ~/.aeroki/"+SettingsFileName+")")
	fs.StringVar(&opts.Compiler, "compiler", "", "Path to the aeroki compiler")
	fs.StringVar(&opts.Encoding, "encoding", "", "Charset of the compiler's output (utf-8, windows-874, tis-620)")
	fs.StringVar(&opts.LogCategories, "log", "", "Debug log categories, comma separated (process,prompt,io,config,editor,gui,app,all)")
	fs.BoolVar(&opts.Debug, "debug", false, "Enable debug output")
	fs.BoolVar(&opts.Debug, "d", false, "Enable debug output (short)")
	fs.BoolVar(&opts.NoPTY, "no-pty", false, "Use plain pipes instead of a pseudo-terminal")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options] [file]\n\nOptions:\n", name)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.Files = fs.Args()
	return opts, nil
}

// Apply overrides settings with the flags that were given.
func (o *Options) Apply(s *aeroki.Settings) {
	if o.Compiler != "" {
		s.Compiler = o.Compiler
	}
	if o.Encoding != "" {
		s.OutputEncoding = o.Encoding
	}
	if o.LogCategories != "" {
		s.Debug = true
		s.LogCategories = o.LogCategories
	}
	if o.Debug {
		s.Debug = true
	}
	if o.NoPTY {
		off := false
		s.UsePTY = &off
	}
}

// Startup is the state every front-end builds before opening a window.
type Startup struct {
	Options      *Options
	SettingsPath string
	// Settings mirrors the settings file and is what SaveSettings writes.
	Settings *aeroki.Settings
	// Effective is Settings with .env, environment and flag overrides applied.
	Effective *aeroki.Settings
	Config    *ConfigHelper
	Launcher  *aeroki.Launcher
	Logger    *aeroki.Logger

	// loadErr keeps an unreadable settings file from being overwritten.
	loadErr error
}

// Start parses flags and loads settings, .env files and the environment,
// in increasing order of precedence: settings file, .env, environment, flags.
func Start(name string, args []string) (*Startup, error) {
	opts, err := ParseFlags(name, args, os.Stderr)
	if err != nil {
		return nil, err
	}

	// Settings problems are reported before the real logger exists.
	boot := aeroki.NewLogger(false)

	path := opts.ConfigPath
	if path == "" {
		path = GetConfigPath()
	}
	settings, loadErr := aeroki.LoadSettings(path)
	if loadErr != nil {
		boot.WarnCat(aeroki.CatConfig, "%v (using defaults)", loadErr)
	}
	effective := settings.Clone()
	applied, err := effective.ApplyEnv(EnvFiles()...)
	if err != nil {
		boot.WarnCat(aeroki.CatConfig, "%v", err)
	}
	opts.Apply(effective)

	cfg := effective.LauncherConfig()
	launcher := aeroki.New(cfg)
	logger := launcher.Logger()
	if len(applied) > 0 {
		logger.DebugCat(aeroki.CatConfig, "environment overrides: %v", applied)
	}
	logger.DebugCat(aeroki.CatConfig, "settings loaded from %s", path)

	return &Startup{
		Options:      opts,
		SettingsPath: path,
		Settings:     settings,
		Effective:    effective,
		Config:       NewConfigHelper(effective),
		Launcher:     launcher,
		Logger:       logger,
		loadErr:      loadErr,
	}, nil
}

// EnvFiles lists the .env files consulted at startup: next to the program,
// then in the working directory.
func EnvFiles() []string {
	var files []string
	if exe, err := os.Executable(); err == nil {
		files = append(files, filepath.Join(filepath.Dir(exe), ".env"))
	}
	if cwd, err := os.Getwd(); err == nil {
		files = append(files, filepath.Join(cwd, ".env"))
	}
	return files
}

// SaveSettings writes the file-backed settings back, logging rather than
// failing. A file that could not be loaded is left untouched.
func (s *Startup) SaveSettings() {
	if s.loadErr != nil {
		s.Logger.WarnCat(aeroki.CatConfig, "not saving settings to %s: %v", s.SettingsPath, s.loadErr)
		return
	}
	if err := s.Settings.Save(s.SettingsPath); err != nil {
		s.Logger.WarnCat(aeroki.CatConfig, "%v", err)
	}
}

// InitialDocument opens the first file argument, or returns an empty document.
func (s *Startup) InitialDocument() *aeroki.Document {
	if len(s.Options.Files) == 0 {
		return aeroki.NewDocument()
	}
	doc, err := aeroki.OpenDocument(s.Options.Files[0])
	if err != nil {
		s.Logger.ErrorCat(aeroki.CatEditor, "%v", err)
		return aeroki.NewDocument()
	}
	return doc
}
