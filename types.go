package aeroki

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"
)

// Default prompt marker printed by the aeroki runtime before reading a value.
const (
	DefaultPromptMarker     = "กรอกค่า"
	DefaultPromptTerminator = ":"
	DefaultOutputEncoding   = "utf-8"

	// SourceExtension is the extension of aeroki programs.
	SourceExtension = ".aero"
	// FunctionExtension is the extension written by the function creator.
	FunctionExtension = ".aerofunc"
)

// Config holds launcher configuration
type Config struct {
	Debug bool

	// CompilerPath names the aeroki executable explicitly. Empty means locate it.
	CompilerPath string
	// SearchDirs are searched, in order, before the program's own directory.
	SearchDirs []string
	// TempDir receives staged sources. Empty means os.TempDir().
	TempDir string

	PromptMarker     string
	PromptTerminator string
	// OutputEncoding is the charset the child writes ("utf-8", "windows-874", "tis-620").
	OutputEncoding string

	// UsePTY starts the child on a pseudo-terminal where supported.
	UsePTY bool
	// KillPrevious terminates a still running session when Run is called again.
	KillPrevious bool

	Logger *Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		PromptMarker:     DefaultPromptMarker,
		PromptTerminator: DefaultPromptTerminator,
		OutputEncoding:   DefaultOutputEncoding,
		UsePTY:           runtime.GOOS != "windows",
		KillPrevious:     true,
	}
}

// fill replaces zero values with defaults. It never touches boolean fields.
func (c *Config) fill() {
	if c.PromptMarker == "" {
		c.PromptMarker = DefaultPromptMarker
	}
	if c.PromptTerminator == "" {
		c.PromptTerminator = DefaultPromptTerminator
	}
	if c.OutputEncoding == "" {
		c.OutputEncoding = DefaultOutputEncoding
	}
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.Logger == nil {
		c.Logger = NewLogger(c.Debug)
	}
}

// Stream identifies which child stream produced output
type Stream int

const (
	StreamStdout Stream = iota
	StreamStderr
)

func (s Stream) String() string {
	switch s {
	case StreamStdout:
		return "stdout"
	case StreamStderr:
		return "stderr"
	}
	return fmt.Sprintf("stream(%d)", int(s))
}

// Prompt is a request for input detected in the child's output
type Prompt struct {
	// Variable is the name printed between the marker and the terminator.
	Variable string
	// Text is the raw prompt, marker through terminator.
	Text string

	marker string
}

// Label renders the prompt for an input dialog.
func (p Prompt) Label() string {
	marker := p.marker
	if marker == "" {
		marker = DefaultPromptMarker
	}
	if p.Variable != "" {
		return fmt.Sprintf("%s %s:", marker, p.Variable)
	}
	return marker + ":"
}

// ExitStatus describes how a session ended
type ExitStatus struct {
	Code     int
	Killed   bool
	Err      error // set when the process could not be waited on
	Duration time.Duration
}

// Message is the trailer appended to the output area.
func (s ExitStatus) Message() string {
	if s.Killed {
		return "\n[Process terminated]\n"
	}
	return fmt.Sprintf("\n[Process exited with %d]\n", s.Code)
}

// Handler receives the events of a running session. Output and Prompt are
// called from relay goroutines; Prompt blocks the stdout relay until it returns.
type Handler interface {
	Output(stream Stream, text string)
	// Prompt returns the answer to send. ok=false sends an empty line.
	Prompt(ctx context.Context, p Prompt) (answer string, ok bool)
	Exit(status ExitStatus)
}

// HandlerFuncs adapts plain functions to Handler. Nil fields are ignored.
type HandlerFuncs struct {
	OnOutput func(stream Stream, text string)
	OnPrompt func(ctx context.Context, p Prompt) (string, bool)
	OnExit   func(status ExitStatus)
}

func (h HandlerFuncs) Output(stream Stream, text string) {
	if h.OnOutput != nil {
		h.OnOutput(stream, text)
	}
}

func (h HandlerFuncs) Prompt(ctx context.Context, p Prompt) (string, bool) {
	if h.OnPrompt != nil {
		return h.OnPrompt(ctx, p)
	}
	return "", false
}

func (h HandlerFuncs) Exit(status ExitStatus) {
	if h.OnExit != nil {
		h.OnExit(status)
	}
}

// RunRequest describes one Run invocation
type RunRequest struct {
	Source string
	// WorkDir is the child's working directory; usually the document's folder.
	WorkDir string
	// Args are appended after the staged file path.
	Args []string
}
