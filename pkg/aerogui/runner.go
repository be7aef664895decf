package aerogui

import (
	"context"
	"sync"

	"github.com/aeroki-lang/aerokiide"
)

// PromptAsker obtains a value for a prompt from the user. Implementations show
// a dialog on the GUI thread and block until it is answered or ctx is done.
type PromptAsker interface {
	AskInput(ctx context.Context, p aeroki.Prompt) (string, bool)
}

// PromptFunc adapts a function to PromptAsker.
type PromptFunc func(ctx context.Context, p aeroki.Prompt) (string, bool)

func (f PromptFunc) AskInput(ctx context.Context, p aeroki.Prompt) (string, bool) {
	return f(ctx, p)
}

// ProgramRunner connects a launcher to a console and a prompt dialog.
type ProgramRunner struct {
	launcher *aeroki.Launcher
	console  *Console
	asker    PromptAsker
	logger   *aeroki.Logger
	echo     bool

	mu      sync.Mutex
	session *aeroki.Session

	// Callbacks, invoked from relay goroutines
	OnRunStart func(s *aeroki.Session)
	OnRunEnd   func(status aeroki.ExitStatus)
}

// ProgramRunnerOptions configures the ProgramRunner.
type ProgramRunnerOptions struct {
	Launcher *aeroki.Launcher
	Console  *Console
	Asker    PromptAsker
	// EchoInput writes answers to the console, since neither pipes nor the
	// raw pty echo them back.
	EchoInput bool
}

// NewProgramRunner creates a new ProgramRunner.
func NewProgramRunner(opts ProgramRunnerOptions) *ProgramRunner {
	if opts.Launcher == nil {
		opts.Launcher = aeroki.New(nil)
	}
	return &ProgramRunner{
		launcher: opts.Launcher,
		console:  opts.Console,
		asker:    opts.Asker,
		logger:   opts.Launcher.Logger(),
		echo:     opts.EchoInput,
	}
}

// Launcher returns the underlying launcher.
func (r *ProgramRunner) Launcher() *aeroki.Launcher { return r.launcher }

// Running reports whether a program is currently executing.
func (r *ProgramRunner) Running() bool {
	r.mu.Lock()
	s := r.session
	r.mu.Unlock()
	return s != nil && s.Running()
}

// Run clears the console and executes the document's current text. The
// program runs in the background; Run returns once it has started. Startup
// failures are written to the console and returned.
func (r *ProgramRunner) Run(ctx context.Context, doc *aeroki.Document) (*aeroki.Session, error) {
	// Stop first so the old program's trailer lands before the clear.
	r.launcher.Stop()
	r.console.Clear()

	req := aeroki.RunRequest{
		Source:  doc.Text(),
		WorkDir: doc.Dir(),
	}
	s, err := r.launcher.Run(ctx, req, &runHandler{runner: r})
	if err != nil {
		r.console.Write(aeroki.UserMessage(err) + "\n")
		return nil, err
	}

	r.mu.Lock()
	r.session = s
	r.mu.Unlock()
	r.logger.DebugCat(aeroki.CatGUI, "running %s as session %s", doc.Title(), s.ID())

	if r.OnRunStart != nil {
		r.OnRunStart(s)
	}
	return s, nil
}

// Stop terminates the running program, if any.
func (r *ProgramRunner) Stop() {
	r.launcher.Stop()
}

// runHandler routes session events to the runner's console and asker.
type runHandler struct {
	runner *ProgramRunner
}

func (h *runHandler) Output(stream aeroki.Stream, text string) {
	h.runner.console.Write(text)
}

func (h *runHandler) Prompt(ctx context.Context, p aeroki.Prompt) (string, bool) {
	r := h.runner
	// Everything printed before the prompt must be visible behind the dialog.
	r.console.Flush()
	if r.asker == nil {
		return "", false
	}
	answer, ok := r.asker.AskInput(ctx, p)
	if ok && r.echo && ctx.Err() == nil {
		r.console.Write(answer + "\n")
	}
	return answer, ok
}

func (h *runHandler) Exit(status aeroki.ExitStatus) {
	r := h.runner
	if status.Err != nil {
		r.console.Write("\n" + status.Err.Error())
	}
	r.console.Write(status.Message())
	r.console.Flush()
	if r.OnRunEnd != nil {
		r.OnRunEnd(status)
	}
}
