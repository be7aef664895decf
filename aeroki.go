// Package aeroki runs programs written in the Aeroki language through the
// external aeroki compiler and relays their console I/O to a front-end.
//
// The compiler itself is an opaque executable found next to the front-end.
// A run stages the editor contents in a temporary .aero file, starts the
// compiler on it, streams the child's output to a Handler and answers the
// compiler's input prompts ("กรอกค่า x:") with values the Handler supplies.
package aeroki

import (
	"context"
	"sync"
	"time"
)

// Launcher starts sessions. At most one session is tracked as current.
type Launcher struct {
	config *Config
	logger *Logger

	// launch serialises Run from kill-previous through tracking the new session.
	launch sync.Mutex

	mu      sync.Mutex
	current *Session
}

// New creates a launcher with the given config
func New(config *Config) *Launcher {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	cfg.fill()

	return &Launcher{
		config: &cfg,
		logger: cfg.Logger,
	}
}

// Config returns the effective configuration.
func (l *Launcher) Config() Config { return *l.config }

// Logger returns the launcher's logger.
func (l *Launcher) Logger() *Logger { return l.logger }

// Current returns the most recently started session, or nil.
func (l *Launcher) Current() *Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Locate resolves the compiler path without running anything.
func (l *Launcher) Locate() (string, error) {
	return LocateCompiler(l.config)
}

// Run stages req.Source and starts the compiler on it. Events are delivered
// to h until h.Exit is called. Errors returned here mean nothing was started
// and the staged file, if any, has already been removed.
func (l *Launcher) Run(ctx context.Context, req RunRequest, h Handler) (*Session, error) {
	if h == nil {
		h = HandlerFuncs{}
	}

	l.launch.Lock()
	defer l.launch.Unlock()

	if prev := l.Current(); prev != nil && prev.Running() {
		if !l.config.KillPrevious {
			return nil, ErrSessionRunning
		}
		l.logger.DebugCat(CatProcess, "terminating previous session %s", prev.ID())
		prev.Kill()
		prev.Wait()
	}

	answers, err := newAnswerEncoder(l.config.OutputEncoding)
	if err != nil {
		return nil, err
	}

	compiler, err := LocateCompiler(l.config)
	if err != nil {
		l.logger.WarnCat(CatProcess, "%v", err)
		return nil, err
	}

	staged, err := StageSource(l.config.TempDir, req.Source)
	if err != nil {
		l.logger.ErrorCat(CatIO, "%v", err)
		return nil, err
	}

	dir := req.WorkDir
	if dir == "" {
		dir = l.config.TempDir
	}

	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		id:       newSessionID(),
		staged:   staged,
		handler:  h,
		logger:   l.logger,
		detector: NewPromptDetector(l.config.PromptMarker, l.config.PromptTerminator),
		answers:  answers,
		encoding: l.config.OutputEncoding,
		ctx:      sctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	args := append([]string{staged.Path}, req.Args...)
	if err := s.start(compiler, args, dir, l.config.UsePTY); err != nil {
		cancel()
		staged.Remove()
		l.logger.ErrorCat(CatProcess, "start %s: %v", compiler, err)
		return nil, err
	}

	s.started = time.Now()
	s.running = true
	l.logger.DebugCat(CatProcess, "session %s started %s %s (pid %d, pty=%v)",
		s.id, compiler, staged.Path, s.cmd.Process.Pid, s.PTY())

	l.mu.Lock()
	l.current = s
	l.mu.Unlock()

	s.relay()
	return s, nil
}

// Stop kills the current session, if any, and waits for it to end.
func (l *Launcher) Stop() {
	if s := l.Current(); s != nil && s.Running() {
		s.Kill()
		s.Wait()
	}
}
