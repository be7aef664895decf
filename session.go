package aeroki

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// flushThreshold bounds how much output is held back before it reaches the handler.
const flushThreshold = 4096

// waitDelay bounds how long Wait lingers on pipes held open by grandchildren.
const waitDelay = 2 * time.Second

// Session is one run of the aeroki compiler on a staged source file.
type Session struct {
	id       string
	cmd      *exec.Cmd
	staged   *StagedFile
	handler  Handler
	logger   *Logger
	detector *PromptDetector
	answers  *answerEncoder
	encoding string

	ctx    context.Context
	cancel context.CancelFunc

	stdin  io.Writer
	stdout io.Reader
	stderr io.Reader // nil in pty mode
	ptmx   *os.File  // non-nil in pty mode

	started time.Time
	done    chan struct{}

	mu      sync.Mutex
	running bool
	killed  bool
	status  ExitStatus
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// StagedPath returns the path of the temporary source handed to the compiler.
func (s *Session) StagedPath() string { return s.staged.Path }

// PTY reports whether the child runs on a pseudo-terminal.
func (s *Session) PTY() bool { return s.ptmx != nil }

// Running reports whether the child process has not yet been reaped.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Kill terminates the child. Pending prompts see their context cancelled.
func (s *Session) Kill() {
	s.mu.Lock()
	if s.running {
		s.killed = true
	}
	s.mu.Unlock()
	s.cancel()
}

// Done is closed after the session's Exit event has been delivered.
func (s *Session) Done() <-chan struct{} { return s.done }

// Wait blocks until the session ends and returns its exit status.
func (s *Session) Wait() ExitStatus {
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// newCommand builds the child command. Called again for the pipe fallback
// because an exec.Cmd cannot be restarted after a failed Start.
func (s *Session) newCommand(compiler string, args []string, dir string) *exec.Cmd {
	cmd := exec.CommandContext(s.ctx, compiler, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	cmd.Env = os.Environ()
	return cmd
}

// start launches the child, on a pty when requested and possible.
func (s *Session) start(compiler string, args []string, dir string, usePTY bool) error {
	if usePTY && ptySupported {
		cmd := s.newCommand(compiler, args, dir)
		ptmx, err := startPTY(cmd, s.logger)
		if err == nil {
			s.cmd = cmd
			s.ptmx = ptmx
			s.stdin = ptmx
			s.stdout = ptmx
			return nil
		}
		if isStartError(err) {
			return err
		}
		s.logger.WarnCat(CatProcess, "pty unavailable, falling back to pipes: %v", err)
	}

	cmd := s.newCommand(compiler, args, dir)
	configureProcessGroup(cmd, false)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	s.cmd = cmd
	s.stdin = stdin
	s.stdout = stdout
	s.stderr = stderr
	return nil
}

// isStartError distinguishes a child that cannot be executed from a pty
// that cannot be allocated.
func isStartError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) ||
			errors.Is(err, syscall.ENOEXEC)
	}
	var execErr *exec.Error
	return errors.As(err, &execErr)
}

// relay runs the readers and the waiter. It returns immediately.
func (s *Session) relay() {
	var g errgroup.Group

	out, err := NewOutputDecoder(s.stdout, s.encoding)
	if err != nil {
		// Validated in Run; keep the raw stream rather than lose output.
		out = s.stdout
	}
	g.Go(func() error { return s.readStdout(out) })
	if s.stderr != nil {
		errStream, err := NewOutputDecoder(s.stderr, s.encoding)
		if err != nil {
			errStream = s.stderr
		}
		g.Go(func() error { return s.readStderr(errStream) })
	}

	go func() {
		readErr := g.Wait()
		if readErr != nil {
			s.logger.DebugCat(CatProcess, "session %s read: %v", s.id, readErr)
		}
		waitErr := s.cmd.Wait()
		if s.ptmx != nil {
			s.ptmx.Close()
		}
		s.finish(waitErr)
	}()
}

func (s *Session) finish(waitErr error) {
	if err := s.staged.Remove(); err != nil {
		s.logger.WarnCat(CatIO, "could not remove %s: %v", s.staged.Path, err)
	}

	s.mu.Lock()
	status := ExitStatus{Killed: s.killed, Duration: time.Since(s.started)}
	s.mu.Unlock()

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		status.Code = 0
	case errors.As(waitErr, &exitErr):
		status.Code = exitErr.ExitCode()
	default:
		status.Code = -1
		if !status.Killed {
			status.Err = waitErr
		}
	}
	if status.Killed && status.Code == 0 {
		status.Code = -1
	}

	s.logger.DebugCat(CatProcess, "session %s exited code=%d killed=%v after %s",
		s.id, status.Code, status.Killed, status.Duration.Round(time.Millisecond))

	s.mu.Lock()
	s.running = false
	s.status = status
	s.mu.Unlock()

	s.cancel()
	s.handler.Exit(status)
	close(s.done)
}

// readStdout forwards output in chunks and answers prompts as they appear.
func (s *Session) readStdout(r io.Reader) error {
	br := bufio.NewReader(r)
	var pending strings.Builder

	flush := func() {
		if pending.Len() > 0 {
			s.handler.Output(StreamStdout, pending.String())
			pending.Reset()
		}
	}

	for {
		ch, _, err := br.ReadRune()
		if err != nil {
			flush()
			if isEndOfOutput(err) {
				return nil
			}
			return err
		}
		pending.WriteRune(ch)

		if prompt, ok := s.detector.Feed(ch); ok {
			flush()
			s.answer(prompt)
			continue
		}
		if br.Buffered() == 0 || pending.Len() >= flushThreshold {
			flush()
		}
	}
}

func (s *Session) answer(prompt Prompt) {
	s.logger.DebugCat(CatPrompt, "session %s prompt %q", s.id, prompt.Text)

	answer, ok := s.handler.Prompt(s.ctx, prompt)
	if !ok {
		answer = ""
	}
	// Only the first line is sent; the child reads a single value.
	if i := strings.IndexAny(answer, "\r\n"); i >= 0 {
		answer = answer[:i]
	}

	if _, err := io.WriteString(s.stdin, s.answers.encode(answer)+"\n"); err != nil {
		// The child may have exited while the user was typing.
		s.logger.DebugCat(CatPrompt, "session %s answer not delivered: %v", s.id, err)
	}
}

// readStderr forwards stderr line by line.
func (s *Session) readStderr(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			s.handler.Output(StreamStderr, line)
		}
		if err != nil {
			if isEndOfOutput(err) {
				return nil
			}
			return err
		}
	}
}

// isEndOfOutput treats the errors a closed pipe or pty master produce as EOF.
func isEndOfOutput(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
		return true
	}
	// Linux reports EIO on the master once the last slave descriptor closes.
	return errors.Is(err, syscall.EIO)
}

func newSessionID() string { return uuid.NewString() }
