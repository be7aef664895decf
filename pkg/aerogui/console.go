package aerogui

import (
	"strings"
	"sync"
	"time"
)

// TerminalAdapter provides an abstraction for the different output widgets.
type TerminalAdapter interface {
	// Feed appends text to the display.
	Feed(text string)
}

// Clearer is implemented by adapters that can erase their contents.
type Clearer interface {
	Clear()
}

// GUISync provides GUI thread synchronization.
// For GTK this uses glib.IdleAdd, for Fyne fyne.Do, for Qt a main thread hop.
type GUISync interface {
	// RunOnGUIThread runs a function on the GUI thread.
	// Returns a channel that will be closed when the function completes.
	RunOnGUIThread(fn func()) <-chan struct{}
}

// DirectSync runs functions on the calling goroutine. Used by tests and the
// terminal runner.
type DirectSync struct{}

func (DirectSync) RunOnGUIThread(fn func()) <-chan struct{} {
	done := make(chan struct{})
	fn()
	close(done)
	return done
}

// SyncFunc adapts a toolkit's "run later on the main thread" call to GUISync.
type SyncFunc func(fn func())

func (f SyncFunc) RunOnGUIThread(fn func()) <-chan struct{} {
	done := make(chan struct{})
	f(func() {
		defer close(done)
		fn()
	})
	return done
}

// ConsoleOptions configures console creation.
type ConsoleOptions struct {
	Terminal TerminalAdapter
	GUISync  GUISync // Optional - if nil, uses DirectSync
	// CRLF converts every line ending to \r\n for VT style widgets.
	CRLF         bool
	FlushTimeout time.Duration
}

// Console is a non-blocking output sink. Writes are queued and fed to the
// terminal on the GUI thread by a single goroutine, preserving order. While
// the terminal is busy, consecutive writes are merged into one pending feed,
// so nothing is dropped and the relay never waits on the GUI.
type Console struct {
	terminal TerminalAdapter
	sync     GUISync
	crlf     bool
	timeout  time.Duration

	mu      sync.Mutex
	pending []consoleOp
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

type consoleOp struct {
	text  []byte
	clear bool
	done  chan struct{} // flush sentinel
}

func (op *consoleOp) isText() bool {
	return !op.clear && op.done == nil
}

// NewConsole creates a console and starts its writer goroutine.
func NewConsole(opts ConsoleOptions) *Console {
	if opts.GUISync == nil {
		opts.GUISync = DirectSync{}
	}
	if opts.FlushTimeout <= 0 {
		opts.FlushTimeout = 500 * time.Millisecond
	}

	c := &Console{
		terminal: opts.Terminal,
		sync:     opts.GUISync,
		crlf:     opts.CRLF,
		timeout:  opts.FlushTimeout,
		wake:     make(chan struct{}, 1),
		stopped:  make(chan struct{}),
	}
	go c.writer()
	return c
}

// take swaps out everything queued so far. done is true once the console is
// closed and fully drained.
func (c *Console) take() (ops []consoleOp, done bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ops, c.pending = c.pending, nil
	return ops, c.closed && len(ops) == 0
}

func (c *Console) writer() {
	defer close(c.stopped)
	for {
		ops, done := c.take()
		if done {
			return
		}
		if len(ops) == 0 {
			<-c.wake
			continue
		}
		for _, op := range ops {
			switch {
			case op.done != nil:
				close(op.done)
			case op.clear:
				if cl, ok := c.terminal.(Clearer); ok {
					c.sync.RunOnGUIThread(cl.Clear)
				}
			default:
				text := string(op.text)
				c.sync.RunOnGUIThread(func() { c.terminal.Feed(text) })
			}
		}
	}
}

// Write queues text for display. It never blocks.
func (c *Console) Write(text string) {
	if text == "" {
		return
	}
	if c.crlf {
		// Normalize newlines: \r\n -> \n -> \r\n
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if n := len(c.pending); n > 0 && c.pending[n-1].isText() {
		c.pending[n-1].text = append(c.pending[n-1].text, text...)
		c.mu.Unlock()
		return
	}
	c.pending = append(c.pending, consoleOp{text: []byte(text)})
	c.mu.Unlock()
	c.kick()
}

// Clear queues an erase of the display, ordered after pending writes.
func (c *Console) Clear() {
	c.enqueue(consoleOp{clear: true})
}

func (c *Console) enqueue(op consoleOp) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.pending = append(c.pending, op)
	c.mu.Unlock()
	c.kick()
	return true
}

func (c *Console) kick() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Flush waits for all pending output to be displayed.
func (c *Console) Flush() {
	// Step 1: wait for the writer to reach this point
	writerDone := make(chan struct{})
	if !c.enqueue(consoleOp{done: writerDone}) {
		return
	}
	select {
	case <-writerDone:
	case <-c.stopped:
		return
	}

	// Step 2: wait for the GUI thread to catch up
	done := c.sync.RunOnGUIThread(func() {})
	select {
	case <-done:
	case <-time.After(c.timeout):
	}
}

// Close stops the writer goroutine once queued output is fed. Later writes
// are ignored.
func (c *Console) Close() {
	c.mu.Lock()
	already := c.closed
	c.closed = true
	c.mu.Unlock()
	if !already {
		c.kick()
	}
}
