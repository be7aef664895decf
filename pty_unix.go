//go:build !windows

package aeroki

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

const ptySupported = true

// configureProcessGroup makes cancellation kill the child's whole process
// group, so helpers it spawned cannot keep the output pipes open. A pty
// child is already a session leader and therefore its own group.
func configureProcessGroup(cmd *exec.Cmd, onPTY bool) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	if !onPTY {
		cmd.SysProcAttr.Setpgid = true
	}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
}

// startPTY runs cmd on a fresh pseudo-terminal. The child sees a tty, so the
// C runtime flushes prompts that end without a newline. Echo is switched off
// so answers typed into dialogs are not repeated in the transcript.
func startPTY(cmd *exec.Cmd, logger *Logger) (*os.File, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, err
	}
	defer tty.Close()

	if _, err := term.MakeRaw(int(tty.Fd())); err != nil {
		logger.DebugCat(CatProcess, "pty raw mode unavailable: %v", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 120}); err != nil {
		logger.DebugCat(CatProcess, "pty resize failed: %v", err)
	}

	cmd.Stdin = tty
	cmd.Stdout = tty
	cmd.Stderr = tty
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
	cmd.SysProcAttr.Setctty = true
	configureProcessGroup(cmd, true)

	if err := cmd.Start(); err != nil {
		ptmx.Close()
		return nil, err
	}
	return ptmx, nil
}
