//go:build windows

package aeroki

import (
	"errors"
	"os"
	"os/exec"
)

const ptySupported = false

func configureProcessGroup(cmd *exec.Cmd, onPTY bool) {}

func startPTY(cmd *exec.Cmd, logger *Logger) (*os.File, error) {
	return nil, errors.New("pseudo-terminals are not supported on windows")
}
