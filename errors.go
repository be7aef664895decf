package aeroki

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCompilerNotFound is returned when no aeroki executable can be located.
	ErrCompilerNotFound = errors.New("aeroki compiler not found")

	// ErrPermissionDenied is returned when the source cannot be staged.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNoPath is returned by Document.Save on an untitled document.
	ErrNoPath = errors.New("document has no file path")

	// ErrEmptyFunctionName and ErrEmptyFunctionBody carry the messages shown
	// to the user by the function creator.
	ErrEmptyFunctionName = errors.New("กรุณาใส่ชื่อฟังก์ชัน")
	ErrEmptyFunctionBody = errors.New("ไม่มีโค้ดในฟังก์ชัน")

	// ErrSessionRunning is returned by Run when KillPrevious is off and a
	// session is still alive.
	ErrSessionRunning = errors.New("a program is already running")

	// ErrNotFunctionFile is returned when a file lacks the function header/footer.
	ErrNotFunctionFile = errors.New("not an aeroki function file")
)

// CompilerError reports where the launcher looked for the compiler.
type CompilerError struct {
	Binary string
	Tried  []string
	Err    error
}

func (e *CompilerError) Error() string {
	if len(e.Tried) == 0 {
		return fmt.Sprintf("%s: %v", e.Binary, e.Err)
	}
	return fmt.Sprintf("%s: %v (searched %s)", e.Binary, e.Err, strings.Join(e.Tried, ", "))
}

func (e *CompilerError) Unwrap() error { return e.Err }

// UserMessage is the text shown in the output area.
func (e *CompilerError) UserMessage() string {
	return fmt.Sprintf("Aeroki compiler not found!\nMake sure '%s' exists in the same folder.", e.Binary)
}

// StageError is returned when the temporary source file cannot be written.
type StageError struct {
	Path string
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// UserMessage is the text shown in the output area.
func (e *StageError) UserMessage() string {
	if errors.Is(e.Err, ErrPermissionDenied) {
		return fmt.Sprintf("Permission denied when writing to: %s", e.Path)
	}
	return fmt.Sprintf("Could not write %s: %v", e.Path, e.Err)
}

// UserMessage returns the text a front-end should display for err.
func UserMessage(err error) string {
	var ce *CompilerError
	if errors.As(err, &ce) {
		return ce.UserMessage()
	}
	var se *StageError
	if errors.As(err, &se) {
		return se.UserMessage()
	}
	return err.Error()
}
