// aeroki-run - runs an Aeroki program in the terminal, answering its prompts
// from standard input
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/aeroki-lang/aerokiide"
	"github.com/aeroki-lang/aerokiide/pkg/aerogui"
)

func errorPrintf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	start, err := aerogui.Start("aeroki-run", argv)
	if err != nil {
		return 2
	}

	fileArgs, progArgs := splitArgs(start.Options.Files)

	var source, workDir string
	stdinIsTTY := term.IsTerminal(int(os.Stdin.Fd()))
	switch {
	case len(fileArgs) > 0:
		path := findSourceFile(fileArgs[0])
		if path == "" {
			errorPrintf("Error: source file not found: %s\n", fileArgs[0])
			return 1
		}
		doc, err := aeroki.OpenDocument(path)
		if err != nil {
			errorPrintf("Error: %v\n", err)
			return 1
		}
		source, workDir = doc.Text(), doc.Dir()
		if len(fileArgs) > 1 {
			progArgs = append(fileArgs[1:], progArgs...)
		}
	case !stdinIsTTY:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			errorPrintf("Error reading from stdin: %v\n", err)
			return 1
		}
		source = string(data)
		workDir, _ = os.Getwd()
	default:
		errorPrintf("Usage: aeroki-run [options] file.aero [args...]\n")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	answers := newLineSource(os.Stdin)
	h := &terminalHandler{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		answers: answers,
		// A typed answer is already on screen; piped ones are not.
		echo: !stdinIsTTY,
	}

	session, err := start.Launcher.Run(ctx, aeroki.RunRequest{Source: source, WorkDir: workDir, Args: progArgs}, h)
	if err != nil {
		errorPrintf("%s\n", aeroki.UserMessage(err))
		return 1
	}
	return exitCode(session.Wait())
}

// splitArgs separates file arguments from program arguments at "--".
func splitArgs(args []string) (files, progArgs []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

// findSourceFile returns path, or path with the source extension added, if
// either exists.
func findSourceFile(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	if filepath.Ext(path) == "" {
		withExt := path + aeroki.SourceExtension
		if _, err := os.Stat(withExt); err == nil {
			return withExt
		}
	}
	return ""
}

func exitCode(status aeroki.ExitStatus) int {
	switch {
	case status.Killed:
		return 130
	case status.Err != nil:
		return 1
	}
	return status.Code
}

// terminalHandler relays a session to the process's own stdio.
type terminalHandler struct {
	stdout  io.Writer
	stderr  io.Writer
	answers *lineSource
	echo    bool
}

func (h *terminalHandler) Output(stream aeroki.Stream, text string) {
	if stream == aeroki.StreamStderr {
		io.WriteString(h.stderr, text)
		return
	}
	io.WriteString(h.stdout, text)
}

func (h *terminalHandler) Prompt(ctx context.Context, p aeroki.Prompt) (string, bool) {
	answer, ok := h.answers.Next(ctx)
	if ok && h.echo {
		io.WriteString(h.stdout, answer+"\n")
	}
	return answer, ok
}

func (h *terminalHandler) Exit(status aeroki.ExitStatus) {
	if status.Err != nil {
		fmt.Fprintf(h.stderr, "%v\n", status.Err)
	}
	if status.Killed {
		io.WriteString(h.stderr, strings.TrimLeft(status.Message(), "\n"))
	}
}
