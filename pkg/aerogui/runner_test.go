//go:build !windows

package aerogui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aeroki-lang/aerokiide"
)

func stubLauncher(t *testing.T, script string) *aeroki.Launcher {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, aeroki.CompilerBinaryName())
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))

	cfg := aeroki.DefaultConfig()
	cfg.CompilerPath = path
	cfg.TempDir = t.TempDir()
	cfg.UsePTY = false
	cfg.Logger = aeroki.NewLogger(false)
	cfg.Logger.SetOutput(&strings.Builder{}, &strings.Builder{})
	return aeroki.New(cfg)
}

func TestProgramRunnerRun(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	term := &fakeTerminal{}
	console := NewConsole(ConsoleOptions{Terminal: term})
	defer console.Close()

	var asked []aeroki.Prompt
	runner := NewProgramRunner(ProgramRunnerOptions{
		Launcher: stubLauncher(t, "printf 'กรอกค่า n:'\nread n\necho \"got $n\"\nexit 2\n"),
		Console:  console,
		Asker: PromptFunc(func(ctx context.Context, p aeroki.Prompt) (string, bool) {
			asked = append(asked, p)
			return "42", true
		}),
		EchoInput: true,
	})

	ended := make(chan aeroki.ExitStatus, 1)
	started := false
	runner.OnRunStart = func(*aeroki.Session) { started = true }
	runner.OnRunEnd = func(s aeroki.ExitStatus) { ended <- s }

	doc := aeroki.NewDocument()
	doc.SetText("program")
	term.Feed("stale output")

	s, err := runner.Run(context.Background(), doc)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, started)

	select {
	case status := <-ended:
		assert.Equal(t, 2, status.Code)
	case <-time.After(10 * time.Second):
		t.Fatal("program did not finish")
	}
	assert.False(t, runner.Running())

	console.Flush()
	assert.Equal(t, "กรอกค่า n:42\ngot 42\n\n[Process exited with 2]\n", term.String())
	require.Len(t, asked, 1)
	assert.Equal(t, "n", asked[0].Variable)
}

func TestProgramRunnerCompilerMissing(t *testing.T) {
	term := &fakeTerminal{}
	console := NewConsole(ConsoleOptions{Terminal: term})
	defer console.Close()

	cfg := aeroki.DefaultConfig()
	cfg.CompilerPath = filepath.Join(t.TempDir(), "missing")
	cfg.TempDir = t.TempDir()
	cfg.Logger = aeroki.NewLogger(false)
	cfg.Logger.SetOutput(&strings.Builder{}, &strings.Builder{})
	runner := NewProgramRunner(ProgramRunnerOptions{Launcher: aeroki.New(cfg), Console: console})

	_, err := runner.Run(context.Background(), aeroki.NewDocument())
	require.ErrorIs(t, err, aeroki.ErrCompilerNotFound)

	console.Flush()
	out := term.String()
	assert.True(t, strings.HasPrefix(out, "Aeroki compiler not found!\nMake sure '"), out)
	assert.True(t, strings.HasSuffix(out, "missing' exists in the same folder.\n"), out)
}

func TestProgramRunnerStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	term := &fakeTerminal{}
	console := NewConsole(ConsoleOptions{Terminal: term})
	defer console.Close()

	runner := NewProgramRunner(ProgramRunnerOptions{
		Launcher: stubLauncher(t, "exec sleep 30\n"),
		Console:  console,
	})
	s, err := runner.Run(context.Background(), aeroki.NewDocument())
	require.NoError(t, err)
	assert.True(t, runner.Running())

	runner.Stop()
	assert.True(t, s.Wait().Killed)
	console.Flush()
	assert.Equal(t, "\n[Process terminated]\n", term.String())
}

func TestProgramRunnerNoAsker(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	term := &fakeTerminal{}
	console := NewConsole(ConsoleOptions{Terminal: term})
	defer console.Close()

	runner := NewProgramRunner(ProgramRunnerOptions{
		Launcher: stubLauncher(t, "printf 'กรอกค่า:'\nread v\necho \"[$v]\"\n"),
		Console:  console,
	})
	s, err := runner.Run(context.Background(), aeroki.NewDocument())
	require.NoError(t, err)
	s.Wait()

	console.Flush()
	assert.Contains(t, term.String(), "[]\n")
}

func TestProgramRunnerShowsAllOutputOnSlowTerminal(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	term := &slowTerminal{delay: 20 * time.Millisecond}
	console := NewConsole(ConsoleOptions{Terminal: term})
	defer console.Close()

	runner := NewProgramRunner(ProgramRunnerOptions{
		Launcher: stubLauncher(t, "i=0\nwhile [ $i -lt 400 ]; do echo \"line $i\"; i=$((i+1)); done\n"),
		Console:  console,
	})
	ended := make(chan struct{})
	runner.OnRunEnd = func(aeroki.ExitStatus) { close(ended) }

	_, err := runner.Run(context.Background(), aeroki.NewDocument())
	require.NoError(t, err)
	select {
	case <-ended:
	case <-time.After(30 * time.Second):
		t.Fatal("program did not finish")
	}

	console.Flush()
	out := term.String()
	assert.Equal(t, 400, strings.Count(out, "line "))
	assert.Contains(t, out, "line 0\n")
	assert.Contains(t, out, "line 399\n")
	assert.True(t, strings.HasSuffix(out, "\n[Process exited with 0]\n"))
}
