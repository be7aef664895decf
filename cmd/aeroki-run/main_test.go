package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroki-lang/aerokiide"
)

func TestSplitArgs(t *testing.T) {
	files, args := splitArgs([]string{"a.aero", "--", "x", "y"})
	assert.Equal(t, []string{"a.aero"}, files)
	assert.Equal(t, []string{"x", "y"}, args)

	files, args = splitArgs([]string{"a.aero", "x"})
	assert.Equal(t, []string{"a.aero", "x"}, files)
	assert.Nil(t, args)
}

func TestFindSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.aero")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.Equal(t, path, findSourceFile(path))
	assert.Equal(t, path, findSourceFile(filepath.Join(dir, "hello")))
	assert.Empty(t, findSourceFile(filepath.Join(dir, "missing")))
	assert.Empty(t, findSourceFile(dir))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 3, exitCode(aeroki.ExitStatus{Code: 3}))
	assert.Equal(t, 130, exitCode(aeroki.ExitStatus{Killed: true, Code: -1}))
	assert.Equal(t, 1, exitCode(aeroki.ExitStatus{Err: assert.AnError}))
}

func TestLineSource(t *testing.T) {
	s := newLineSource(strings.NewReader("42\r\nhello\n"))
	ctx := context.Background()

	line, ok := s.Next(ctx)
	assert.True(t, ok)
	assert.Equal(t, "42", line)
	line, ok = s.Next(ctx)
	assert.True(t, ok)
	assert.Equal(t, "hello", line)
	_, ok = s.Next(ctx)
	assert.False(t, ok)
}

func TestLineSourceCancelled(t *testing.T) {
	s := newLineSource(blockingReader{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := s.Next(ctx)
	assert.False(t, ok)
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) { select {} }

func TestTerminalHandler(t *testing.T) {
	var out, errOut bytes.Buffer
	h := &terminalHandler{
		stdout:  &out,
		stderr:  &errOut,
		answers: newLineSource(strings.NewReader("7\n")),
		echo:    true,
	}

	h.Output(aeroki.StreamStdout, "กรอกค่า n:")
	answer, ok := h.Prompt(context.Background(), aeroki.Prompt{Variable: "n"})
	require.True(t, ok)
	assert.Equal(t, "7", answer)
	h.Output(aeroki.StreamStderr, "warn\n")
	h.Exit(aeroki.ExitStatus{Killed: true})

	assert.Equal(t, "กรอกค่า n:7\n", out.String())
	assert.Equal(t, "warn\n[Process terminated]\n", errOut.String())
}
