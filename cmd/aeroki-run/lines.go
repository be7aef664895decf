package main

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// lineSource hands out lines of r one at a time. The reader goroutine starts
// on the first request so a program without prompts never touches stdin.
type lineSource struct {
	r     io.Reader
	once  sync.Once
	lines chan string
}

func newLineSource(r io.Reader) *lineSource {
	return &lineSource{r: r, lines: make(chan string)}
}

func (s *lineSource) read() {
	defer close(s.lines)
	sc := bufio.NewScanner(s.r)
	for sc.Scan() {
		s.lines <- strings.TrimSuffix(sc.Text(), "\r")
	}
}

// Next waits for the next line. ok is false at EOF or when ctx is done.
func (s *lineSource) Next(ctx context.Context) (string, bool) {
	s.once.Do(func() { go s.read() })
	select {
	case line, ok := <-s.lines:
		return line, ok
	case <-ctx.Done():
		return "", false
	}
}
