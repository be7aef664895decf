//go:build !windows

package main

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

func init() {
	// Qt must be driven from the main OS thread.
	runtime.LockOSThread()

	// Cocoa installs handlers without SA_ONSTACK; claim SIGURG before Qt starts.
	if runtime.GOOS == "darwin" {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGURG)
		go func() {
			for range sigCh {
			}
		}()
	}
}
