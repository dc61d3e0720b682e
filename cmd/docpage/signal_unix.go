//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop serve and abort an export in progress.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
