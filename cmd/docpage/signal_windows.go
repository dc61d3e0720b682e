//go:build windows

package main

import "os"

// shutdownSignals stop serve and abort an export in progress.
// SIGTERM is not delivered on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
