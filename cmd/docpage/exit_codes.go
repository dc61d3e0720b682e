package main

import (
	"context"
	"errors"
	"os"

	docpage "github.com/alnah/go-docpage"
	"github.com/alnah/go-docpage/internal/config"
	"github.com/alnah/go-docpage/internal/fileutil"
	"github.com/alnah/go-docpage/internal/server"
)

// Exit codes for the docpage CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, content or assets
	ExitIO      = 3 // File not found, permission denied, address in use
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, docpage.ErrBrowserConnect) ||
		errors.Is(err, docpage.ErrPageCreate) ||
		errors.Is(err, docpage.ErrPageLoad) ||
		errors.Is(err, docpage.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrOutputDirectory) ||
		errors.Is(err, fileutil.ErrOutputWrite) ||
		errors.Is(err, server.ErrListen) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, docpage.ErrConfigurationFault) ||
		errors.Is(err, docpage.ErrInvalidPageSize) ||
		errors.Is(err, docpage.ErrInvalidOrientation) ||
		errors.Is(err, docpage.ErrInvalidMargin) ||
		errors.Is(err, docpage.ErrStyleNotFound) ||
		errors.Is(err, docpage.ErrTemplateNotFound) ||
		errors.Is(err, docpage.ErrTemplateParse) ||
		errors.Is(err, docpage.ErrInvalidAssetPath) ||
		errors.Is(err, docpage.ErrUnknownCodeStyle) {
		return ExitUsage
	}

	return ExitGeneral
}
