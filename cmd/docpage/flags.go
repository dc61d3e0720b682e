package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds flags that shape the HTML page.
type renderFlags struct {
	style          string
	assetPath      string
	highlightStyle string
	noHighlight    bool
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
	timeout     string
	baseURL     string
}

// renderCmdFlags holds all flags for the render command.
type renderCmdFlags struct {
	common commonFlags
	render renderFlags
	output string
}

// pdfCmdFlags holds all flags for the pdf command.
type pdfCmdFlags struct {
	common commonFlags
	render renderFlags
	page   pageFlags
	output string
}

// serveCmdFlags holds all flags for the serve command.
type serveCmdFlags struct {
	common commonFlags
	render renderFlags
	addr   string
	watch  bool
}

// catalogCmdFlags holds all flags for the catalog command.
type catalogCmdFlags struct {
	section string
	format  string
	noColor bool
}

// doctorCmdFlags holds all flags for the doctor command.
type doctorCmdFlags struct {
	common  commonFlags
	json    bool
	noColor bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed logs")
}

// addRenderFlags adds page styling flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "style name or CSS file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding styles, templates and glyphs")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "Chroma style for code snippets")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")
}

// addPageFlags adds PDF page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "margin in inches (0.25-3.0)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.baseURL, "base-url", "", "base URL or directory for relative links and images")
}

// newFlagSet returns a FlagSet that reports errors to the caller only.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parse runs fs over args. A help request is returned as flag.ErrHelp,
// other failures wrap ErrUsage. Extra positional arguments are rejected.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

func parseRenderFlags(args []string) (*renderCmdFlags, error) {
	fs := newFlagSet("render")
	f := &renderCmdFlags{}
	fs.StringVarP(&f.output, "output", "o", "index.html", "output HTML file (- for stdout)")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	return f, parse(fs, args)
}

func parsePDFFlags(args []string) (*pdfCmdFlags, error) {
	fs := newFlagSet("pdf")
	f := &pdfCmdFlags{}
	fs.StringVarP(&f.output, "output", "o", "docpage.pdf", "output PDF file")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addPageFlags(fs, &f.page)
	return f, parse(fs, args)
}

func parseServeFlags(args []string) (*serveCmdFlags, error) {
	fs := newFlagSet("serve")
	f := &serveCmdFlags{}
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default 127.0.0.1:8080)")
	fs.BoolVarP(&f.watch, "watch", "w", false, "re-render when the config or asset directory changes")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	return f, parse(fs, args)
}

func parseCatalogFlags(args []string) (*catalogCmdFlags, error) {
	fs := newFlagSet("catalog")
	f := &catalogCmdFlags{}
	fs.StringVar(&f.section, "section", "", "only this part: features, snippets, steps, architecture")
	fs.StringVarP(&f.format, "format", "f", "yaml", "output format: yaml, text")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored text output")
	return f, parse(fs, args)
}

func parseDoctorFlags(args []string) (*doctorCmdFlags, error) {
	fs := newFlagSet("doctor")
	f := &doctorCmdFlags{}
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	addCommonFlags(fs, &f.common)
	return f, parse(fs, args)
}

// parseTimeout parses a --timeout value. Empty means unset.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid --timeout %q: %v", ErrUsage, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, s)
	}
	return d, nil
}
