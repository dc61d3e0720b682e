package main

import (
	"fmt"
	"io"

	"github.com/alnah/go-docpage/internal/config"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpage <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Write the documentation page as HTML")
	fmt.Fprintln(w, "  pdf        Print the documentation page to PDF")
	fmt.Fprintln(w, "  serve      Serve the page over HTTP, optionally re-rendering on change")
	fmt.Fprintln(w, "  catalog    Show the built-in content catalog")
	fmt.Fprintln(w, "  doctor     Check browser, config and assets")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docpage help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Config:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed logs")
}

func printRenderFlags(w io.Writer) {
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <name|path>     Style name or CSS file")
	fmt.Fprintln(w, "      --asset-path <dir>      Override styles/, templates/, glyphs/")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style for snippets (default github)")
	fmt.Fprintln(w, "      --no-highlight          Disable syntax highlighting")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpage render [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the documentation page as a standalone HTML file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file, - for stdout (default index.html)")
	fmt.Fprintln(w)
	printRenderFlags(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printPDFUsage prints usage for the pdf command.
func printPDFUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpage pdf [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the documentation page to PDF with headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file (default docpage.pdf)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>            Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --base-url <url|dir>    Base for relative links and images")
	fmt.Fprintln(w)
	printRenderFlags(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpage serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the rendered page over HTTP. GET / returns the page,")
	fmt.Fprintln(w, "GET /healthz reports readiness.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>      Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "  -w, --watch                 Re-render when config or assets change")
	fmt.Fprintln(w)
	printRenderFlags(w)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printCatalogUsage prints usage for the catalog command.
func printCatalogUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpage catalog [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the built-in features, snippets, steps and architecture asset.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --section <s>           features, snippets, steps or architecture")
	fmt.Fprintln(w, "  -f, --format <s>            yaml (default) or text")
	fmt.Fprintln(w, "      --no-color              Disable colored text output")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docpage doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, config, assets and the temp directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                  Print results as JSON")
	fmt.Fprintln(w, "      --no-color              Disable colored output")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printConfigHelp prints where configs are searched and which variables apply.
func printConfigHelp(w io.Writer) {
	fmt.Fprintln(w, "Without --config, docpage looks for:")
	for _, p := range config.SearchPaths(defaultConfigName) {
		fmt.Fprintf(w, "  %s\n", p)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment (flags > env > config file > defaults):")
	fmt.Fprintln(w, "  DOCPAGE_CONFIG, DOCPAGE_STYLE, DOCPAGE_HIGHLIGHT_STYLE, DOCPAGE_ASSET_PATH,")
	fmt.Fprintln(w, "  DOCPAGE_TIMEOUT, DOCPAGE_PAGE_SIZE, DOCPAGE_BASE_URL, DOCPAGE_ADDR")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	if !isCommand(args[0]) && args[0] != "config" {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "pdf":
		printPDFUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "catalog":
		printCatalogUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigHelp(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docpage version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docpage help [command|config]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command, or config lookup rules.")
	}
	return nil
}
