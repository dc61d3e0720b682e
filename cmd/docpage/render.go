package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docpage/internal/fileutil"
)

// stdoutPath selects standard output as the render target.
const stdoutPath = "-"

func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseRenderFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printRenderUsage(env.Stdout)
		return err
	}
	if err != nil {
		return err
	}

	loaded, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	applyRenderFlags(&flags.render, loaded.cfg)

	logger := newLogger(env.Stderr, &flags.common)
	res, err := renderPage(ctx, loaded.cfg, logger)
	if err != nil {
		return err
	}

	if flags.output == stdoutPath {
		_, err := io.WriteString(env.Stdout, res.HTML)
		return err
	}

	if err := fileutil.WriteOutput(flags.output, []byte(res.HTML)); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "wrote %s (%d bytes", flags.output, len(res.HTML))
		if n := len(res.Page.Misses); n > 0 {
			fmt.Fprintf(env.Stdout, ", %d placeholder(s)", n)
		}
		fmt.Fprintln(env.Stdout, ")")
	}
	return nil
}
