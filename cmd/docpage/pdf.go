package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	docpage "github.com/alnah/go-docpage"
	"github.com/alnah/go-docpage/internal/config"
	"github.com/alnah/go-docpage/internal/fileutil"
)

func runPDF(ctx context.Context, args []string, env *Environment) error {
	flags, err := parsePDFFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printPDFUsage(env.Stdout)
		return err
	}
	if err != nil {
		return err
	}

	loaded, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	cfg := loaded.cfg
	applyRenderFlags(&flags.render, cfg)
	if err := applyPageFlags(&flags.page, cfg); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, &flags.common)
	res, err := renderPage(ctx, cfg, logger)
	if err != nil {
		return err
	}

	page := buildPageSettings(cfg)
	if err := page.Validate(); err != nil {
		return err
	}

	opts := []docpage.PDFOption{docpage.WithPDFLogger(logger)}
	if cfg.PDF.Timeout > 0 {
		opts = append(opts, docpage.WithPDFTimeout(cfg.PDF.Timeout))
	}
	exporter := docpage.NewPDFExporter(opts...)
	defer func() { _ = exporter.Close() }()

	pdf, err := exporter.Export(ctx, docpage.PDFInput{
		HTML:    res.HTML,
		Page:    page,
		BaseURL: cfg.PDF.BaseURL,
	})
	if err != nil {
		return err
	}

	if err := fileutil.WriteOutput(flags.output, pdf); err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "wrote %s (%d bytes)\n", flags.output, len(pdf))
	}
	return nil
}

// applyPageFlags overrides PDF settings with flags.
func applyPageFlags(f *pageFlags, cfg *config.Config) error {
	override(&cfg.PDF.Size, f.size)
	override(&cfg.PDF.Orientation, f.orientation)
	override(&cfg.PDF.BaseURL, f.baseURL)
	if f.margin != 0 {
		cfg.PDF.Margin = f.margin
	}
	timeout, err := parseTimeout(f.timeout)
	if err != nil {
		return err
	}
	if timeout > 0 {
		cfg.PDF.Timeout = timeout
	}
	return nil
}
