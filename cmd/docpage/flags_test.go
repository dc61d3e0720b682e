package main

import (
	"errors"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
)

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	f, err := parseRenderFlags([]string{"-o", "-", "-s", "plain", "--asset-path", "site", "--no-highlight", "-c", "team", "-v"})
	if err != nil {
		t.Fatalf("parseRenderFlags() error = %v", err)
	}
	if f.output != "-" || f.render.style != "plain" || f.render.assetPath != "site" || !f.render.noHighlight {
		t.Errorf("render flags = %+v", f)
	}
	if f.common.config != "team" || !f.common.verbose {
		t.Errorf("common flags = %+v", f.common)
	}

	f, err = parseRenderFlags(nil)
	if err != nil {
		t.Fatalf("parseRenderFlags(nil) error = %v", err)
	}
	if f.output != "index.html" {
		t.Errorf("default output = %q, want index.html", f.output)
	}
}

func TestParsePDFFlags(t *testing.T) {
	t.Parallel()

	f, err := parsePDFFlags([]string{"-p", "a4", "--orientation", "landscape", "--margin", "1.5", "-t", "1m", "--base-url", "https://x.example"})
	if err != nil {
		t.Fatalf("parsePDFFlags() error = %v", err)
	}
	want := pageFlags{size: "a4", orientation: "landscape", margin: 1.5, timeout: "1m", baseURL: "https://x.example"}
	if f.page != want {
		t.Errorf("page flags = %+v, want %+v", f.page, want)
	}
	if f.output != "docpage.pdf" {
		t.Errorf("default output = %q", f.output)
	}
}

func TestParseServeFlags(t *testing.T) {
	t.Parallel()

	f, err := parseServeFlags([]string{"-a", ":9000", "-w"})
	if err != nil {
		t.Fatalf("parseServeFlags() error = %v", err)
	}
	if f.addr != ":9000" || !f.watch {
		t.Errorf("serve flags = %+v", f)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		parse     func([]string) error
		args      []string
		wantHelp  bool
		wantUsage bool
	}{
		{"help", func(a []string) error { _, err := parseRenderFlags(a); return err }, []string{"-h"}, true, false},
		{"long help", func(a []string) error { _, err := parseDoctorFlags(a); return err }, []string{"--help"}, true, false},
		{"unknown flag", func(a []string) error { _, err := parseRenderFlags(a); return err }, []string{"--bogus"}, false, true},
		{"missing value", func(a []string) error { _, err := parsePDFFlags(a); return err }, []string{"-o"}, false, true},
		{"bad float", func(a []string) error { _, err := parsePDFFlags(a); return err }, []string{"--margin", "wide"}, false, true},
		{"positional", func(a []string) error { _, err := parseServeFlags(a); return err }, []string{"page.md"}, false, true},
		{"catalog takes no config", func(a []string) error { _, err := parseCatalogFlags(a); return err }, []string{"-c", "x"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.parse(tt.args)
			if got := errors.Is(err, flag.ErrHelp); got != tt.wantHelp {
				t.Errorf("errors.Is(%v, ErrHelp) = %v, want %v", err, got, tt.wantHelp)
			}
			if got := errors.Is(err, ErrUsage); got != tt.wantUsage {
				t.Errorf("errors.Is(%v, ErrUsage) = %v, want %v", err, got, tt.wantUsage)
			}
		})
	}
}

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"30s", 30 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{"soon", 0, true},
		{"0s", 0, true},
		{"-1s", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseTimeout(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimeout(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUsage) {
				t.Errorf("error %v should wrap ErrUsage", err)
			}
			if got != tt.want {
				t.Errorf("parseTimeout(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
