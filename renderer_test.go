package docpage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func TestRenderer_RenderCatalog(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	res, err := r.RenderCatalog(context.Background(), MustDefaultCatalog(), DefaultChrome())
	if err != nil {
		t.Fatalf("RenderCatalog() error = %v", err)
	}
	if len(res.Page.Misses) != 0 {
		t.Errorf("misses = %v, want none for built-in content", res.Page.Misses)
	}

	tests := []struct {
		name string
		want string
	}{
		{"doctype", "<!DOCTYPE html>"},
		{"language", `<html lang="en">`},
		{"title", "<title>MicroDeploy</title>"},
		{"documentation anchor", `id="documentation"`},
		{"documentation nav link", `href="#documentation"`},
		{"escaped feature title", "Monitoring &amp; Alerting"},
		{"code span in sub-step", "<code>.gitlab-ci.yml</code>"},
		{"snippet container", `id="snippet-pipeline-config"`},
		{"language badge", `<span class="badge">DOCKERFILE</span>`},
		{"highlighted code", `class="chroma"`},
		{"architecture image", `alt="Architecture Diagram"`},
		{"step numbering", "<h3>4. Implement Monitoring with Prometheus and Grafana</h3>"},
		{"copyright", "© 2025 MicroDeploy. All rights reserved."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !strings.Contains(res.HTML, tt.want) {
				t.Errorf("rendered page missing %q", tt.want)
			}
		})
	}
}

func TestRenderer_SectionsInOrder(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	res, err := r.RenderCatalog(context.Background(), MustDefaultCatalog(), DefaultChrome())
	if err != nil {
		t.Fatalf("RenderCatalog() error = %v", err)
	}

	markers := []string{
		`class="section section--hero`,
		`class="section section--features`,
		`class="section section--architecture`,
		`class="section section--documentation`,
		`class="section section--steps`,
		`<footer class="site-footer">`,
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(res.HTML, m)
		if idx < 0 {
			t.Fatalf("missing %q", m)
		}
		if idx <= last {
			t.Errorf("%q out of order", m)
		}
		last = idx
	}
}

func TestRenderer_UpdatedStamp(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	ctx := context.Background()

	res, err := r.RenderCatalog(ctx, MustDefaultCatalog(), DefaultChrome())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(res.HTML, "Last updated") {
		t.Error("default chrome should not print an update stamp")
	}

	chrome := DefaultChrome()
	chrome.Updated = "March 7, 2025"
	res, err = r.RenderCatalog(ctx, MustDefaultCatalog(), chrome)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.HTML, `<p class="updated">Last updated March 7, 2025</p>`) {
		t.Error("update stamp missing from footer")
	}
}

func TestRenderer_SnippetBodyEscapedVerbatim(t *testing.T) {
	t.Parallel()

	snippets := []CodeSnippet{{
		ID:      "tricky",
		Heading: "Tricky",
		Body:    "pattern: \\d+\\.\\d+\n<script>alert(1)</script>\n```\nstill inside\n",
	}}
	cat, err := NewCatalog(nil, snippets, nil, testAsset)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	r := newTestRenderer(t, WithHighlight(false))
	res, err := r.RenderCatalog(context.Background(), cat, DefaultChrome())
	if err != nil {
		t.Fatalf("RenderCatalog() error = %v", err)
	}

	for _, want := range []string{`pattern: \d+\.\d+`, "&lt;script&gt;alert(1)&lt;/script&gt;", "```\nstill inside"} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("rendered snippet missing %q", want)
		}
	}
	if strings.Contains(res.HTML, "<script>") {
		t.Error("snippet markup reached the page unescaped")
	}
	if strings.Contains(res.HTML, `class="chroma"`) {
		t.Error("highlighting disabled but chroma classes present")
	}
}

func TestRenderer_PlaceholderAndMissLogging(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newTestRenderer(t, WithLogger(logger))

	page := Compose(MustDefaultCatalog(), DefaultChrome(), stubGlyphs("server"), stubAssets(ErrAssetUnresolved))
	out, err := r.Render(context.Background(), page)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(out, `glyph--placeholder" data-glyph="server"`) {
		t.Error("missing glyph placeholder for server")
	}
	if !strings.Contains(out, `class="diagram__placeholder"`) {
		t.Error("missing architecture placeholder")
	}
	if strings.Contains(out, "<img") {
		t.Error("unresolved asset still rendered as <img>")
	}

	got := logs.String()
	for _, want := range []string{"unresolved reference, using placeholder", "ref=server", "kind=asset", "page rendered"} {
		if !strings.Contains(got, want) {
			t.Errorf("log output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderer_Errors(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	if _, err := r.Render(context.Background(), nil); !errors.Is(err, ErrNilPage) {
		t.Errorf("Render(nil) error = %v, want ErrNilPage", err)
	}
	if _, err := r.RenderCatalog(context.Background(), nil, DefaultChrome()); !errors.Is(err, ErrNilCatalog) {
		t.Errorf("RenderCatalog(nil) error = %v, want ErrNilCatalog", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, &Page{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Render(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestNewRenderer_Options(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cssPath := filepath.Join(dir, "brand.css")
	if err := os.WriteFile(cssPath, []byte("body { color: teal; } </style>"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name     string
		opts     []Option
		wantErr  error
		checkCSS func(t *testing.T, css string)
	}{
		{
			name: "css file path",
			opts: []Option{WithStyle(cssPath)},
			checkCSS: func(t *testing.T, css string) {
				if !strings.Contains(css, "color: teal") {
					t.Errorf("css missing custom rule")
				}
				if strings.Contains(css, "</style>") {
					t.Errorf("css not sanitized")
				}
			},
		},
		{
			name: "plain style without highlighting",
			opts: []Option{WithStyle("plain"), WithHighlight(false)},
			checkCSS: func(t *testing.T, css string) {
				if strings.Contains(css, ".chroma") {
					t.Errorf("highlight CSS present with highlighting off")
				}
			},
		},
		{
			name: "highlight style",
			opts: []Option{WithHighlightStyle("monokai")},
			checkCSS: func(t *testing.T, css string) {
				if !strings.Contains(css, ".chroma") {
					t.Errorf("highlight CSS missing")
				}
			},
		},
		{name: "unknown style", opts: []Option{WithStyle("neon")}, wantErr: ErrStyleNotFound},
		{name: "missing css file", opts: []Option{WithStyle(filepath.Join(dir, "none.css"))}, wantErr: ErrStyleNotFound},
		{name: "unknown highlight style", opts: []Option{WithHighlightStyle("no-such-style")}, wantErr: ErrUnknownCodeStyle},
		{name: "bad asset path", opts: []Option{WithAssetPath(filepath.Join(dir, "missing"))}, wantErr: ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]Option{WithLogger(slog.New(slog.DiscardHandler))}, tt.opts...)
			r, err := NewRenderer(opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewRenderer() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRenderer() error = %v", err)
			}
			tt.checkCSS(t, r.CSS())
		})
	}
}

func TestNewRenderer_TemplateOverride(t *testing.T) {
	t.Parallel()

	t.Run("custom template is used", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTemplate(t, dir, `<html><title>{{ .Title | upper }}</title></html>`)

		r := newTestRenderer(t, WithAssetPath(dir))
		res, err := r.RenderCatalog(context.Background(), MustDefaultCatalog(), DefaultChrome())
		if err != nil {
			t.Fatalf("RenderCatalog() error = %v", err)
		}
		if res.HTML != "<html><title>MICRODEPLOY</title></html>" {
			t.Errorf("HTML = %q", res.HTML)
		}
	})

	t.Run("broken template", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTemplate(t, dir, `<html>{{ .Title </html>`)

		_, err := NewRenderer(WithAssetPath(dir))
		if !errors.Is(err, ErrTemplateParse) {
			t.Errorf("error = %v, want ErrTemplateParse", err)
		}
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTemplate(t, dir, `<html>{{ .Subtitle }}</html>`)

		r := newTestRenderer(t, WithAssetPath(dir))
		_, err := r.RenderCatalog(context.Background(), MustDefaultCatalog(), DefaultChrome())
		if !errors.Is(err, ErrTemplateExecution) {
			t.Errorf("error = %v, want ErrTemplateExecution", err)
		}
	})
}

func writeTemplate(t *testing.T, dir, content string) {
	t.Helper()
	tdir := filepath.Join(dir, "templates")
	if err := os.MkdirAll(tdir, 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tdir, "page.html"), []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
