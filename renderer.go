package docpage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/alnah/go-docpage/internal/assets"
	"github.com/alnah/go-docpage/internal/fileutil"
	"github.com/alnah/go-docpage/internal/pipeline"
)

// Renderer turns a composed Page into a standalone HTML5 document.
// Create with NewRenderer. A Renderer is immutable after construction and
// safe for concurrent use.
type Renderer struct {
	cfg    rendererConfig
	loader *assets.AssetResolver
	glyphs *GlyphSet
	tmpl   *template.Template
	css    string
	inline pipeline.InlineConverter
	code   pipeline.CodeRenderer
}

type rendererConfig struct {
	logger         *slog.Logger
	assetPath      string
	style          string
	highlight      bool
	highlightStyle string
}

// Option configures a Renderer.
type Option func(*rendererConfig)

// WithLogger sets the logger used for resolution misses and render timing.
// Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *rendererConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAssetPath sets a directory whose styles/, templates/ and glyphs/
// override the embedded assets file by file.
func WithAssetPath(path string) Option {
	return func(c *rendererConfig) {
		c.assetPath = path
	}
}

// WithStyle selects the page stylesheet: an embedded style name
// ("default", "plain") or a path to a CSS file.
func WithStyle(nameOrPath string) Option {
	return func(c *rendererConfig) {
		c.style = nameOrPath
	}
}

// WithHighlight turns syntax highlighting of snippet bodies on or off.
// Default is on.
func WithHighlight(enabled bool) Option {
	return func(c *rendererConfig) {
		c.highlight = enabled
	}
}

// WithHighlightStyle sets the Chroma style for snippet highlighting.
func WithHighlightStyle(name string) Option {
	return func(c *rendererConfig) {
		c.highlightStyle = name
	}
}

// NewRenderer loads the page template and stylesheets.
// Returns ErrInvalidAssetPath, ErrStyleNotFound, ErrUnknownCodeStyle or
// ErrTemplateNotFound when an asset cannot be loaded.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := rendererConfig{
		logger:         slog.Default(),
		highlight:      true,
		highlightStyle: pipeline.DefaultCodeStyle,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	loader, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	r := &Renderer{
		cfg:    cfg,
		loader: loader,
		glyphs: &GlyphSet{loader: loader},
		inline: pipeline.NewGoldmarkInline(),
		code:   pipeline.NewGoldmarkCode(cfg.highlight),
	}

	if err := r.loadCSS(); err != nil {
		return nil, err
	}
	if err := r.loadTemplate(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) loadCSS() error {
	var pageCSS string
	if fileutil.IsFilePath(r.cfg.style) {
		content, err := os.ReadFile(r.cfg.style) // #nosec G304 -- user-provided path
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrStyleNotFound, r.cfg.style)
			}
			return fmt.Errorf("loading style file %q: %w", r.cfg.style, err)
		}
		pageCSS = string(content)
	} else {
		name := r.cfg.style
		if name == "" {
			name = assets.DefaultStyleName
		}
		content, err := r.loader.LoadStyle(name)
		if err != nil {
			return fmt.Errorf("loading style: %w", err)
		}
		pageCSS = content
	}

	var codeCSS string
	if r.cfg.highlight {
		css, err := pipeline.HighlightCSS(r.cfg.highlightStyle)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnknownCodeStyle, err)
		}
		codeCSS = css
	}

	r.css = pipeline.SanitizeCSS(pipeline.JoinCSS(pageCSS, codeCSS))
	return nil
}

func (r *Renderer) loadTemplate() error {
	src, err := r.loader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return fmt.Errorf("loading page template: %w", err)
	}

	tmpl, err := template.New(assets.DefaultTemplateName).
		Funcs(sprig.HtmlFuncMap()).
		Option("missingkey=error").
		Parse(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	r.tmpl = tmpl
	return nil
}

// Glyphs returns the glyph resolver backed by this renderer's assets.
func (r *Renderer) Glyphs() *GlyphSet {
	return r.glyphs
}

// CSS returns the combined stylesheet embedded in every rendered page.
func (r *Renderer) CSS() string {
	return r.css
}

// Render produces the HTML document for page. Every resolution miss recorded
// on the page is logged at warn level; the page still renders with placeholders.
func (r *Renderer) Render(ctx context.Context, page *Page) (html string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrRender, p)
		}
	}()

	if page == nil {
		return "", ErrNilPage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	for _, m := range page.Misses {
		r.cfg.logger.LogAttrs(ctx, slog.LevelWarn, "unresolved reference, using placeholder",
			slog.String("kind", m.Kind),
			slog.String("ref", m.Ref),
			slog.Any("error", m.Err),
		)
	}

	view, err := r.buildView(ctx, page)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecution, err)
	}

	r.cfg.logger.LogAttrs(ctx, slog.LevelDebug, "page rendered",
		slog.Int("sections", len(page.Sections)),
		slog.Int("bytes", buf.Len()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return buf.String(), nil
}

// Result holds a composed page and its rendered HTML.
type Result struct {
	Page *Page
	HTML string
}

// RenderCatalog composes cat with chrome using this renderer's glyphs and
// the URI asset resolver, then renders it.
func (r *Renderer) RenderCatalog(ctx context.Context, cat *Catalog, chrome Chrome) (*Result, error) {
	if cat == nil {
		return nil, ErrNilCatalog
	}
	page := Compose(cat, chrome, r.glyphs, URIResolver{})
	out, err := r.Render(ctx, page)
	if err != nil {
		return nil, err
	}
	return &Result{Page: page, HTML: out}, nil
}
