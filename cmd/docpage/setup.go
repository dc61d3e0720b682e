package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	docpage "github.com/alnah/go-docpage"
	"github.com/alnah/go-docpage/internal/assets"
	"github.com/alnah/go-docpage/internal/config"
	"github.com/alnah/go-docpage/internal/dateutil"
	"github.com/alnah/go-docpage/internal/fileutil"
	"github.com/alnah/go-docpage/internal/hints"
	"github.com/alnah/go-docpage/internal/pipeline"
	"github.com/alnah/go-docpage/internal/server"
)

// defaultConfigName is looked up when neither --config nor DOCPAGE_CONFIG is set.
const defaultConfigName = "docpage"

// loadedConfig is a fully merged configuration and the file it came from.
type loadedConfig struct {
	cfg  *config.Config
	path string // "" when built-in defaults were used
}

// loadConfig resolves the config file and applies the environment.
// An explicit --config or DOCPAGE_CONFIG must exist; the implicit
// "docpage" name falls back to defaults when no file matches.
func loadConfig(common *commonFlags, env *Environment) (*loadedConfig, error) {
	envCfg := loadEnvConfig(env.Getenv)

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var (
		path string
		err  error
	)
	if name != "" {
		path, err = config.ResolvePath(name)
	} else {
		path, err = config.ResolvePath(defaultConfigName)
		if errors.Is(err, config.ErrConfigNotFound) {
			path, err = "", nil
		}
	}
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if path != "" {
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	applyEnvConfig(envCfg, cfg)
	return &loadedConfig{cfg: cfg, path: path}, nil
}

// applyRenderFlags overrides rendering settings with flags.
func applyRenderFlags(f *renderFlags, cfg *config.Config) {
	override(&cfg.Render.Style, f.style)
	override(&cfg.Assets.BasePath, f.assetPath)
	override(&cfg.Render.HighlightStyle, f.highlightStyle)
	if f.noHighlight {
		off := false
		cfg.Render.Highlight = &off
	}
}

// newLogger returns the CLI logger: warnings by default, info with
// --verbose, errors only with --quiet.
func newLogger(w io.Writer, common *commonFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case common.quiet:
		level = slog.LevelError
	case common.verbose:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// buildChrome overlays the configured identity on the built-in chrome.
// site.updated is resolved against now.
func buildChrome(cfg *config.Config, now time.Time) (docpage.Chrome, error) {
	c := docpage.DefaultChrome()

	override(&c.Title, cfg.Site.Title)
	override(&c.Lang, cfg.Site.Lang)
	override(&c.BrandGlyph, cfg.Site.BrandGlyph)
	override(&c.RepositoryURL, cfg.Site.RepositoryURL)
	override(&c.RepositoryLabel, cfg.Site.RepositoryLabel)
	override(&c.Copyright, cfg.Site.Copyright)

	override(&c.HeroHeading, cfg.Hero.Heading)
	override(&c.HeroIntro, cfg.Hero.Intro)

	override(&c.ArchitectureTitle, cfg.Sections.ArchitectureTitle)
	override(&c.DocumentationTitle, cfg.Sections.DocumentationTitle)
	override(&c.StepsTitle, cfg.Sections.StepsTitle)

	if cfg.Footer.Links != nil {
		c.FooterLinks = make([]docpage.Link, len(cfg.Footer.Links))
		for i, l := range cfg.Footer.Links {
			c.FooterLinks[i] = docpage.Link{Label: l.Label, URL: l.URL}
		}
	}

	updated, err := dateutil.Resolve(cfg.Site.Updated, now)
	if err != nil {
		return c, fmt.Errorf("%w: site.updated: %v", config.ErrInvalidValue, err)
	}
	c.Updated = updated
	return c, nil
}

// rendererOptions maps the render config onto Renderer options.
func rendererOptions(cfg *config.Config, logger *slog.Logger) []docpage.Option {
	opts := []docpage.Option{
		docpage.WithLogger(logger),
		docpage.WithAssetPath(cfg.Assets.BasePath),
		docpage.WithHighlight(cfg.Render.HighlightEnabled()),
	}
	if cfg.Render.Style != "" {
		opts = append(opts, docpage.WithStyle(cfg.Render.Style))
	}
	if cfg.Render.HighlightStyle != "" {
		opts = append(opts, docpage.WithHighlightStyle(cfg.Render.HighlightStyle))
	}
	return opts
}

// renderPage validates the built-in catalog against the configured glyphs
// and renders it with the configured chrome.
func renderPage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*docpage.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r, err := docpage.NewRenderer(rendererOptions(cfg, logger)...)
	if err != nil {
		return nil, err
	}

	cat, err := docpage.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	if name := cfg.Site.BrandGlyph; name != "" {
		if err := checkBrandGlyph(r.Glyphs(), name); err != nil {
			return nil, err
		}
	}

	chrome, err := buildChrome(cfg, time.Now())
	if err != nil {
		return nil, err
	}
	return r.RenderCatalog(ctx, cat, chrome)
}

// checkBrandGlyph rejects a configured brand glyph that does not exist.
// A typo in config is a configuration fault, not a render-time placeholder.
func checkBrandGlyph(glyphs docpage.GlyphResolver, name string) error {
	if _, err := glyphs.ResolveGlyph(name); err != nil {
		return &docpage.ConfigurationFault{
			Violations: []string{fmt.Sprintf("site.brandGlyph: dangling glyph %q", name)},
		}
	}
	return nil
}

// buildPageSettings overlays configured PDF settings on the defaults.
func buildPageSettings(cfg *config.Config) *docpage.PageSettings {
	page := docpage.DefaultPageSettings()
	override(&page.Size, cfg.PDF.Size)
	override(&page.Orientation, cfg.PDF.Orientation)
	if cfg.PDF.Margin > 0 {
		page.Margin = cfg.PDF.Margin
	}
	return page
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, docpage.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, docpage.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, docpage.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, docpage.ErrUnknownCodeStyle):
		return hints.ForAvailable(pipeline.StyleNames())
	case errors.Is(err, docpage.ErrConfigurationFault):
		return hints.ForAvailable(assets.GlyphNames())
	case errors.Is(err, docpage.ErrInvalidAssetPath):
		return hints.ForAssetPath()
	case errors.Is(err, fileutil.ErrOutputDirectory):
		return hints.ForOutputDirectory()
	case errors.Is(err, server.ErrListen):
		return hints.ForListen()
	}
	return ""
}
