// Package config loads and validates the YAML configuration for docpage.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docpage/internal/dateutil"
	"github.com/alnah/go-docpage/internal/fileutil"
	"github.com/alnah/go-docpage/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory under the user config dir searched for named configs.
const AppDirName = "docpage"

// Field length limits.
const (
	MaxTitleLength       = 100
	MaxGlyphNameLength   = 64
	MaxURLLength         = 2048 // Browser limit
	MaxLabelLength       = 100
	MaxCopyrightLength   = 200
	MaxUpdatedLength     = 100
	MaxLangLength        = 35 // BCP 47 upper bound in practice
	MaxHeadingLength     = 200
	MaxIntroLength       = 1000
	MaxStyleNameLength   = 64
	MaxPathLength        = 4096
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxAddrLength        = 255
	MaxFooterLinks       = 20
)

// Margin bounds in inches.
const (
	MinMargin = 0.0
	MaxMargin = 3.0
)

// Config holds all configuration for page rendering.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Hero     HeroConfig     `yaml:"hero"`
	Sections SectionsConfig `yaml:"sections"`
	Footer   FooterConfig   `yaml:"footer"`
	Render   RenderConfig   `yaml:"render"`
	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
	Serve    ServeConfig    `yaml:"serve"`
}

// SiteConfig defines the page identity shown in header and footer.
type SiteConfig struct {
	Title           string `yaml:"title"`
	BrandGlyph      string `yaml:"brandGlyph"`
	RepositoryURL   string `yaml:"repositoryURL"`
	RepositoryLabel string `yaml:"repositoryLabel"`
	Copyright       string `yaml:"copyright"`
	Updated         string `yaml:"updated"` // literal, "auto" or "auto:FORMAT"
	Lang            string `yaml:"lang"`
}

// HeroConfig defines the opening banner copy.
type HeroConfig struct {
	Heading string `yaml:"heading"`
	Intro   string `yaml:"intro"`
}

// SectionsConfig overrides the section titles.
type SectionsConfig struct {
	ArchitectureTitle  string `yaml:"architectureTitle"`
	DocumentationTitle string `yaml:"documentationTitle"`
	StepsTitle         string `yaml:"stepsTitle"`
}

// FooterConfig defines the footer navigation. A non-nil empty list removes
// the default links.
type FooterConfig struct {
	Links []Link `yaml:"links"`
}

// Link is a labeled URL.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// RenderConfig defines HTML rendering options.
type RenderConfig struct {
	Style          string `yaml:"style"`          // Embedded style name or CSS file path
	Highlight      *bool  `yaml:"highlight"`      // nil = enabled
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style name
}

// HighlightEnabled reports whether snippet highlighting is on.
func (r RenderConfig) HighlightEnabled() bool {
	return r.Highlight == nil || *r.Highlight
}

// AssetsConfig defines the asset override directory.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded assets only
}

// PDFConfig defines PDF page settings.
type PDFConfig struct {
	Size        string        `yaml:"size"`        // letter, a4, legal
	Orientation string        `yaml:"orientation"` // portrait, landscape
	Margin      float64       `yaml:"margin"`      // inches, 0 = default
	Timeout     time.Duration `yaml:"timeout"`     // 0 = default
	BaseURL     string        `yaml:"baseURL"`     // resolves relative image and link URLs
}

// ServeConfig defines the development server.
type ServeConfig struct {
	Addr  string `yaml:"addr"`
	Watch bool   `yaml:"watch"`
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.brandGlyph", c.Site.BrandGlyph, MaxGlyphNameLength},
		{"site.repositoryURL", c.Site.RepositoryURL, MaxURLLength},
		{"site.repositoryLabel", c.Site.RepositoryLabel, MaxLabelLength},
		{"site.copyright", c.Site.Copyright, MaxCopyrightLength},
		{"site.updated", c.Site.Updated, MaxUpdatedLength},
		{"site.lang", c.Site.Lang, MaxLangLength},
		{"hero.heading", c.Hero.Heading, MaxHeadingLength},
		{"hero.intro", c.Hero.Intro, MaxIntroLength},
		{"sections.architectureTitle", c.Sections.ArchitectureTitle, MaxHeadingLength},
		{"sections.documentationTitle", c.Sections.DocumentationTitle, MaxHeadingLength},
		{"sections.stepsTitle", c.Sections.StepsTitle, MaxHeadingLength},
		{"render.style", c.Render.Style, MaxPathLength},
		{"render.highlightStyle", c.Render.HighlightStyle, MaxStyleNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"pdf.size", c.PDF.Size, MaxPageSizeLength},
		{"pdf.orientation", c.PDF.Orientation, MaxOrientationLength},
		{"pdf.baseURL", c.PDF.BaseURL, MaxURLLength},
		{"serve.addr", c.Serve.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if len(c.Footer.Links) > MaxFooterLinks {
		return fmt.Errorf("%w: footer.links: %d links, max %d", ErrInvalidValue, len(c.Footer.Links), MaxFooterLinks)
	}
	for i, link := range c.Footer.Links {
		if strings.TrimSpace(link.Label) == "" {
			return fmt.Errorf("%w: footer.links[%d].label: required", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("footer.links[%d].label", i), link.Label, MaxLabelLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("footer.links[%d].url", i), link.URL, MaxURLLength); err != nil {
			return err
		}
	}

	if c.Site.RepositoryURL != "" && !fileutil.IsURL(c.Site.RepositoryURL) {
		return fmt.Errorf("%w: site.repositoryURL: must start with http:// or https://, got %q", ErrInvalidValue, c.Site.RepositoryURL)
	}

	if _, err := dateutil.Resolve(c.Site.Updated, time.Time{}); err != nil {
		return fmt.Errorf("%w: site.updated: %v", ErrInvalidValue, err)
	}

	if c.PDF.Size != "" {
		switch strings.ToLower(c.PDF.Size) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: pdf.size: %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.Size)
		}
	}
	if c.PDF.Orientation != "" {
		switch strings.ToLower(c.PDF.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: pdf.orientation: %q (must be portrait or landscape)", ErrInvalidValue, c.PDF.Orientation)
		}
	}
	if c.PDF.Margin < MinMargin || c.PDF.Margin > MaxMargin {
		return fmt.Errorf("%w: pdf.margin: must be between %.1f and %.1f inches, got %.2f", ErrInvalidValue, MinMargin, MaxMargin, c.PDF.Margin)
	}
	if c.PDF.Timeout < 0 {
		return fmt.Errorf("%w: pdf.timeout: must not be negative, got %s", ErrInvalidValue, c.PDF.Timeout)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that keeps every built-in value.
// Empty strings mean "use the built-in chrome".
func DefaultConfig() *Config {
	return &Config{
		Serve: ServeConfig{Addr: "127.0.0.1:8080"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	path, err := ResolvePath(nameOrPath)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// ResolvePath returns the file LoadConfig would read for nameOrPath.
func ResolvePath(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyConfigName
	}
	if fileutil.IsFilePath(nameOrPath) || strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") {
		return nameOrPath, nil
	}
	return resolveConfigPath(nameOrPath)
}

// LoadFile reads and validates the config at path. Missing keys keep
// DefaultConfig values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name: current directory
// first, then the user config directory, .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", &NotFoundError{Name: name, Tried: paths}
}

// NotFoundError reports a config name that matched no file.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

// Unwrap returns ErrConfigNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}
