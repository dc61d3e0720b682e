package docpage

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Catalog is the immutable content driving the page. Build it with
// NewCatalog or use DefaultCatalog; accessors return copies so the shared
// value cannot be mutated through them.
type Catalog struct {
	features []FeatureCard
	snippets []CodeSnippet
	steps    []ImplementationStep
	asset    ArchitectureAsset
}

// CatalogOption configures catalog construction.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	glyphs GlyphResolver
}

// WithGlyphCheck makes NewCatalog verify that every feature glyph resolves.
// A dangling glyph name is then a configuration fault rather than a
// render-time placeholder.
func WithGlyphCheck(r GlyphResolver) CatalogOption {
	return func(c *catalogConfig) {
		c.glyphs = r
	}
}

// NewCatalog validates and copies the given content into a Catalog.
// Returns a *ConfigurationFault listing every violated invariant.
func NewCatalog(features []FeatureCard, snippets []CodeSnippet, steps []ImplementationStep, asset ArchitectureAsset, opts ...CatalogOption) (*Catalog, error) {
	var cfg catalogConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var violations []string
	violations = append(violations, validateFeatures(features, cfg.glyphs)...)
	violations = append(violations, validateSnippets(snippets)...)
	violations = append(violations, validateSteps(steps)...)
	if len(violations) > 0 {
		return nil, &ConfigurationFault{Violations: violations}
	}

	return &Catalog{
		features: slices.Clone(features),
		snippets: slices.Clone(snippets),
		steps:    cloneSteps(steps),
		asset:    asset,
	}, nil
}

func validateFeatures(features []FeatureCard, glyphs GlyphResolver) []string {
	var v []string
	for i, f := range features {
		if strings.TrimSpace(f.Title) == "" {
			v = append(v, fmt.Sprintf("features[%d]: empty title", i))
		}
		if strings.TrimSpace(f.Description) == "" {
			v = append(v, fmt.Sprintf("features[%d]: empty description", i))
		}
		if f.GlyphName == "" {
			v = append(v, fmt.Sprintf("features[%d]: empty glyph name", i))
			continue
		}
		if glyphs != nil {
			if _, err := glyphs.ResolveGlyph(f.GlyphName); err != nil {
				v = append(v, fmt.Sprintf("features[%d]: dangling glyph %q", i, f.GlyphName))
			}
		}
	}
	return v
}

func validateSnippets(snippets []CodeSnippet) []string {
	var v []string
	seen := make(map[string]int, len(snippets))
	for i, s := range snippets {
		switch prev, dup := seen[s.ID]; {
		case s.ID == "":
			v = append(v, fmt.Sprintf("snippets[%d]: empty id", i))
		case dup:
			v = append(v, fmt.Sprintf("snippets[%d]: id %q already used by snippets[%d]", i, s.ID, prev))
		default:
			seen[s.ID] = i
		}
		if strings.TrimSpace(s.Heading) == "" {
			v = append(v, fmt.Sprintf("snippets[%d]: empty heading", i))
		}
		if strings.TrimSpace(s.Body) == "" {
			v = append(v, fmt.Sprintf("snippets[%d]: empty body", i))
		}
	}
	return v
}

func validateSteps(steps []ImplementationStep) []string {
	var v []string
	for i, s := range steps {
		if strings.TrimSpace(s.Heading) == "" {
			v = append(v, fmt.Sprintf("steps[%d]: empty heading", i))
		}
		for j, sub := range s.SubSteps {
			if strings.TrimSpace(sub) == "" {
				v = append(v, fmt.Sprintf("steps[%d].subSteps[%d]: empty", i, j))
			}
		}
	}
	return v
}

func cloneSteps(steps []ImplementationStep) []ImplementationStep {
	out := make([]ImplementationStep, len(steps))
	for i, s := range steps {
		out[i] = s
		out[i].SubSteps = slices.Clone(s.SubSteps)
	}
	return out
}

// ListFeatures returns the feature cards in presentation order.
func (c *Catalog) ListFeatures() []FeatureCard {
	return slices.Clone(c.features)
}

// ListSnippets returns the code snippets in presentation order.
func (c *Catalog) ListSnippets() []CodeSnippet {
	return slices.Clone(c.snippets)
}

// ListSteps returns the implementation steps in chronological order.
func (c *Catalog) ListSteps() []ImplementationStep {
	return cloneSteps(c.steps)
}

// ArchitectureAsset returns the architecture diagram reference.
func (c *Catalog) ArchitectureAsset() ArchitectureAsset {
	return c.asset
}

// Snippet returns the snippet with the given id.
func (c *Catalog) Snippet(id string) (CodeSnippet, bool) {
	for _, s := range c.snippets {
		if s.ID == id {
			return s, true
		}
	}
	return CodeSnippet{}, false
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return NewCatalog(builtinFeatures, builtinSnippets, builtinSteps, builtinAsset,
		WithGlyphCheck(DefaultGlyphSet()))
})

// DefaultCatalog returns the built-in MicroDeploy content. It is built and
// validated once per process; later calls return the same value.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// MustDefaultCatalog is like DefaultCatalog but panics on a configuration fault.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// IsConfigurationFault reports whether err is a catalog configuration fault.
func IsConfigurationFault(err error) bool {
	return errors.Is(err, ErrConfigurationFault)
}
