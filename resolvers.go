package docpage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/alnah/go-docpage/internal/assets"
)

// GlyphSet resolves glyph names to inline SVG from an asset loader.
// Implements GlyphResolver.
type GlyphSet struct {
	loader assets.AssetLoader
}

// DefaultGlyphSet returns a GlyphSet backed by the embedded glyphs.
func DefaultGlyphSet() *GlyphSet {
	return &GlyphSet{loader: assets.NewEmbeddedLoader()}
}

// NewGlyphSet returns a GlyphSet that reads {basePath}/glyphs/{name}.svg first
// and falls back to the embedded glyphs. An empty basePath uses embedded only.
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewGlyphSet(basePath string) (*GlyphSet, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return &GlyphSet{loader: resolver}, nil
}

// ResolveGlyph returns the glyph markup for name.
// Returns an error wrapping ErrGlyphNotFound for unknown or invalid names.
func (g *GlyphSet) ResolveGlyph(name string) (GlyphHandle, error) {
	markup, err := g.loader.LoadGlyph(name)
	if err != nil {
		if errors.Is(err, assets.ErrGlyphNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return GlyphHandle{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, name)
		}
		return GlyphHandle{}, err
	}
	return GlyphHandle{Name: name, Markup: strings.TrimSpace(markup)}, nil
}

// URIResolver hands asset URIs through unmodified after a syntax check.
// Reachability is not checked; a broken image is the browser's concern.
// Implements AssetResolver.
type URIResolver struct{}

// ResolveAsset accepts http and https URLs and relative references.
// Returns an error wrapping ErrAssetUnresolved for empty, malformed or
// other-scheme URIs.
func (URIResolver) ResolveAsset(uri string) (AssetHandle, error) {
	if strings.TrimSpace(uri) == "" {
		return AssetHandle{}, fmt.Errorf("%w: empty uri", ErrAssetUnresolved)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return AssetHandle{}, fmt.Errorf("%w: %v", ErrAssetUnresolved, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
	default:
		return AssetHandle{}, fmt.Errorf("%w: unsupported scheme %q", ErrAssetUnresolved, u.Scheme)
	}
	if u.Scheme != "" && u.Host == "" {
		return AssetHandle{}, fmt.Errorf("%w: missing host in %q", ErrAssetUnresolved, uri)
	}
	return AssetHandle{URI: uri}, nil
}

// Compile-time interface checks.
var (
	_ GlyphResolver = (*GlyphSet)(nil)
	_ AssetResolver = URIResolver{}
)
