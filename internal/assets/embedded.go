package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html glyphs/*.svg
var embedded embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in CSS style by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(styleKind, name)
}

// LoadTemplate loads a built-in HTML template by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(templateKind, name)
}

// LoadGlyph loads a built-in SVG glyph by name.
func (e *EmbeddedLoader) LoadGlyph(name string) (string, error) {
	return e.load(glyphKind, name)
}

func (e *EmbeddedLoader) load(k kind, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	content, err := embedded.ReadFile(k.file(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	}

	return string(content), nil
}

// GlyphNames lists the built-in glyph names in sorted order.
func GlyphNames() []string {
	return names(glyphKind)
}

// StyleNames lists the built-in style names in sorted order.
func StyleNames() []string {
	return names(styleKind)
}

func names(k kind) []string {
	entries, err := fs.ReadDir(embedded, k.dir)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), k.ext) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), k.ext))
	}
	sort.Strings(out)
	return out
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
