package assets

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrGlyphNotFound    = errors.New("glyph not found")

	// ErrInvalidAssetName rejects names that are not plain identifiers.
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// AssetLoader loads page assets by bare name: no extension, no directory.
type AssetLoader interface {
	LoadStyle(name string) (string, error)    // ErrStyleNotFound if missing
	LoadTemplate(name string) (string, error) // ErrTemplateNotFound if missing
	LoadGlyph(name string) (string, error)    // ErrGlyphNotFound if missing
}

// Built-in asset names.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "page"
)

// kind describes where one asset type lives and how a miss is reported.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
	glyphKind    = kind{dir: "glyphs", ext: ".svg", notFound: ErrGlyphNotFound}
)

func (k kind) file(name string) string {
	return k.dir + "/" + name + k.ext
}

// checkName accepts ASCII letters, digits, '-' and '_' only, so a name can
// never carry a separator, an extension or a traversal sequence.
func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.IndexFunc(name, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_')
	}) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
