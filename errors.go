package docpage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-docpage/internal/assets"
)

// Sentinel errors for library operations.
var (
	ErrConfigurationFault = errors.New("content catalog configuration fault")
	ErrResolutionMiss     = errors.New("reference could not be resolved")
	ErrGlyphNotFound      = errors.New("glyph not found")
	ErrAssetUnresolved    = errors.New("asset reference unresolved")
	ErrNilCatalog         = errors.New("catalog is nil")
	ErrNilPage            = errors.New("page is nil")
	ErrRender             = errors.New("page rendering failed")

	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrEmptyHTML      = errors.New("HTML content cannot be empty")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors, shared with the internal loader so errors.Is
	// matches whichever layer produced them.
	ErrStyleNotFound     = assets.ErrStyleNotFound
	ErrTemplateNotFound  = assets.ErrTemplateNotFound
	ErrInvalidAssetPath  = errors.New("invalid asset path")
	ErrUnknownCodeStyle  = errors.New("unknown code highlight style")
	ErrTemplateParse     = errors.New("page template parse failed")
	ErrTemplateExecution = errors.New("page template execution failed")
)

// ConfigurationFault reports catalog invariants violated at construction.
// It lists every violation, not just the first.
type ConfigurationFault struct {
	Violations []string
}

func (f *ConfigurationFault) Error() string {
	return fmt.Sprintf("%v: %s", ErrConfigurationFault, strings.Join(f.Violations, "; "))
}

// Is reports whether target is ErrConfigurationFault.
func (f *ConfigurationFault) Is(target error) bool {
	return target == ErrConfigurationFault
}

// Resolution miss kinds.
const (
	MissGlyph = "glyph"
	MissAsset = "asset"
)

// ResolutionMiss records a resolver failure that composition recovered from
// by substituting a placeholder.
type ResolutionMiss struct {
	Kind string // MissGlyph or MissAsset
	Ref  string // glyph name or asset URI
	Err  error
}

func (m *ResolutionMiss) Error() string {
	return fmt.Sprintf("unresolved %s %q: %v", m.Kind, m.Ref, m.Err)
}

// Unwrap returns the resolver error.
func (m *ResolutionMiss) Unwrap() error {
	return m.Err
}

// Is reports whether target is ErrResolutionMiss.
func (m *ResolutionMiss) Is(target error) bool {
	return target == ErrResolutionMiss
}
