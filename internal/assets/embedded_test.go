package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedLoader_Load(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		load        func(string) (string, error)
		asset       string
		wantErr     error
		wantContain string
	}{
		{"default style", loader.LoadStyle, "default", nil, "font-family"},
		{"plain style", loader.LoadStyle, "plain", nil, "font-family"},
		{"missing style", loader.LoadStyle, "nonexistent-style-xyz", ErrStyleNotFound, ""},
		{"page template", loader.LoadTemplate, DefaultTemplateName, nil, "<!DOCTYPE html>"},
		{"missing template", loader.LoadTemplate, "cover", ErrTemplateNotFound, ""},
		{"box glyph", loader.LoadGlyph, "box", nil, "<svg"},
		{"github glyph", loader.LoadGlyph, "github", nil, "<svg"},
		{"missing glyph", loader.LoadGlyph, "rocket", ErrGlyphNotFound, ""},
		{"empty name", loader.LoadGlyph, "", ErrInvalidAssetName, ""},
		{"traversal", loader.LoadStyle, "../secret", ErrInvalidAssetName, ""},
		{"backslash traversal", loader.LoadTemplate, "..\\secret", ErrInvalidAssetName, ""},
		{"name with extension", loader.LoadGlyph, "box.svg", ErrInvalidAssetName, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("load(%q) unexpected error: %v", tt.asset, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("load(%q) content should contain %q", tt.asset, tt.wantContain)
			}
		})
	}
}

func TestGlyphNames(t *testing.T) {
	t.Parallel()

	got := GlyphNames()
	want := []string{"bar-chart", "box", "git-merge", "github", "server", "workflow"}
	if !slices.Equal(got, want) {
		t.Errorf("GlyphNames() = %v, want %v", got, want)
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	got := StyleNames()
	if !slices.IsSorted(got) {
		t.Errorf("StyleNames() = %v, want sorted", got)
	}
	for _, name := range []string{"default", "plain"} {
		if !slices.Contains(got, name) {
			t.Errorf("StyleNames() = %v, missing %q", got, name)
		}
	}
}
