package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"glyph name", "git-merge", false},
		{"style name", "default", false},
		{"underscore and digits", "bar_chart2", false},
		{"non-ascii letter", "café", true},
		{"colon", "a:b", true},
		{"mixed case", "GitHub", false},

		{"empty", "", true},
		{"forward slash", "glyphs/box", true},
		{"backslash", "glyphs\\box", true},
		{"parent traversal", "../box", true},
		{"windows parent traversal", "..\\box", true},
		{"extension", "box.svg", true},
		{"hidden file", ".box", true},
		{"space", "bar chart", true},
		{"tab", "bar\tchart", true},
		{"newline", "box\n", true},
		{"nul byte", "box\x00", true},
		{"absolute path", "/etc/passwd", true},
		{"drive path", "C:\\glyphs", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checkName(tt.input)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("checkName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
		})
	}
}

func TestCheckName_QuotesRejectedName(t *testing.T) {
	t.Parallel()

	err := checkName("../evil")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `"../evil"`) {
		t.Errorf("error %q should quote the rejected name", err)
	}
}
