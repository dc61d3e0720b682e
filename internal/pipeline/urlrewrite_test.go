package pipeline

// Path traversal tests check observable behavior (reference left as is)
// rather than isPathUnderDir directly.

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRewriteRelativeURLs_Directory(t *testing.T) {
	t.Parallel()

	baseDir := "/docs"
	if runtime.GOOS == "windows" {
		baseDir = `C:\docs`
	}

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image",
			html:         `<img src="images/architecture.png">`,
			wantContains: []string{`src="file://`, `architecture.png"`},
		},
		{
			name:         "relative image with dot slash",
			html:         `<img src="./images/architecture.png">`,
			wantContains: []string{`src="file://`},
		},
		{
			name:         "query kept off the path",
			html:         `<img src="diagram.png?v=2">`,
			wantContains: []string{`diagram.png?v=2"`, `src="file://`},
		},
		{
			name:         "https URL unchanged",
			html:         `<img src="https://images.unsplash.com/photo.jpg">`,
			wantContains: []string{`src="https://images.unsplash.com/photo.jpg"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#documentation">Documentation</a>`,
			wantContains: []string{`href="#documentation"`},
		},
		{
			name:         "data URI unchanged",
			html:         `<img src="data:image/png;base64,AAAA">`,
			wantContains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "protocol relative unchanged",
			html:         `<img src="//cdn.example.com/a.png">`,
			wantContains: []string{`src="//cdn.example.com/a.png"`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/a.png">`,
			wantContains: []string{`src="/abs/a.png"`},
		},
		{
			name:         "relative link",
			html:         `<a href="guide.html">Guide</a>`,
			wantContains: []string{`href="file://`},
		},
		{
			name:         "script untouched",
			html:         `<script src="app.js"></script>`,
			wantContains: []string{`src="app.js"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativeURLs(tt.html, baseDir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, s := range tt.wantContains {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q: %q", s, got)
				}
			}
			for _, s := range tt.wantExcludes {
				if strings.Contains(got, s) {
					t.Errorf("output should not contain %q: %q", s, got)
				}
			}
		})
	}
}

func TestRewriteRelativeURLs_PathTraversal(t *testing.T) {
	t.Parallel()

	got, err := RewriteRelativeURLs(`<img src="../../etc/passwd">`, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, `src="../../etc/passwd"`) {
		t.Errorf("traversal reference should be left as is: %q", got)
	}
}

func TestRewriteRelativeURLs_Remote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		html string
		want string
	}{
		{
			name: "base without trailing slash",
			base: "https://docs.example.com/site",
			html: `<img src="img/arch.png">`,
			want: `src="https://docs.example.com/site/img/arch.png"`,
		},
		{
			name: "base with trailing slash",
			base: "http://localhost:8080/",
			html: `<a href="guide.html">g</a>`,
			want: `href="http://localhost:8080/guide.html"`,
		},
		{
			name: "parent reference resolved",
			base: "https://docs.example.com/a/b/",
			html: `<img src="../c.png">`,
			want: `src="https://docs.example.com/a/c.png"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativeURLs(tt.html, tt.base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("output missing %q: %q", tt.want, got)
			}
		})
	}
}

func TestRewriteRelativeURLs_EmptyBase(t *testing.T) {
	t.Parallel()

	input := `<img src="a.png">`
	got, err := RewriteRelativeURLs(input, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestRewriteRelativeURLs_InvalidRemoteBase(t *testing.T) {
	t.Parallel()

	_, err := RewriteRelativeURLs(`<img src="a.png">`, "https://")
	if !errors.Is(err, ErrInvalidBase) {
		t.Errorf("error = %v, want ErrInvalidBase", err)
	}
}

func TestRewriteRelativeURLs_FullDocument(t *testing.T) {
	t.Parallel()

	input := `<!DOCTYPE html><html><head><title>T</title></head><body><img src="a.png"></body></html>`
	got, err := RewriteRelativeURLs(input, "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("doctype lost: %q", got)
	}
	if !strings.Contains(got, `src="https://example.com/a.png"`) {
		t.Errorf("image not rewritten: %q", got)
	}
}

func TestRewriteRelativeURLs_Fragment(t *testing.T) {
	t.Parallel()

	got, err := RewriteRelativeURLs(`<p>x</p><img src="a.png">`, "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<html>") || strings.Contains(got, "<body>") {
		t.Errorf("fragment gained document wrapper: %q", got)
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	dir := filepath.FromSlash("/docs")
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"same dir", dir, true},
		{"child", filepath.Join(dir, "a.png"), true},
		{"sibling prefix", filepath.FromSlash("/docsx/a.png"), false},
		{"parent", filepath.FromSlash("/etc/passwd"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isPathUnderDir(tt.path, dir); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", tt.path, dir, got, tt.want)
			}
		})
	}
}
