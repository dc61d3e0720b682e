package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// InlineConverter abstracts conversion of one line of Markdown to an HTML fragment.
type InlineConverter interface {
	ToInlineHTML(ctx context.Context, text string) (string, error)
}

// GoldmarkInline converts short Markdown texts to inline HTML using goldmark.
type GoldmarkInline struct {
	md goldmark.Markdown
}

// NewGoldmarkInline creates a GoldmarkInline with GFM extensions.
// Raw HTML in the source is escaped, not passed through.
func NewGoldmarkInline() *GoldmarkInline {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkInline{md: md}
}

// ToInlineHTML converts text and strips the single paragraph goldmark wraps
// around it, so the result can sit inside <p>, <li> or <h3>.
func (c *GoldmarkInline) ToInlineHTML(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if text == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	return unwrapParagraph(buf.String()), nil
}

// unwrapParagraph removes one enclosing <p>...</p>. Multi-paragraph output
// is returned unchanged.
func unwrapParagraph(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<p>") || !strings.HasSuffix(s, "</p>") {
		return s
	}
	inner := s[len("<p>") : len(s)-len("</p>")]
	if strings.Contains(inner, "<p>") {
		return s
	}
	return inner
}

// Compile-time interface check.
var _ InlineConverter = (*GoldmarkInline)(nil)
