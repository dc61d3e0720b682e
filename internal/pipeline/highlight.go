package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// DefaultCodeStyle is the Chroma style used when none is configured.
const DefaultCodeStyle = "github"

// ErrUnknownStyle indicates the Chroma style name is not registered.
var ErrUnknownStyle = errors.New("unknown highlight style")

// CodeRenderer abstracts rendering a verbatim code body to an HTML block.
type CodeRenderer interface {
	RenderCode(ctx context.Context, language, body string) (string, error)
}

// GoldmarkCode renders code bodies as fenced code blocks through goldmark.
// With highlighting enabled tokens carry Chroma CSS classes; see HighlightCSS.
type GoldmarkCode struct {
	md        goldmark.Markdown
	highlight bool
}

// NewGoldmarkCode creates a GoldmarkCode. When highlight is false the body
// is emitted as a plain escaped <pre><code> block.
func NewGoldmarkCode(highlight bool) *GoldmarkCode {
	var exts []goldmark.Extender
	if highlight {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // stylesheet comes from HighlightCSS
			),
			highlighting.WithGuessLanguage(false),
		))
	}
	return &GoldmarkCode{
		md:        goldmark.New(goldmark.WithExtensions(exts...)),
		highlight: highlight,
	}
}

// RenderCode renders body verbatim inside a code block. The characters of
// body reach the output unchanged apart from HTML escaping.
func (c *GoldmarkCode) RenderCode(ctx context.Context, language, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(fencedBlock(NormalizeLanguage(language), body)), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// fencedBlock wraps body in a backtick fence longer than any backtick run
// inside it, so no line of body can close the block early.
func fencedBlock(language, body string) string {
	fence := strings.Repeat("`", max(3, longestRun(body, '`')+1))

	var b strings.Builder
	b.Grow(len(body) + 2*len(fence) + len(language) + 2)
	b.WriteString(fence)
	b.WriteString(language)
	b.WriteByte('\n')
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(fence)
	b.WriteByte('\n')
	return b.String()
}

func longestRun(s string, ch byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// NormalizeLanguage maps a snippet language to a name Chroma knows.
// Unknown languages return "", which renders the block without highlighting.
func NormalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" || strings.ContainsAny(language, " `") {
		return ""
	}
	if lexers.Get(language) == nil {
		return ""
	}
	return language
}

// HighlightCSS returns the stylesheet for the class names GoldmarkCode emits.
func HighlightCSS(styleName string) (string, error) {
	style, err := lookupStyle(styleName)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

func lookupStyle(name string) (*chroma.Style, error) {
	if name == "" {
		name = DefaultCodeStyle
	}
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return style, nil
}

// StyleNames lists the registered Chroma style names.
func StyleNames() []string {
	return styles.Names()
}

// Compile-time interface check.
var _ CodeRenderer = (*GoldmarkCode)(nil)
