package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrInvalidBase indicates the base given to RewriteRelativeURLs is unusable.
var ErrInvalidBase = errors.New("invalid base for relative URLs")

// RewriteRelativeURLs resolves relative img[src] and a[href] references
// against base. The page is printed from a temporary file, so without a base
// a relative diagram path would resolve next to that file.
//
// base is either an http(s) URL or a local directory. Directory references
// that escape base are left untouched. Anchors, absolute URLs, data URIs and
// absolute paths are never rewritten. An empty base returns the HTML unchanged.
func RewriteRelativeURLs(htmlContent, base string) (string, error) {
	if base == "" {
		return htmlContent, nil
	}

	r, err := newURLResolver(base)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, r)

	return renderHTML(doc, isFragment)
}

// urlResolver resolves relative references against either a remote base
// URL or a local directory.
type urlResolver struct {
	remote *url.URL
	dir    string
}

func newURLResolver(base string) (*urlResolver, error) {
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		u, err := url.Parse(base)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBase, base)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		return &urlResolver{remote: u}, nil
	}

	dir, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase, err)
	}
	return &urlResolver{dir: dir}, nil
}

// resolve returns the absolute form of ref and whether it should replace ref.
func (r *urlResolver) resolve(ref string) (string, bool) {
	if !isRelativeRef(ref) {
		return "", false
	}

	if r.remote != nil {
		u, err := url.Parse(ref)
		if err != nil {
			return "", false
		}
		return r.remote.ResolveReference(u).String(), true
	}

	// Keep query and fragment off the filesystem path.
	path, suffix := ref, ""
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		path, suffix = ref[:i], ref[i:]
	}
	absPath := filepath.Join(r.dir, filepath.FromSlash(path))
	if !isPathUnderDir(absPath, r.dir) {
		return "", false
	}
	return pathToFileURL(absPath) + suffix, true
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Parse with body context to avoid the <html><body> wrapper.
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the tree back to a string. Fragments render their
// children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, r *urlResolver) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", r)
		case atom.A:
			rewriteAttr(n, "href", r)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, r)
	}
}

func rewriteAttr(n *html.Node, key string, r *urlResolver) {
	for i, attr := range n.Attr {
		if attr.Key != key {
			continue
		}
		if abs, ok := r.resolve(attr.Val); ok {
			n.Attr[i].Val = abs
		}
	}
}

// isRelativeRef reports whether ref is a relative reference worth resolving.
func isRelativeRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if strings.HasPrefix(ref, "/") || filepath.IsAbs(ref) {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == ""
}

// isPathUnderDir checks if absPath is dir or below it.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
