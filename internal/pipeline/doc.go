// Package pipeline turns composed page text into HTML fragments.
//
// It covers the text-level stages of rendering:
//   - inline Markdown (code spans, emphasis, links) in descriptions and steps via Goldmark
//   - verbatim code blocks with class-based syntax highlighting via Goldmark + Chroma
//   - highlight stylesheet generation from a Chroma style
//   - rewriting relative image and link URLs against a base for offline rendering
//
// Page layout lives in the HTML template; PDF printing is handled by the root
// docpage package using headless Chrome (go-rod).
package pipeline
