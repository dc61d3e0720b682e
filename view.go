package docpage

import (
	"context"
	"fmt"
	"html/template"
)

// View types mirror what templates/page.html reads. Text that may carry
// inline Markdown is pre-rendered to template.HTML; everything else is
// escaped by html/template.

type pageView struct {
	Title    string
	Lang     string
	CSS      template.CSS
	Header   headerView
	Sections []sectionView
	Footer   *footerView
}

type glyphView struct {
	Name        string
	SVG         template.HTML
	Placeholder bool
}

type navView struct {
	Label string
	URL   string
	Glyph *glyphView
}

type headerView struct {
	Brand string
	Glyph glyphView
	Nav   []navView
}

type heroView struct {
	Heading string
	Intro   template.HTML
}

type featureView struct {
	Title       string
	Description template.HTML
	Glyph       glyphView
}

type assetView struct {
	URI         string
	Alt         string
	Placeholder bool
}

type snippetView struct {
	ID       string
	Heading  string
	Language string
	Code     template.HTML
}

type stepView struct {
	Number   int
	Heading  string
	Summary  template.HTML
	SubSteps []template.HTML
}

type sectionView struct {
	Kind         string
	ID           string
	Title        string
	Hero         *heroView
	Features     []featureView
	Architecture *assetView
	Snippets     []snippetView
	Steps        []stepView
}

type footerView struct {
	Brand     string
	Glyph     glyphView
	Links     []Link
	Copyright string
	Updated   string
}

func (r *Renderer) buildView(ctx context.Context, page *Page) (*pageView, error) {
	v := &pageView{
		Title: page.Title,
		Lang:  page.Lang,
		CSS:   template.CSS(r.css), // #nosec G203 -- sanitized in loadCSS
		Header: headerView{
			Brand: page.Header.Brand,
			Glyph: toGlyphView(page.Header.BrandGlyph),
		},
	}

	for _, item := range page.Header.Nav {
		nv := navView{Label: item.Label, URL: item.URL}
		if item.Glyph != nil {
			g := toGlyphView(*item.Glyph)
			nv.Glyph = &g
		}
		v.Header.Nav = append(v.Header.Nav, nv)
	}

	for _, s := range page.Sections {
		if s.Kind == SectionFooter {
			if s.Footer != nil {
				v.Footer = &footerView{
					Brand:     s.Footer.Brand,
					Glyph:     toGlyphView(s.Footer.BrandGlyph),
					Links:     s.Footer.Links,
					Copyright: s.Footer.Copyright,
					Updated:   s.Footer.Updated,
				}
			}
			continue
		}

		sv, err := r.sectionView(ctx, s)
		if err != nil {
			return nil, err
		}
		v.Sections = append(v.Sections, sv)
	}

	return v, nil
}

func (r *Renderer) sectionView(ctx context.Context, s Section) (sectionView, error) {
	sv := sectionView{Kind: string(s.Kind), ID: s.ID, Title: s.Title}

	if s.Hero != nil {
		intro, err := r.inlineHTML(ctx, s.Hero.Intro)
		if err != nil {
			return sv, err
		}
		sv.Hero = &heroView{Heading: s.Hero.Heading, Intro: intro}
	}

	for _, f := range s.Features {
		desc, err := r.inlineHTML(ctx, f.Description)
		if err != nil {
			return sv, err
		}
		sv.Features = append(sv.Features, featureView{
			Title:       f.Title,
			Description: desc,
			Glyph:       toGlyphView(f.Glyph),
		})
	}

	if s.Architecture != nil {
		sv.Architecture = &assetView{
			URI:         s.Architecture.URI,
			Alt:         s.Architecture.Alt,
			Placeholder: s.Architecture.Placeholder,
		}
	}

	for _, sn := range s.Snippets {
		code, err := r.code.RenderCode(ctx, sn.Language, sn.Body)
		if err != nil {
			return sv, fmt.Errorf("%w: snippet %q: %v", ErrRender, sn.ID, err)
		}
		sv.Snippets = append(sv.Snippets, snippetView{
			ID:       sn.ID,
			Heading:  sn.Heading,
			Language: sn.Language,
			Code:     template.HTML(code), // #nosec G203 -- produced by goldmark with escaping
		})
	}

	for _, st := range s.Steps {
		summary, err := r.inlineHTML(ctx, st.Summary)
		if err != nil {
			return sv, err
		}
		step := stepView{Number: st.Number, Heading: st.Heading, Summary: summary}
		for _, sub := range st.SubSteps {
			h, err := r.inlineHTML(ctx, sub)
			if err != nil {
				return sv, err
			}
			step.SubSteps = append(step.SubSteps, h)
		}
		sv.Steps = append(sv.Steps, step)
	}

	return sv, nil
}

func (r *Renderer) inlineHTML(ctx context.Context, text string) (template.HTML, error) {
	out, err := r.inline.ToInlineHTML(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return template.HTML(out), nil // #nosec G203 -- goldmark omits raw HTML
}

func toGlyphView(h GlyphHandle) glyphView {
	return glyphView{
		Name:        h.Name,
		SVG:         template.HTML(h.Markup), // #nosec G203 -- glyphs come from asset files
		Placeholder: h.Placeholder || h.Markup == "",
	}
}
