package docpage

import "slices"

// Compose maps the catalog and chrome onto the fixed section layout.
//
// Composition is a single stateless pass: it never fails and never mutates
// its inputs. Resolver failures are recovered by substituting a placeholder
// handle and are recorded on Page.Misses. A nil resolver misses every lookup.
// The catalog must already be valid; Compose does not re-validate it.
func Compose(cat *Catalog, chrome Chrome, glyphs GlyphResolver, assets AssetResolver) *Page {
	c := &composition{glyphs: glyphs, assets: assets}

	page := &Page{
		Title: chrome.Title,
		Lang:  chrome.Lang,
		Header: HeaderBlock{
			Brand:      chrome.Title,
			BrandGlyph: c.glyph(chrome.BrandGlyph),
			Nav:        c.nav(chrome),
		},
		Sections: make([]Section, 0, len(sectionOrder)),
	}

	for _, kind := range sectionOrder {
		page.Sections = append(page.Sections, c.section(kind, cat, chrome))
	}

	page.Misses = c.misses
	return page
}

type composition struct {
	glyphs GlyphResolver
	assets AssetResolver
	misses []*ResolutionMiss
}

func (c *composition) section(kind SectionKind, cat *Catalog, chrome Chrome) Section {
	s := Section{Kind: kind, ID: string(kind)}

	switch kind {
	case SectionHero:
		s.Title = chrome.HeroHeading
		s.Hero = &HeroBlock{Heading: chrome.HeroHeading, Intro: chrome.HeroIntro}
	case SectionFeatures:
		s.Features = c.features(cat.features)
	case SectionArchitecture:
		s.Title = chrome.ArchitectureTitle
		asset := c.asset(cat.asset)
		s.Architecture = &asset
	case SectionDocumentation:
		s.ID = DocumentationAnchor
		s.Title = chrome.DocumentationTitle
		s.Snippets = snippetBlocks(cat.snippets)
	case SectionSteps:
		s.Title = chrome.StepsTitle
		s.Steps = stepBlocks(cat.steps)
	case SectionFooter:
		s.Footer = &FooterBlock{
			Brand:      chrome.Title,
			BrandGlyph: c.glyph(chrome.BrandGlyph),
			Links:      slices.Clone(chrome.FooterLinks),
			Copyright:  chrome.Copyright,
			Updated:    chrome.Updated,
		}
	}

	return s
}

func (c *composition) nav(chrome Chrome) []NavItem {
	var nav []NavItem
	if chrome.RepositoryURL != "" {
		item := NavItem{Label: chrome.RepositoryLabel, URL: chrome.RepositoryURL}
		if chrome.RepositoryGlyph != "" {
			g := c.glyph(chrome.RepositoryGlyph)
			item.Glyph = &g
		}
		nav = append(nav, item)
	}
	return append(nav, NavItem{Label: "Documentation", URL: "#" + DocumentationAnchor})
}

func (c *composition) features(cards []FeatureCard) []FeatureBlock {
	blocks := make([]FeatureBlock, len(cards))
	for i, f := range cards {
		blocks[i] = FeatureBlock{
			Title:       f.Title,
			Description: f.Description,
			Glyph:       c.glyph(f.GlyphName),
		}
	}
	return blocks
}

func snippetBlocks(snippets []CodeSnippet) []SnippetBlock {
	blocks := make([]SnippetBlock, len(snippets))
	for i, s := range snippets {
		blocks[i] = SnippetBlock{ID: s.ID, Heading: s.Heading, Language: s.Language, Body: s.Body}
	}
	return blocks
}

func stepBlocks(steps []ImplementationStep) []StepBlock {
	blocks := make([]StepBlock, len(steps))
	for i, s := range steps {
		blocks[i] = StepBlock{
			Number:   i + 1,
			Heading:  s.Heading,
			Summary:  s.Summary,
			SubSteps: slices.Clone(s.SubSteps),
		}
	}
	return blocks
}

// glyph resolves name, falling back to a placeholder handle on failure.
func (c *composition) glyph(name string) GlyphHandle {
	if c.glyphs == nil {
		return c.glyphMiss(name, ErrGlyphNotFound)
	}
	h, err := c.glyphs.ResolveGlyph(name)
	if err != nil {
		return c.glyphMiss(name, err)
	}
	if h.Name == "" {
		h.Name = name
	}
	return h
}

func (c *composition) glyphMiss(name string, err error) GlyphHandle {
	c.misses = append(c.misses, &ResolutionMiss{Kind: MissGlyph, Ref: name, Err: err})
	return GlyphHandle{Name: name, Placeholder: true}
}

// asset resolves the architecture image; the alt text always comes from the catalog.
func (c *composition) asset(a ArchitectureAsset) AssetHandle {
	var (
		h   AssetHandle
		err error
	)
	if c.assets == nil {
		err = ErrAssetUnresolved
	} else {
		h, err = c.assets.ResolveAsset(a.SourceURI)
	}
	if err != nil {
		c.misses = append(c.misses, &ResolutionMiss{Kind: MissAsset, Ref: a.SourceURI, Err: err})
		return AssetHandle{URI: a.SourceURI, Alt: a.AltText, Placeholder: true}
	}
	h.Alt = a.AltText
	return h
}
