package docpage

// SectionKind identifies the single content kind a page section groups.
type SectionKind string

// Section kinds, one per block of the page layout.
const (
	SectionHero          SectionKind = "hero"
	SectionFeatures      SectionKind = "features"
	SectionArchitecture  SectionKind = "architecture"
	SectionDocumentation SectionKind = "documentation"
	SectionSteps         SectionKind = "steps"
	SectionFooter        SectionKind = "footer"
)

// DocumentationAnchor is the fragment identifier of the documentation section.
// Navigation links elsewhere on the page point at "#" + DocumentationAnchor.
const DocumentationAnchor = "documentation"

// sectionOrder is the top-to-bottom layout of every composed page.
var sectionOrder = [...]SectionKind{
	SectionHero,
	SectionFeatures,
	SectionArchitecture,
	SectionDocumentation,
	SectionSteps,
	SectionFooter,
}

// SectionOrder returns the fixed rendering order of page sections.
func SectionOrder() []SectionKind {
	out := make([]SectionKind, len(sectionOrder))
	copy(out, sectionOrder[:])
	return out
}

// FeatureCard describes one capability shown in the feature grid.
type FeatureCard struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	GlyphName   string `yaml:"glyph"`
}

// CodeSnippet is an illustrative configuration file shown verbatim.
// Body is whitespace-significant and never parsed or executed.
type CodeSnippet struct {
	ID       string `yaml:"id"`
	Heading  string `yaml:"heading"`
	Language string `yaml:"language"`
	Body     string `yaml:"body"`
}

// ImplementationStep is one stage of the implementation guide.
// SubSteps are chronological; their order is part of the content.
type ImplementationStep struct {
	Heading  string   `yaml:"heading"`
	Summary  string   `yaml:"summary"`
	SubSteps []string `yaml:"subSteps"`
}

// ArchitectureAsset references the externally hosted architecture diagram.
type ArchitectureAsset struct {
	SourceURI string `yaml:"src"`
	AltText   string `yaml:"alt"`
}

// Link is a labelled hyperlink in the page chrome.
type Link struct {
	Label string
	URL   string
}

// Chrome holds the page identity around the catalog content:
// header and footer branding, hero copy and section titles.
type Chrome struct {
	Title           string // brand name in header, footer and <title>
	Lang            string
	BrandGlyph      string
	RepositoryURL   string
	RepositoryLabel string
	RepositoryGlyph string

	HeroHeading string
	HeroIntro   string

	ArchitectureTitle  string
	DocumentationTitle string
	StepsTitle         string

	FooterLinks []Link
	Copyright   string
	Updated     string // shown as "Last updated <Updated>" when set
}

// DefaultChrome returns the MicroDeploy page identity.
func DefaultChrome() Chrome {
	return Chrome{
		Title:           "MicroDeploy",
		Lang:            "en",
		BrandGlyph:      "workflow",
		RepositoryURL:   "https://github.com",
		RepositoryLabel: "GitHub",
		RepositoryGlyph: "github",

		HeroHeading: "Microservices Deployment Automation",
		HeroIntro: "A comprehensive solution for automating the deployment of microservices using GitLab CI/CD, " +
			"Docker, Kubernetes with integrated monitoring via Prometheus and Grafana.",

		ArchitectureTitle:  "Architecture Overview",
		DocumentationTitle: "Project Documentation",
		StepsTitle:         "Implementation Steps",

		FooterLinks: []Link{
			{Label: "GitHub", URL: "#"},
			{Label: "Documentation", URL: "#"},
			{Label: "Contact", URL: "#"},
		},
		Copyright: "© 2025 MicroDeploy. All rights reserved.",
	}
}

// GlyphHandle is a renderable glyph. A placeholder handle carries no markup
// and marks a glyph that could not be resolved.
type GlyphHandle struct {
	Name        string
	Markup      string // inline SVG
	Placeholder bool
}

// AssetHandle is a renderable reference to an external asset.
// A placeholder handle marks a reference that could not be resolved.
type AssetHandle struct {
	URI         string
	Alt         string
	Placeholder bool
}

// GlyphResolver looks up a glyph by symbolic name.
type GlyphResolver interface {
	ResolveGlyph(name string) (GlyphHandle, error)
}

// GlyphResolverFunc adapts a function to GlyphResolver.
type GlyphResolverFunc func(name string) (GlyphHandle, error)

// ResolveGlyph calls f(name).
func (f GlyphResolverFunc) ResolveGlyph(name string) (GlyphHandle, error) {
	return f(name)
}

// AssetResolver turns an asset URI into a renderable handle.
type AssetResolver interface {
	ResolveAsset(uri string) (AssetHandle, error)
}

// AssetResolverFunc adapts a function to AssetResolver.
type AssetResolverFunc func(uri string) (AssetHandle, error)

// ResolveAsset calls f(uri).
func (f AssetResolverFunc) ResolveAsset(uri string) (AssetHandle, error) {
	return f(uri)
}

// Page is the composed structure of the whole document.
type Page struct {
	Title    string
	Lang     string
	Header   HeaderBlock
	Sections []Section

	// Misses lists every reference that fell back to a placeholder.
	Misses []*ResolutionMiss
}

// Section returns the first section of the given kind, or nil.
func (p *Page) Section(kind SectionKind) *Section {
	for i := range p.Sections {
		if p.Sections[i].Kind == kind {
			return &p.Sections[i]
		}
	}
	return nil
}

// Kinds returns the section kinds in page order.
func (p *Page) Kinds() []SectionKind {
	kinds := make([]SectionKind, len(p.Sections))
	for i, s := range p.Sections {
		kinds[i] = s.Kind
	}
	return kinds
}

// Section is one block of the layout. Exactly one content field is set,
// matching Kind.
type Section struct {
	Kind  SectionKind
	ID    string
	Title string

	Hero         *HeroBlock
	Features     []FeatureBlock
	Architecture *AssetHandle
	Snippets     []SnippetBlock
	Steps        []StepBlock
	Footer       *FooterBlock
}

// HeaderBlock is the page header: brand plus navigation.
type HeaderBlock struct {
	Brand      string
	BrandGlyph GlyphHandle
	Nav        []NavItem
}

// NavItem is a header navigation entry; Glyph is nil for text-only links.
type NavItem struct {
	Label string
	URL   string
	Glyph *GlyphHandle
}

// HeroBlock is the introductory heading and paragraph.
type HeroBlock struct {
	Heading string
	Intro   string
}

// FeatureBlock is a composed feature card.
type FeatureBlock struct {
	Title       string
	Description string
	Glyph       GlyphHandle
}

// SnippetBlock is a composed code snippet. Body is the catalog body, untouched.
type SnippetBlock struct {
	ID       string
	Heading  string
	Language string
	Body     string
}

// StepBlock is a composed implementation step, numbered from 1.
type StepBlock struct {
	Number   int
	Heading  string
	Summary  string
	SubSteps []string
}

// FooterBlock is the page footer.
type FooterBlock struct {
	Brand      string
	BrandGlyph GlyphHandle
	Links      []Link
	Copyright  string
	Updated    string
}
