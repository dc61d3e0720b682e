// Package docpage renders the MicroDeploy documentation page: a fixed
// catalog of feature cards, configuration snippets and implementation steps
// laid out as one static HTML5 document, optionally printed to PDF.
//
// # Quick Start
//
// Render the built-in content with the default chrome:
//
//	r, err := docpage.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := r.RenderCatalog(ctx, docpage.MustDefaultCatalog(), docpage.DefaultChrome())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", []byte(res.HTML), 0644)
//
// # Composition
//
// Compose maps a Catalog and a Chrome onto the section layout
// (hero, features, architecture, documentation, steps, footer). It is a
// pure function of its inputs apart from resolver calls. When a
// GlyphResolver or AssetResolver fails, the affected block gets a
// placeholder handle and the failure is recorded on Page.Misses; the page
// is still produced.
//
//	page := docpage.Compose(cat, chrome, r.Glyphs(), docpage.URIResolver{})
//	for _, m := range page.Misses {
//	    fmt.Println(m.Kind, m.Ref)
//	}
//
// # Catalog Validation
//
// NewCatalog checks every entry and returns a *ConfigurationFault listing
// all violations at once:
//
//	_, err := docpage.NewCatalog(features, snippets, steps, asset,
//	    docpage.WithGlyphCheck(docpage.DefaultGlyphSet()))
//	if docpage.IsConfigurationFault(err) {
//	    // fix content before rendering
//	}
//
// # Rendering
//
// The Renderer fills an embedded html/template with the composed page.
// Inline Markdown in descriptions and sub-steps (code spans, emphasis) is
// rendered by Goldmark; snippet bodies become code blocks highlighted by
// Chroma with class-based CSS. Use options to customize:
//
//	r, err := docpage.NewRenderer(
//	    docpage.WithStyle("plain"),
//	    docpage.WithHighlightStyle("monokai"),
//	    docpage.WithAssetPath("/path/to/overrides"),
//	    docpage.WithLogger(logger),
//	)
//
// # PDF Export
//
// PDFExporter prints rendered HTML through headless Chrome (go-rod):
//
//	exp := docpage.NewPDFExporter(docpage.WithPDFTimeout(time.Minute))
//	defer exp.Close()
//	pdf, err := exp.Export(ctx, docpage.PDFInput{
//	    HTML: res.HTML,
//	    Page: &docpage.PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5},
//	})
//
// # Error Handling
//
// Sentinel errors support errors.Is:
//
//	if errors.Is(err, docpage.ErrBrowserConnect) {
//	    // Chrome not available
//	}
package docpage
