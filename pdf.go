package docpage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docpage/internal/fileutil"
	"github.com/alnah/go-docpage/internal/pipeline"
	"github.com/alnah/go-docpage/internal/process"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// DefaultPDFTimeout bounds one export when the context has no deadline.
const DefaultPDFTimeout = 30 * time.Second

// paperSizes holds portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that the settings are usable.
func (p *PageSettings) Validate() error {
	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns paper width and height in inches for the orientation.
func (p *PageSettings) dimensions() (width, height float64) {
	wh := paperSizes[strings.ToLower(p.Size)]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return wh[1], wh[0]
	}
	return wh[0], wh[1]
}

// PDFInput is one document to print.
type PDFInput struct {
	HTML string
	Page *PageSettings // nil = DefaultPageSettings

	// BaseURL resolves relative image and link references: an http(s) URL
	// or a local directory. The page is printed from a temp file, so
	// relative references need it.
	BaseURL string
}

// pdfRenderer abstracts printing an HTML file so tests can run without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error)
	Close() error
}

// PDFExporter prints rendered pages to PDF through headless Chrome.
// It owns one browser, launched lazily on the first export. Call Close when done.
type PDFExporter struct {
	renderer pdfRenderer
	logger   *slog.Logger
}

// PDFOption configures a PDFExporter.
type PDFOption func(*pdfExporterConfig)

type pdfExporterConfig struct {
	timeout time.Duration
	logger  *slog.Logger
}

// WithPDFTimeout sets how long page load and printing may take.
// Panics if d is not positive.
func WithPDFTimeout(d time.Duration) PDFOption {
	if d <= 0 {
		panic("docpage: WithPDFTimeout duration must be positive")
	}
	return func(c *pdfExporterConfig) {
		c.timeout = d
	}
}

// WithPDFLogger sets the exporter's logger.
func WithPDFLogger(l *slog.Logger) PDFOption {
	return func(c *pdfExporterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewPDFExporter creates a PDFExporter. Rod downloads Chromium on first use
// unless ROD_BROWSER_BIN points at an installed browser.
func NewPDFExporter(opts ...PDFOption) *PDFExporter {
	cfg := pdfExporterConfig{timeout: DefaultPDFTimeout, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &PDFExporter{renderer: newRodRenderer(cfg.timeout), logger: cfg.logger}
}

// Export prints input.HTML and returns the PDF bytes.
func (e *PDFExporter) Export(ctx context.Context, input PDFInput) ([]byte, error) {
	if strings.TrimSpace(input.HTML) == "" {
		return nil, ErrEmptyHTML
	}

	page := input.Page
	if page == nil {
		page = DefaultPageSettings()
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	htmlContent, err := pipeline.RewriteRelativeURLs(input.HTML, input.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	start := time.Now()
	pdf, err := e.renderer.RenderFromFile(ctx, tmpPath, page)
	if err != nil {
		return nil, err
	}

	e.logger.LogAttrs(ctx, slog.LevelInfo, "pdf exported",
		slog.String("size", page.Size),
		slog.String("orientation", page.Orientation),
		slog.Int("bytes", len(pdf)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return pdf, nil
}

// Close releases the browser.
func (e *PDFExporter) Close() error {
	if e.renderer == nil {
		return nil
	}
	return e.renderer.Close()
}

// rodRenderer implements pdfRenderer using go-rod.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.shutdownLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// Close closes the browser and kills its process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.shutdownLauncher()
	return err
}

func (r *rodRenderer) shutdownLauncher() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillTree(pid)
		r.launcher.Kill()
		r.launcher.Cleanup()
	}
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	tab, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = tab.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	p := tab.Context(ctx).Timeout(timeout)

	// The architecture image is remote; wait for it as well as the DOM.
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := p.PDF(buildPDFOptions(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions maps page settings onto Chrome's print parameters.
func buildPDFOptions(page *PageSettings) *proto.PagePrintToPDF {
	width, height := page.dimensions()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(page.Margin),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// Compile-time interface check.
var _ pdfRenderer = (*rodRenderer)(nil)
