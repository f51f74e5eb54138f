package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"modern-stitch/utils"
)

//go:embed templates/lookbook.html
var lookbookTemplates embed.FS

const brandName = "MODERN-STITCH"

// detectChromePath detects the path to Chrome/Chromium executable.
// The configured path wins when it exists, then common installation paths are checked.
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LookbookService renders the printable lookbook
type LookbookService struct {
	catalog    *CatalogService
	tmpl       *template.Template
	chromePath string
	timeout    time.Duration
	logger     *zap.Logger
}

type lookbookLook struct {
	ImageURL    string
	Location    string
	ProductName string
	Price       string
	Description string
}

// NewLookbookService parses the embedded template
func NewLookbookService(catalog *CatalogService, chromePath string, logger *zap.Logger) (*LookbookService, error) {
	if catalog == nil {
		return nil, fmt.Errorf("lookbook service: catalog is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.ParseFS(lookbookTemplates, "templates/lookbook.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse lookbook template: %w", err)
	}
	return &LookbookService{
		catalog:    catalog,
		tmpl:       tmpl,
		chromePath: chromePath,
		timeout:    30 * time.Second,
		logger:     logger,
	}, nil
}

// RenderHTML renders one page per lookbook entry. Entries are matched to products by name
// to show price and description; unmatched entries render without them.
func (s *LookbookService) RenderHTML(_ context.Context) (string, error) {
	byName := make(map[string]int)
	products := s.catalog.Products()
	for i, p := range products {
		byName[p.Name] = i
	}

	entries := s.catalog.Lookbook()
	looks := make([]lookbookLook, 0, len(entries))
	for _, item := range entries {
		look := lookbookLook{
			ImageURL:    item.ImageURL,
			Location:    item.Location,
			ProductName: item.ProductName,
		}
		if idx, ok := byName[item.ProductName]; ok {
			look.Price = utils.FormatUSD(products[idx].Price)
			look.Description = products[idx].Description
		}
		looks = append(looks, look)
	}

	data := struct {
		Brand           string
		BrandStoryImage string
		GeneratedAt     string
		Looks           []lookbookLook
	}{
		Brand:           brandName,
		BrandStoryImage: s.catalog.BrandStoryImage(),
		GeneratedAt:     time.Now().Format("January 2, 2006"),
		Looks:           looks,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the rendered lookbook with headless Chrome
func (s *LookbookService) GeneratePDF(ctx context.Context) ([]byte, error) {
	htmlContent, err := s.RenderHTML(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		s.logger.Warn("no chrome binary found, relying on chromedp lookup")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// wait for fonts and images, giving up on each image after 5s
		chromedp.Evaluate(`
			Promise.all([
				document.fonts.ready,
				Promise.all(Array.from(document.querySelectorAll('img')).map(img => new Promise(resolve => {
					if (img.complete && img.naturalWidth > 0) { resolve(); return; }
					const timeout = setTimeout(resolve, 5000);
					img.onload = () => { clearTimeout(timeout); resolve(); };
					img.onerror = () => { clearTimeout(timeout); resolve(); };
				})))
			]).then(() => true);
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.logger.Info("lookbook pdf generated", zap.Int("bytes", len(pdfBuf)))
	return pdfBuf, nil
}
