package infrastructure

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
)

// PageConfig is the fixed print setup: A4 with half-inch margins.
type PageConfig struct {
	WidthIn  float64
	HeightIn float64
	MarginIn float64
}

var A4 = PageConfig{WidthIn: 8.27, HeightIn: 11.69, MarginIn: 0.5}

// ErrNotPDF is returned when the browser output lacks the PDF signature.
var ErrNotPDF = errors.New("renderer output is not a PDF")

type ChromedpRenderer struct {
	chromePath string
	timeout    time.Duration
	page       PageConfig
}

// NewChromedpRenderer returns a renderer using the Chrome binary at
// chromePath, or the one found on PATH when empty.
func NewChromedpRenderer(chromePath string, timeout time.Duration) *ChromedpRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromedpRenderer{chromePath: chromePath, timeout: timeout, page: A4}
}

// RenderHTMLToPDF prints a self-contained UTF-8 HTML document to PDF.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "cv-")
	if err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, errors.Wrap(err, "write html")
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(r.page.WidthIn).
				WithPaperHeight(r.page.HeightIn).
				WithMarginTop(r.page.MarginIn).
				WithMarginBottom(r.page.MarginIn).
				WithMarginLeft(r.page.MarginIn).
				WithMarginRight(r.page.MarginIn).
				WithPreferCSSPageSize(false).
				WithScale(1).
				WithGenerateDocumentOutline(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "print to pdf")
	}
	if !bytes.HasPrefix(pdfBuf, []byte("%PDF")) {
		return nil, errors.Wrapf(ErrNotPDF, "len=%d", len(pdfBuf))
	}
	return pdfBuf, nil
}
