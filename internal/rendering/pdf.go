package rendering

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-builder/internal/headless"
)

// US Letter in inches
const (
	letterWidth  = 8.5
	letterHeight = 11
)

// PDFPrinter converts an HTML document into PDF bytes
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromePrinter prints HTML through headless Chrome
type ChromePrinter struct {
	Timeout time.Duration
}

// NewChromePrinter creates a printer; a zero timeout uses the headless default
func NewChromePrinter(timeout time.Duration) *ChromePrinter {
	return &ChromePrinter{Timeout: timeout}
}

// PrintPDF loads html into a blank tab and prints it on Letter paper with backgrounds
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	browserCtx, cancel := headless.NewContext(ctx, p.Timeout)
	defer cancel()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(letterWidth).
				WithPaperHeight(letterHeight).
				WithPreferCSSPageSize(true).
				Do(ctx)
			pdf = data
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "failed to print PDF", Cause: err}
	}

	log.Debug().Int("bytes", len(pdf)).Dur("elapsed", time.Since(start)).Msg("printed pdf")
	return pdf, nil
}
