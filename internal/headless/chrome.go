// Package headless starts headless Chrome sessions for page rendering and PDF printing.
// Requires Chrome/Chromium to be installed on the system.
package headless

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a whole browser session
const DefaultTimeout = 30 * time.Second

// AllocatorOptions returns the exec allocator flags used for every session
func AllocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
}

// NewContext starts a browser and returns a tab context bounded by timeout.
// The returned cancel func shuts the browser down.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, AllocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)

	return timeoutCtx, func() {
		cancelTimeout()
		cancelBrowser()
		cancelAlloc()
	}
}
