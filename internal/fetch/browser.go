// Package fetch - browser.go renders resume pages that hydrate client-side.
// Published Google Docs and Notion pages ship a near-empty document and fill
// in the resume body with JavaScript, so a plain HTTP fetch yields too little
// text to analyze.
package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length for a plain HTTP
// fetch to count as a usable resume. Shorter text means the host most likely
// renders the resume client-side and a headless browser is needed.
const MinContentLength = 500

// renderSettleDelay gives hydration time to finish after the host's content
// container first appears.
const renderSettleDelay = 2 * time.Second

// containerWaitTimeout bounds how long rendering waits for the host's content
// container before snapshotting whatever is on the page.
const containerWaitTimeout = 10 * time.Second

// ShouldUseBrowser returns true if the extracted text is too short to be a
// resume, indicating the page renders its content with JavaScript.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// renderWaitSelector returns the element whose appearance signals that the
// host finished rendering the resume body. Unknown hosts only wait on body.
func renderWaitSelector(platform Platform) string {
	switch platform {
	case PlatformGoogleDocs:
		return ".doc-content, #contents"
	case PlatformNotion:
		return ".notion-page-content"
	case PlatformGitHubPages:
		return "main, article, .resume"
	default:
		return "body"
	}
}

// WithBrowser renders a resume page in a headless browser and returns the
// rendered HTML. The wait strategy is keyed to the hosting platform: after
// the document loads, rendering waits for the host's resume container before
// taking the snapshot. Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, platform Platform, timeout time.Duration, verbose bool) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if verbose {
		log.Printf("[BROWSER] Rendering %s resume page: %s", platform, url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Hydration can outlive the load event. Wait for the host's
			// content container, but an unfamiliar layout is not fatal.
			waitCtx, cancel := context.WithTimeout(ctx, containerWaitTimeout)
			defer cancel()
			_ = chromedp.WaitVisible(renderWaitSelector(platform), chromedp.ByQuery).Do(waitCtx)
			return nil
		}),
		chromedp.Sleep(renderSettleDelay),
		chromedp.OuterHTML("html", &html),
	)

	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}

	return html, nil
}

// BrowserSimple renders with the default timeout, detecting the hosting
// platform from the URL.
func BrowserSimple(ctx context.Context, url string, verbose bool) (string, error) {
	return WithBrowser(ctx, url, DetectPlatform(url), DefaultTimeout, verbose)
}
