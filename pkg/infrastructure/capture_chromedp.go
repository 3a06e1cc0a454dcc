package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromedpCapturer renders the preview HTML in headless Chrome and captures
// the full scrollable page as a PNG at a fixed pixel width. The raster
// export path slices that capture into pages.
type ChromedpCapturer struct {
	execPath string
}

// NewChromedpCapturer returns a capturer using the Chrome binary at execPath.
// An empty path lets chromedp locate the browser itself.
func NewChromedpCapturer(execPath string) *ChromedpCapturer {
	return &ChromedpCapturer{execPath: execPath}
}

func (c *ChromedpCapturer) CapturePNG(ctx context.Context, html string, widthPx int) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, 60*time.Second)
	defer cancel2()

	// Chrome needs a file:// URL for local rendering without a server.
	tmpDir, err := os.MkdirTemp("", "resume-capture-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var buf []byte
	err = chromedp.Run(ctx2,
		chromedp.EmulateViewport(int64(widthPx), 800),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
