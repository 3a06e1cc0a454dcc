package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

// Letter page size in points.
const (
	letterWidthPt  = 612
	letterHeightPt = 792
)

// CaptureWidthPx is the fixed horizontal resolution the preview is captured
// at (8.5in at 150dpi).
const CaptureWidthPx = 1275

type subImager interface {
	SubImage(image.Rectangle) image.Image
}

// WriteRasterPDF slices a full-page PNG capture of the preview into
// page-height bands and emits one PDF page per band. The cut is blind to
// content: an entry that crosses a band boundary is split across pages.
// That is a known limitation of this path; the structured exporter is the
// one with keep-together semantics.
func WriteRasterPDF(w io.Writer, capture []byte) error {
	img, err := png.Decode(bytes.NewReader(capture))
	if err != nil {
		return fmt.Errorf("decode capture: %w", err)
	}

	si, ok := img.(subImager)
	if !ok {
		cp := image.NewRGBA(img.Bounds())
		draw.Draw(cp, cp.Bounds(), img, img.Bounds().Min, draw.Src)
		si = cp
	}

	bounds := img.Bounds()
	widthPx := bounds.Dx()
	heightPx := bounds.Dy()
	if widthPx == 0 || heightPx == 0 {
		return fmt.Errorf("capture is empty")
	}

	// Band height in pixels corresponding to one full page at the capture's
	// horizontal resolution.
	bandPx := widthPx * letterHeightPt / letterWidthPt
	scale := float64(letterWidthPt) / float64(widthPx)

	pdf := fpdf.New("P", "pt", "Letter", "")
	opts := fpdf.ImageOptions{ImageType: "PNG"}

	for top := bounds.Min.Y; top < bounds.Max.Y; top += bandPx {
		bottom := top + bandPx
		if bottom > bounds.Max.Y {
			bottom = bounds.Max.Y
		}
		band := si.SubImage(image.Rect(bounds.Min.X, top, bounds.Max.X, bottom))

		var buf bytes.Buffer
		if err := png.Encode(&buf, band); err != nil {
			return fmt.Errorf("encode band: %w", err)
		}

		name := fmt.Sprintf("band-%d", top)
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, letterWidthPt, float64(bottom-top)*scale, false, opts, 0, "")
	}

	return pdf.Output(w)
}
