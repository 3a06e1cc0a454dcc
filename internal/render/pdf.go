package render

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page geometry in points (US Letter, 8.5in x 11in).
const (
	pageMargin = 40

	nameLineH    = 22
	contactLineH = 12
	titleLineH   = 18
	textLineH    = 13
	footerLineH  = 12

	bulletIndent = 15
	bulletWidth  = 10

	sectionGap = 8
	entryGap   = 6
)

// pdfWriter wraps an fpdf document with the measurements the layout rules
// need. All text goes through tr so the cp1252 core fonts render bullets and
// accented characters.
type pdfWriter struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	usable float64
	left   float64
	bottom float64
	pageH  float64
}

// WritePDF renders the layout into a paginated US Letter PDF. Content flows
// onto additional pages automatically; a whole entry moves to the next page
// when it would otherwise straddle the boundary and fits on a page by
// itself.
func WritePDF(w io.Writer, l Layout) error {
	pw := newPDFWriter()

	if l.Placeholder {
		pw.placeholder()
	} else {
		pw.header(l)
		for _, s := range l.Sections {
			pw.section(s)
		}
	}

	return pw.pdf.Output(w)
}

func newPDFWriter() *pdfWriter {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	return &pdfWriter{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		usable: pageW - 2*pageMargin,
		left:   pageMargin,
		bottom: pageH - pageMargin,
		pageH:  pageH,
	}
}

func (pw *pdfWriter) placeholder() {
	pdf := pw.pdf
	pdf.SetY(pw.pageH / 2.5)
	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 18, pw.tr(PlaceholderHeading), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, pw.tr(PlaceholderNote), "", 1, "C", false, 0, "")
}

func (pw *pdfWriter) header(l Layout) {
	pdf := pw.pdf
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, nameLineH, pw.tr(l.Name), "", 1, "C", false, 0, "")
	if l.ContactLine != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(51, 51, 51)
		pdf.CellFormat(0, contactLineH, pw.tr(l.ContactLine), "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(6)
}

func (pw *pdfWriter) section(s Section) {
	pdf := pw.pdf

	// Do not leave a section header stranded at the bottom of a page.
	first := pw.firstBlockHeight(s)
	if pdf.GetY()+titleLineH+4+first > pw.bottom {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, titleLineH, pw.tr(strings.ToUpper(s.Title)), "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	if s.Paragraph != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, textLineH, pw.tr(s.Paragraph), "", "L", false)
	}

	if len(s.Lines) > 0 {
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range s.Lines {
			pdf.MultiCell(0, textLineH, pw.tr(line), "", "L", false)
		}
	}

	for _, e := range s.Entries {
		h := pw.entryHeight(e)
		// Keep-together: break early when the entry would split but fits on
		// a fresh page. Oversized entries are left to the automatic page
		// break since no placement avoids splitting them.
		if pdf.GetY()+h > pw.bottom && h <= pw.bottom-pageMargin {
			pdf.AddPage()
		}
		pw.entry(e)
		pdf.Ln(entryGap)
	}

	pdf.Ln(sectionGap)
}

// firstBlockHeight is the height of the first content block after a section
// header, used to avoid orphaned headers.
func (pw *pdfWriter) firstBlockHeight(s Section) float64 {
	switch {
	case s.Paragraph != "":
		pw.pdf.SetFont("Helvetica", "", 10)
		return float64(len(pw.pdf.SplitText(pw.tr(s.Paragraph), pw.usable))) * textLineH
	case len(s.Lines) > 0:
		pw.pdf.SetFont("Helvetica", "", 10)
		return float64(len(pw.pdf.SplitText(pw.tr(s.Lines[0]), pw.usable))) * textLineH
	case len(s.Entries) > 0:
		return pw.entryHeight(s.Entries[0])
	}
	return 0
}

func (pw *pdfWriter) entryHeight(e Entry) float64 {
	pdf := pw.pdf
	h := float64(textLineH) // title line
	if e.Subtitle != "" {
		h += textLineH
	}
	if e.Body != "" {
		pdf.SetFont("Helvetica", "", 10)
		h += float64(len(pdf.SplitText(pw.tr(e.Body), pw.usable))) * textLineH
	}
	if len(e.Bullets) > 0 {
		pdf.SetFont("Helvetica", "", 10)
		bw := pw.usable - bulletIndent - bulletWidth
		for _, b := range e.Bullets {
			h += float64(len(pdf.SplitText(pw.tr(b), bw))) * textLineH
		}
	}
	if e.Footer != "" {
		h += footerLineH
	}
	return h
}

func (pw *pdfWriter) entry(e Entry) {
	pdf := pw.pdf

	asideW := 0.0
	if e.Aside != "" {
		if e.AsideItalic {
			pdf.SetFont("Helvetica", "I", 9)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		asideW = pdf.GetStringWidth(pw.tr(e.Aside)) + 2
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(pw.usable-asideW, textLineH, pw.tr(e.Title), "", 0, "L", false, 0, "")
	if e.Aside != "" {
		if e.AsideItalic {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(85, 85, 85)
		} else {
			pdf.SetTextColor(51, 51, 51)
		}
		pdf.CellFormat(asideW, textLineH, pw.tr(e.Aside), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(textLineH)

	if e.Subtitle != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, textLineH, pw.tr(e.Subtitle), "", 1, "L", false, 0, "")
	}

	if e.Body != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, textLineH, pw.tr(e.Body), "", "L", false)
	}

	if len(e.Bullets) > 0 {
		pdf.SetFont("Helvetica", "", 10)
		for _, b := range e.Bullets {
			pdf.SetX(pw.left + bulletIndent)
			pdf.CellFormat(bulletWidth, textLineH, pw.tr("•"), "", 0, "L", false, 0, "")
			pdf.MultiCell(pw.usable-bulletIndent-bulletWidth, textLineH, pw.tr(b), "", "L", false)
		}
	}

	if e.Footer != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(85, 85, 85)
		pdf.CellFormat(0, footerLineH, pw.tr(e.Footer), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}
