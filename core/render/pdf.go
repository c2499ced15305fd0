package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/articlescore/core"
)

// pdfColumns are the short labels and widths (mm) of the PDF table. They
// follow core.ReportColumns one to one.
var pdfColumns = []struct {
	label string
	width float64
}{
	{"URL_ID", 24},
	{"URL", 61},
	{"Positive", 14},
	{"Negative", 14},
	{"Polarity", 16},
	{"Subjectivity", 17},
	{"Avg Sent. Len", 17},
	{"% Complex", 15},
	{"Fog Index", 15},
	{"Complex Words", 17},
	{"Total Words", 15},
	{"Syllables", 15},
	{"Pronouns", 14},
	{"Avg Word Len", 17},
}

const (
	pdfRowHeight = 5
	pdfFontSize  = 6.5
)

// PDFRenderer renders the report as a landscape PDF table.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render draws a title block and the metrics table, repeating the header
// on every page.
func (r *PDFRenderer) Render(records []core.Record, meta core.ReportMeta) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() == 1 {
			pdf.SetFont("Helvetica", "B", 16)
			pdf.CellFormat(0, 9, "Article metrics", "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetTextColor(100, 100, 100)
			pdf.CellFormat(0, 5, tr(subtitle(meta, len(records))), "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(3)
		}
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, pdfRowHeight+1, col.label, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", pdfFontSize)
	for i, rec := range records {
		fill := i%2 == 1
		pdf.SetFillColor(248, 248, 248)
		for j, cell := range pdfCells(rec) {
			col := pdfColumns[j]
			align := "R"
			if j < 2 {
				align = "L"
				cell = fit(pdf, tr(cell), col.width-2)
			}
			pdf.CellFormat(col.width, pdfRowHeight, cell, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func subtitle(meta core.ReportMeta, n int) string {
	s := fmt.Sprintf("%d documents", n)
	if meta.RunID != "" {
		s += " | run " + meta.RunID
	}
	if !meta.GeneratedAt.IsZero() {
		s += " | " + meta.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")
	}
	return s
}

// pdfCells formats a record for the table; ratios are rounded to four places.
func pdfCells(rec core.Record) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	return []string{
		rec.URLID,
		rec.URL,
		strconv.Itoa(rec.PositiveScore),
		strconv.Itoa(rec.NegativeScore),
		f(rec.Polarity),
		f(rec.Subjectivity),
		f(rec.AvgSentenceLength),
		f(rec.PercentComplexWords),
		f(rec.FogIndex),
		strconv.Itoa(rec.ComplexWordCount),
		strconv.Itoa(rec.TotalWords),
		strconv.Itoa(rec.SyllableCount),
		strconv.Itoa(rec.PersonalPronouns),
		f(rec.AvgWordLength),
	}
}

// fit truncates s with an ellipsis so it fits in width mm at the current font.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	const ellipsis = "..."
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+ellipsis) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
