package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfBrand      = "Themis BioProfiling"
	pdfRowHeight  = 7.0
	pdfPageMargin = 10.0
)

type pdfRenderer struct{}

func (pdfRenderer) Extension() string   { return "pdf" }
func (pdfRenderer) ContentType() string { return "application/pdf" }

func (pdfRenderer) Render(w io.Writer, doc *Document) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfPageMargin, pdfPageMargin, pdfPageMargin)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, 10, pdfBrand, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 8, "Generated on: "+stamp(doc.GeneratedAt), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pdfPageMargin

	for _, s := range doc.Sections {
		if s.Heading != "" {
			pdf.Ln(3)
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 8, tr(s.Heading), "", 1, "L", false, 0, "")
		}
		widths := columnWidths(s, usable)

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(220, 230, 241)
		for i, col := range s.Columns {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(col), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		if len(s.Rows) == 0 {
			pdf.CellFormat(usable, pdfRowHeight, "No records found", "1", 1, "C", false, 0, "")
			continue
		}
		for _, row := range s.Rows {
			for i := range s.Columns {
				var cell string
				if i < len(row) {
					cell = fitCell(pdf, tr(row[i]), widths[i])
				}
				pdf.CellFormat(widths[i], pdfRowHeight, cell, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

func columnWidths(s Section, usable float64) []float64 {
	n := len(s.Columns)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	var total float64
	if len(s.Widths) == n {
		for _, w := range s.Widths {
			total += w
		}
	}
	for i := range out {
		if total > 0 {
			out[i] = usable * s.Widths[i] / total
		} else {
			out[i] = usable / float64(n)
		}
	}
	return out
}

// fitCell trims text with an ellipsis so it stays inside a cell of width w.
func fitCell(pdf *fpdf.Fpdf, text string, w float64) string {
	limit := w - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	r := []rune(text)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
