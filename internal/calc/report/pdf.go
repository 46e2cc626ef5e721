package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/phpdave11/gofpdf"

	"Calcform/internal/units"
)

type column struct {
	title string
	width float64
	align string
}

var pdfColumns = []column{
	{"No.", 10, "C"},
	{"Type", 28, "L"},
	{"Measurements", 62, "L"},
	{"Qty", 12, "C"},
	{"Unit m3", 20, "R"},
	{"Total m3", 20, "R"},
	{"Remarks", 38, "L"},
}

const (
	lineH  = 5.0
	bottom = 15.0
)

func GeneratePDF(data Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, bottom)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(data.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []struct{ k, v string }{
		{"Project", data.Project},
		{"Customer", data.Customer},
		{"Site", data.Site},
		{"Author", data.Author},
		{"Date", data.Date},
	} {
		if line.v == "" {
			continue
		}
		pdf.Cell(0, 6, tr(fmt.Sprintf("%s: %s", line.k, line.v)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	tableHeader(pdf)
	pdf.SetFont("Helvetica", "", 9)
	for _, r := range data.Rows {
		tableRow(pdf, tr, r)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Total required volume: %s m3", units.FormatVolume(data.Summary.TotalVolume)))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Rows: %d", data.Summary.RowCount))
	pdf.Ln(6)
	if data.Summary.Flagged > 0 {
		pdf.SetTextColor(180, 0, 0)
		pdf.Cell(0, 6, fmt.Sprintf("Unresolved rows (not in total): %d", data.Summary.Flagged))
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}
	if data.Notes != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 6, tr(data.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func tableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(51, 51, 51)
	pdf.SetTextColor(255, 255, 255)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

// tableRow draws one entry. Measurements and remarks wrap, so the row height
// follows the longest wrapped cell and the header repeats on a new page.
func tableRow(pdf *gofpdf.Fpdf, tr func(string) string, r Row) {
	unit, total := units.FormatVolume(r.UnitVolume), units.FormatVolume(r.TotalVolume)
	if r.Flagged {
		unit, total = "-", "-"
	}
	cells := []string{
		strconv.Itoa(r.Index),
		tr(r.Label),
		tr(r.Measurements),
		strconv.Itoa(r.Quantity),
		unit,
		total,
		tr(r.Remarks),
	}
	wrapped := make([][]string, len(cells))
	lines := 1
	for i, c := range cells {
		for _, l := range pdf.SplitLines([]byte(c), pdfColumns[i].width-2) {
			wrapped[i] = append(wrapped[i], string(l))
		}
		if len(wrapped[i]) > lines {
			lines = len(wrapped[i])
		}
	}
	h := float64(lines) * lineH

	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h > pageH-bottom {
		pdf.AddPage()
		tableHeader(pdf)
		pdf.SetFont("Helvetica", "", 9)
	}

	x, y := pdf.GetXY()
	for i, c := range pdfColumns {
		pdf.Rect(x, y, c.width, h, "D")
		for j, l := range wrapped[i] {
			pdf.SetXY(x, y+float64(j)*lineH)
			pdf.CellFormat(c.width, lineH, l, "", 0, c.align, false, 0, "")
		}
		x += c.width
	}
	left, _, _, _ := pdf.GetMargins()
	pdf.SetXY(left, y+h)
}
