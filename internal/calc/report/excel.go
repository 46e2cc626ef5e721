package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Volumes"

var excelHeaders = []string{"No.", "Type", "Kind", "Measurements", "Qty", "Unit Volume (m3)", "Total Volume (m3)", "Remarks"}

// First data row. Rows above it hold the title block and column headers.
const firstDataRow = 8

func GenerateExcel(data Data) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	lastCol := columns[len(columns)-1]
	widths := []float64{6, 18, 16, 60, 8, 16, 16, 40}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	numFmt := "0.00"
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}
	volumeStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create volume style: %w", err)
	}
	flaggedStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: "#B40000"},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("create flagged style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("create summary style: %w", err)
	}

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	meta := []struct{ k, v string }{
		{"Project", data.Project},
		{"Customer", data.Customer},
		{"Site", data.Site},
		{"Author", data.Author},
		{"Date", data.Date},
	}
	for i, m := range meta {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), m.k+":")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), sanitizeExcelCell(m.v))
	}

	headerRow := firstDataRow - 1
	for i, h := range excelHeaders {
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], headerRow), h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	row := firstDataRow
	for _, r := range data.Rows {
		n := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+n, r.Index)
		f.SetCellValue(sheetName, "B"+n, sanitizeExcelCell(r.Label))
		f.SetCellValue(sheetName, "C"+n, r.Kind)
		f.SetCellValue(sheetName, "D"+n, sanitizeExcelCell(r.Measurements))
		f.SetCellValue(sheetName, "E"+n, r.Quantity)
		f.SetCellValue(sheetName, "H"+n, sanitizeExcelCell(r.Remarks))
		style := bodyStyle
		if r.Flagged {
			style = flaggedStyle
		}
		f.SetCellStyle(sheetName, "A"+n, lastCol+n, style)
		if !r.Flagged {
			f.SetCellValue(sheetName, "F"+n, r.UnitVolume)
			f.SetCellValue(sheetName, "G"+n, r.TotalVolume)
			f.SetCellStyle(sheetName, "F"+n, "G"+n, volumeStyle)
		}
		row++
	}

	row++
	n := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "F"+n, "Total:")
	f.SetCellValue(sheetName, "G"+n, data.Summary.TotalVolume)
	f.SetCellStyle(sheetName, "F"+n, "G"+n, boldStyle)
	row++
	n = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "F"+n, "Rows:")
	f.SetCellValue(sheetName, "G"+n, data.Summary.RowCount)
	if data.Summary.Flagged > 0 {
		row++
		n = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "F"+n, "Unresolved:")
		f.SetCellValue(sheetName, "G"+n, data.Summary.Flagged)
		f.SetCellStyle(sheetName, "F"+n, "G"+n, flaggedStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell stops user text from being read as a formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
