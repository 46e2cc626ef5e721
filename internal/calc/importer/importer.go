package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"Calcform/internal/calc/entry"
	"Calcform/internal/calc/volume"
	"Calcform/internal/session"
)

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type Result struct {
	Imported int        `json:"imported"`
	Flagged  int        `json:"flagged"`
	Errors   []RowError `json:"errors"`
}

// Import reads the first sheet of a workbook into s. The header row is
// skipped. Columns: kind, label, quantity, then repeating field label,
// value, unit triples. Rows whose dimensions do not compute are imported
// as flagged rows; rows that cannot be read at all are reported.
func Import(r io.Reader, s *session.Session) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Result{}, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return Result{}, fmt.Errorf("sheet must contain a header row and at least one data row")
	}

	var out Result
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		kind, label, qty, fields, err := parseRow(row)
		if err != nil {
			out.Errors = append(out.Errors, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		saved, err := s.Commit(kind, label, fields, qty)
		if err != nil {
			out.Errors = append(out.Errors, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		out.Imported++
		if saved.Err != nil {
			out.Flagged++
		}
	}
	return out, nil
}

func parseRow(row []string) (volume.Kind, string, string, []entry.FieldInput, error) {
	kind, err := volume.ParseKind(row[0])
	if err != nil {
		return "", "", "", nil, err
	}
	label := cell(row, 1)
	qty := cell(row, 2)
	var fields []entry.FieldInput
	for j := 3; j < len(row); j += 3 {
		name := cell(row, j)
		if name == "" {
			continue
		}
		fields = append(fields, entry.FieldInput{
			Label: name,
			Value: cell(row, j+1),
			Unit:  cell(row, j+2),
		})
	}
	return kind, label, qty, fields, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
