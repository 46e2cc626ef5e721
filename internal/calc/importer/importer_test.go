package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"Calcform/internal/session"
)

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		if len(r) == 0 {
			continue
		}
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow(sheet, ref, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

var header = []interface{}{"Kind", "Label", "Qty", "Field", "Value", "Unit", "Field", "Value", "Unit", "Field", "Value", "Unit"}

func TestImport(t *testing.T) {
	b := workbook(t, [][]interface{}{
		header,
		{"slab", "Wall", "2", "Length", "4", "m", "Width", "3", "m", "Height", "0.15", "m"},
		{"hole", "", "", "Diameter", "60", "cm", "Height", "", "m"},
		{},
		{"dome", "", "", "Length", "1", "m"},
		{"slab", "", "zero", "Length", "1", "m"},
		{"Curb & Gutter", "", "1", "Length", "10", "ft"},
	})
	s := session.New()
	res, err := Import(bytes.NewReader(b), s)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 2, res.Flagged)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 5, res.Errors[0].Row)
	assert.Equal(t, 6, res.Errors[1].Row)

	rows := s.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Wall", rows[0].Label)
	assert.Equal(t, 1.8, rows[0].Volume)
	assert.Equal(t, 2, rows[0].Quantity)
	assert.EqualError(t, rows[1].Err, "missing dimension: height")
	assert.Equal(t, session.Summary{TotalVolume: 3.6, RowCount: 3, Flagged: 2}, session.Aggregate(s.Entries()))
}

func TestImport_Rejects(t *testing.T) {
	_, err := Import(strings.NewReader("not a workbook"), session.New())
	assert.Error(t, err)

	_, err = Import(bytes.NewReader(workbook(t, [][]interface{}{header})), session.New())
	assert.Error(t, err)
}

func TestHandler_Import(t *testing.T) {
	b := workbook(t, [][]interface{}{
		header,
		{"slab", "", "", "Length", "4", "m", "Width", "3", "m", "Height", "0.15", "m"},
	})
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "rows.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(b)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	s := session.New()
	req := httptest.NewRequest(http.MethodPost, "/api/session/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = req.WithContext(session.NewContext(req.Context(), s))
	rec := httptest.NewRecorder()
	(&Handler{Log: zap.NewNop()}).Import(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 1, res.Imported)
	assert.Len(t, s.Rows(), 1)
}

func TestHandler_MissingFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/session/import", strings.NewReader(""))
	req = req.WithContext(session.NewContext(req.Context(), session.New()))
	rec := httptest.NewRecorder()
	(&Handler{Log: zap.NewNop()}).Import(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
