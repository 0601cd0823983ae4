package tabular

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Date", "Amount", "Description", "Type"},
		{"15.01.2024", "-50,00", "KAUFLAND BUCURESTI", ""},
		{"25.01.2024", "3500,00", "Salariu ianuarie", "income"},
	})

	res, err := ParseXLSX(data, defaultMapping)
	require.NoError(t, err)
	require.Len(t, res.Candidates, 2)
	assert.Empty(t, res.Errors)

	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), res.Candidates[0].Date)
	assert.False(t, res.Candidates[0].IsIncome)
	assert.True(t, res.Candidates[1].IsIncome)
}

func TestParseXLSX_RowErrorsAreIsolated(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Date", "Amount", "Description"},
		{"15.01.2024", "50,00", "Good row"},
		{"garbage", "50,00", "Bad date"},
	})

	res, err := ParseXLSX(data, Mapping{
		DateColumn:        "Date",
		AmountColumn:      "Amount",
		DescriptionColumn: "Description",
	})
	require.NoError(t, err)
	assert.Len(t, res.Candidates, 1)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	_, err := ParseXLSX([]byte("plain text"), defaultMapping)
	assert.Error(t, err)
}

func TestParseXLSX_MissingColumn(t *testing.T) {
	data := buildWorkbook(t, [][]any{{"Date", "Description"}})
	_, err := ParseXLSX(data, defaultMapping)
	assert.ErrorIs(t, err, ErrColumnMissing)
}
