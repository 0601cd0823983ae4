// Package tabular parses CSV and XLSX statement exports using a
// caller-supplied column mapping. It is the schema-driven sibling of the
// bank-layout parsers: instead of pattern matching, the caller names the
// date, amount, description and optional type columns.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/normalizer"
	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/parser"
)

// placeholderDescription fills in for rows whose description cell is empty.
const placeholderDescription = "Imported transaction"

// Mapping names the columns to read. Lookups against the header row are
// case-insensitive. TypeColumn is optional: when empty or absent the
// amount's sign decides the direction.
type Mapping struct {
	DateColumn        string
	AmountColumn      string
	DescriptionColumn string
	TypeColumn        string
}

func (m Mapping) validate() error {
	if m.DateColumn == "" || m.AmountColumn == "" || m.DescriptionColumn == "" {
		return errors.New("mapping needs date, amount and description columns")
	}
	return nil
}

// RowError describes one rejected row. Row numbers are 1-based over the
// whole file, header included, so they match what the user sees in a
// spreadsheet.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Result is the outcome of parsing one tabular document. Rows fail
// individually; a non-empty Errors list does not mean the parse failed.
type Result struct {
	Candidates []parser.Candidate
	Errors     []RowError
	TotalRows  int
}

var (
	ErrHeaderMissing = errors.New("header row missing")
	ErrColumnMissing = errors.New("mapped column not found in header")
)

// typeIncomeWords and typeExpenseWords classify the optional type column.
var (
	typeIncomeWords  = []string{"income", "credit", "deposit", "venit", "intrare", "incasare", "+"}
	typeExpenseWords = []string{"expense", "debit", "withdrawal", "cheltuiala", "iesire", "plata", "-"}
)

// ParseCSV reads a whole CSV document against the mapping. The delimiter
// is sniffed from the header line (comma, semicolon or tab).
func ParseCSV(data []byte, mapping Mapping) (*Result, error) {
	if err := mapping.validate(); err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderMissing, err)
	}
	cols, err := resolveColumns(header, mapping)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	rowNum := 1
	for {
		rowNum++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.TotalRows++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		if isBlankRow(record) {
			continue
		}
		result.TotalRows++
		if c, rerr := processRow(record, cols, rowNum); rerr != nil {
			result.Errors = append(result.Errors, *rerr)
		} else {
			result.Candidates = append(result.Candidates, c)
		}
	}
	return result, nil
}

// columnIndexes holds resolved 0-based positions. typeCol is -1 when the
// mapping has no type column or the header lacks it.
type columnIndexes struct {
	date, amount, desc, typ int
}

func resolveColumns(header []string, mapping Mapping) (columnIndexes, error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	cols := columnIndexes{
		date:   find(mapping.DateColumn),
		amount: find(mapping.AmountColumn),
		desc:   find(mapping.DescriptionColumn),
		typ:    -1,
	}
	if mapping.TypeColumn != "" {
		cols.typ = find(mapping.TypeColumn)
	}

	for name, idx := range map[string]int{
		mapping.DateColumn:        cols.date,
		mapping.AmountColumn:      cols.amount,
		mapping.DescriptionColumn: cols.desc,
	} {
		if idx < 0 {
			return cols, fmt.Errorf("%w: %q", ErrColumnMissing, name)
		}
	}
	return cols, nil
}

func processRow(record []string, cols columnIndexes, rowNum int) (parser.Candidate, *RowError) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := normalizer.ParseDate(cell(cols.date))
	if err != nil {
		return parser.Candidate{}, &RowError{Row: rowNum, Message: fmt.Sprintf("invalid date %q", cell(cols.date))}
	}

	rawAmount := cell(cols.amount)
	amount, err := normalizer.ParseAmount(rawAmount)
	if err != nil {
		return parser.Candidate{}, &RowError{Row: rowNum, Message: fmt.Sprintf("invalid amount %q", rawAmount)}
	}
	if amount.IsZero() {
		return parser.Candidate{}, &RowError{Row: rowNum, Message: "zero amount"}
	}

	isIncome, ok := typeFromCell(cell(cols.typ))
	if !ok {
		isIncome = amount.IsPositive()
	}

	description := normalizer.CleanDescription(cell(cols.desc))
	if description == "" {
		description = placeholderDescription
	}

	return parser.Candidate{
		Date:        date,
		Amount:      amount.Abs(),
		Description: description,
		IsIncome:    isIncome,
	}, nil
}

// typeFromCell classifies an explicit type cell. The second return is false
// when the cell is empty or matches no known word, leaving the decision to
// the amount sign.
func typeFromCell(cell string) (bool, bool) {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if cell == "" {
		return false, false
	}
	for _, w := range typeIncomeWords {
		if strings.Contains(cell, w) {
			return true, true
		}
	}
	for _, w := range typeExpenseWords {
		if strings.Contains(cell, w) {
			return false, true
		}
	}
	return false, false
}

func isBlankRow(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// sniffDelimiter inspects the first line and picks the separator that
// splits it into the most fields.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte(","))
	for _, cand := range []byte{';', '\t'} {
		if n := bytes.Count(line, []byte{cand}); n > bestCount {
			best, bestCount = rune(cand), n
		}
	}
	return best
}
