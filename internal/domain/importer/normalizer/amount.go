// Package normalizer converts the locale-dependent amount and date text found
// in Romanian bank statements into canonical values.
package normalizer

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount format")
	ErrInvalidDate   = errors.New("invalid date format")
)

// ParseAmount converts a statement amount string into an exact decimal.
// It accepts Romanian/European formats ("1.234,56", "1234,56"), plain decimal
// ("1234.56"), signed values ("+1234,56", "-50.00") and values carrying
// currency symbols or codes ("€1.00", "50,00 RON").
//
// Separator rules: when both '.' and ',' are present, '.' is a thousands
// separator and ',' the decimal separator; a lone ',' is the decimal
// separator; a lone '.' is already decimal.
//
// The returned value keeps the sign of the input. Callers building
// transactions take the absolute value; income vs. expense is decided from
// statement context, not from the numeric sign.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == ',' || r == '.' || r == '-' || r == '+' {
			return r
		}
		return -1
	}, raw)

	if cleaned == "" || cleaned == "+" || cleaned == "-" {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	if strings.Contains(cleaned, ".") && strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	val, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return val, nil
}

// CleanDescription trims a description and collapses runs of whitespace into
// single spaces.
func CleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
