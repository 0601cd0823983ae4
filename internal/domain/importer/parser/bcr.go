package parser

import (
	"log/slog"
	"regexp"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/normalizer"
)

// BCR statements list one transaction per line with separate debit and
// credit columns, a dash marking the empty one:
//
//	15.01.2024 KAUFLAND BUCURESTI 50,00 -
//	20.01.2024 SALARIU IANUARIE - 2.500,00
var bcrLine = regexp.MustCompile(
	`(\d{2}\.\d{2}\.\d{4})\s+([A-Z0-9 \-\.]+?)\s+(\d+(?:\.\d{3})*,\d{2}|-)\s+(\d+(?:\.\d{3})*,\d{2}|-)`)

type bcrParser struct {
	opts Options
}

func (p *bcrParser) Bank() Bank { return BankBCR }

func (p *bcrParser) Parse(text string) []Candidate {
	var out []Candidate
	for _, m := range bcrLine.FindAllStringSubmatch(text, -1) {
		date, err := normalizer.ParseDate(m[1])
		if err != nil {
			p.opts.Logger.Warn("skipping BCR line", slog.String("line", m[0]), slog.Any("error", err))
			continue
		}

		debit, credit := m[3], m[4]
		amountStr := debit
		isIncome := false
		if debit == "-" {
			amountStr = credit
			isIncome = true
		}
		if amountStr == "-" {
			continue
		}

		amount, err := normalizer.ParseAmount(amountStr)
		if err != nil {
			p.opts.Logger.Warn("skipping BCR line", slog.String("line", m[0]), slog.Any("error", err))
			continue
		}
		amount = amount.Abs()
		if amount.IsZero() {
			continue
		}

		out = append(out, Candidate{
			Date:        date,
			Amount:      amount,
			Description: normalizer.CleanDescription(m[2]),
			IsIncome:    isIncome,
		})
	}
	return out
}
