package parser

import (
	"log/slog"
	"regexp"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/normalizer"
)

// Raiffeisen statements place the amount before a standalone sign token:
//
//	15.01.2024 MEGA IMAGE AUREL VLAICU 82,50 -
//	01.02.2024 SALARIU FEBRUARIE 4.200,00 +
var raiffeisenLine = regexp.MustCompile(
	`(\d{2}\.\d{2}\.\d{4})\s+(.+?)\s+(\d+(?:\.\d{3})*,\d{2})\s+([+-])`)

type raiffeisenParser struct {
	opts Options
}

func (p *raiffeisenParser) Bank() Bank { return BankRaiffeisen }

func (p *raiffeisenParser) Parse(text string) []Candidate {
	var out []Candidate
	for _, m := range raiffeisenLine.FindAllStringSubmatch(text, -1) {
		date, err := normalizer.ParseDate(m[1])
		if err != nil {
			p.opts.Logger.Warn("skipping Raiffeisen line", slog.String("line", m[0]), slog.Any("error", err))
			continue
		}
		amount, err := normalizer.ParseAmount(m[3])
		if err != nil {
			p.opts.Logger.Warn("skipping Raiffeisen line", slog.String("line", m[0]), slog.Any("error", err))
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
			IsIncome:    m[4] == "+",
		})
	}
	return out
}
