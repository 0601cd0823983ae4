package parser

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/normalizer"
)

// ING statements use dash-separated dates and a bare signed amount:
//
//	15-01-2024 Kaufland -50.00
var ingLine = regexp.MustCompile(
	`(\d{2}-\d{2}-\d{4})\s+(.+?)\s+([+-]?\d+(?:,\d{3})*\.\d{2})`)

type ingParser struct {
	opts Options
}

func (p *ingParser) Bank() Bank { return BankING }

func (p *ingParser) Parse(text string) []Candidate {
	var out []Candidate
	for _, m := range ingLine.FindAllStringSubmatch(text, -1) {
		date, err := normalizer.ParseDate(m[1])
		if err != nil {
			p.opts.Logger.Warn("skipping ING line", slog.String("line", m[0]), slog.Any("error", err))
			continue
		}
		amount, err := normalizer.ParseAmount(m[3])
		if err != nil {
			p.opts.Logger.Warn("skipping ING line", slog.String("line", m[0]), slog.Any("error", err))
			continue
		}
		amount = amount.Abs()
		if amount.IsZero() {
			continue
		}

		description := normalizer.CleanDescription(m[2])
		var isIncome bool
		switch {
		case strings.HasPrefix(m[3], "+"):
			isIncome = true
		case strings.HasPrefix(m[3], "-"):
			isIncome = false
		default:
			isIncome = p.opts.classifyUnsigned(description)
		}

		out = append(out, Candidate{
			Date:        date,
			Amount:      amount,
			Description: description,
			IsIncome:    isIncome,
		})
	}
	return out
}
