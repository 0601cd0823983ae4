package parser

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/normalizer"
)

// The generic fallback accepts any "date description amount" shape with no
// bank-specific assumptions, for statements from unrecognized layouts.
var genericLine = regexp.MustCompile(
	`(\d{2}[\./\-]\d{2}[\./\-]\d{4})\s+(.+?)\s+([+-]?\d+[\.,]\d{2})`)

type genericParser struct {
	opts Options
}

func (p *genericParser) Bank() Bank { return BankGeneric }

func (p *genericParser) Parse(text string) []Candidate {
	var out []Candidate
	for _, m := range genericLine.FindAllStringSubmatch(text, -1) {
		date, err := normalizer.ParseDate(m[1])
		if err != nil {
			p.opts.Logger.Warn("skipping generic line", slog.String("line", m[0]), slog.Any("error", err))
			continue
		}
		amount, err := normalizer.ParseAmount(m[3])
		if err != nil {
			p.opts.Logger.Warn("skipping generic line", slog.String("line", m[0]), slog.Any("error", err))
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
		case looksLikeInflow(description):
			isIncome = true
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
