package parser

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/normalizer"
)

// BRD statements carry one signed RON amount per line:
//
//	15/01/2024 CUMPARATURI CARREFOUR -50.00 RON
var brdLine = regexp.MustCompile(
	`(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([+-]?\d+(?:,\d{3})*\.\d{2})\s*RON`)

type brdParser struct {
	opts Options
}

func (p *brdParser) Bank() Bank { return BankBRD }

func (p *brdParser) Parse(text string) []Candidate {
	var out []Candidate
	for _, m := range brdLine.FindAllStringSubmatch(text, -1) {
		date, err := normalizer.ParseDate(m[1])
		if err != nil {
			p.opts.Logger.Warn("skipping BRD line", slog.String("line", m[0]), slog.Any("error", err))
			continue
		}
		amount, err := normalizer.ParseAmount(m[3])
		if err != nil {
			p.opts.Logger.Warn("skipping BRD line", slog.String("line", m[0]), slog.Any("error", err))
			continue
		}
		amount = amount.Abs()
		if amount.IsZero() {
			continue
		}

		description := normalizer.CleanDescription(m[2])

		// An explicit sign always wins; the salariu/venit keywords only
		// decide unsigned amounts.
		var isIncome bool
		switch {
		case strings.HasPrefix(m[3], "+"):
			isIncome = true
		case strings.HasPrefix(m[3], "-"):
			isIncome = false
		default:
			upper := strings.ToUpper(description)
			isIncome = strings.Contains(upper, "SALARIU") || strings.Contains(upper, "VENIT")
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
