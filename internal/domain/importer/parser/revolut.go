package parser

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/normalizer"
)

// Revolut statements open each line with a Romanian month-name date, then
// the description, then one or two amount columns (money out / money in):
//
//	4 nov. 2025 Kaufland Bucuresti €1.00
//	5 nov. 2025 Alimentare cont €250.00 €251.00
var (
	revolutDateStart = regexp.MustCompile(`(?i)^(\d{1,2}\s+\p{L}{3,}\.?\s+\d{4})\s+(.*)$`)
	revolutSimple    = regexp.MustCompile(`(?i)(\d{1,2}\s+\p{L}{3,}\.?\s+\d{4})\s+(.+?)\s+([+-]?€?[\d,\.]+)`)
	amountishToken   = regexp.MustCompile(`\d`)
)

type revolutParser struct {
	opts Options
}

func (p *revolutParser) Bank() Bank { return BankRevolut }

func (p *revolutParser) Parse(text string) []Candidate {
	var out []Candidate
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m := revolutDateStart.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		date, err := normalizer.ParseDate(m[1])
		if err != nil {
			p.opts.Logger.Warn("skipping Revolut line", slog.String("line", line), slog.Any("error", err))
			continue
		}

		// Walk the remaining tokens from the right, collecting up to two
		// trailing amount-like tokens; everything before them is the
		// description.
		tokens := strings.Fields(m[2])
		idx := len(tokens)
		var amounts []string
		for idx > 0 && len(amounts) < 2 {
			t := stripAmountNoise(tokens[idx-1])
			if !amountishToken.MatchString(t) {
				break
			}
			amounts = append([]string{tokens[idx-1]}, amounts...)
			idx--
		}
		if len(amounts) == 0 {
			continue
		}
		description := normalizer.CleanDescription(strings.Join(tokens[:idx], " "))

		switch len(amounts) {
		case 2:
			// First trailing column is money out, second money in.
			if c, ok := p.candidate(date, amounts[0], description, false); ok {
				out = append(out, c)
			}
			if c, ok := p.candidate(date, amounts[1], description, true); ok {
				out = append(out, c)
			}
		case 1:
			isIncome := p.direction(amounts[0], description)
			if c, ok := p.candidate(date, amounts[0], description, isIncome); ok {
				out = append(out, c)
			}
		}
	}

	// Column alignment in some exports glues the date to the description;
	// retry with the loose single-amount pattern before giving up.
	if len(out) == 0 {
		out = p.parseSimple(text)
	}
	return out
}

func (p *revolutParser) parseSimple(text string) []Candidate {
	var out []Candidate
	for _, m := range revolutSimple.FindAllStringSubmatch(text, -1) {
		date, err := normalizer.ParseDate(m[1])
		if err != nil {
			continue
		}
		description := normalizer.CleanDescription(m[2])
		isIncome := p.direction(m[3], description)
		if c, ok := p.candidate(date, m[3], description, isIncome); ok {
			out = append(out, c)
		}
	}
	return out
}

func (p *revolutParser) direction(amountToken, description string) bool {
	amountToken = stripAmountNoise(amountToken)
	switch {
	case strings.HasPrefix(amountToken, "+"):
		return true
	case strings.HasPrefix(amountToken, "-"):
		return false
	case looksLikeInflow(description):
		return true
	default:
		return p.opts.classifyUnsigned(description)
	}
}

func (p *revolutParser) candidate(date time.Time, token, description string, isIncome bool) (Candidate, bool) {
	amount, err := normalizer.ParseAmount(token)
	if err != nil {
		return Candidate{}, false
	}
	amount = amount.Abs()
	if amount.IsZero() {
		return Candidate{}, false
	}
	return Candidate{Date: date, Amount: amount, Description: description, IsIncome: isIncome}, true
}

// stripAmountNoise drops currency symbols and codes so a trailing token like
// "€1.00" or "50,00RON" still reads as an amount.
func stripAmountNoise(token string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-', r == '+':
			return r
		}
		return -1
	}, token)
}
