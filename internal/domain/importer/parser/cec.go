package parser

import (
	"regexp"
	"strings"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/normalizer"
)

// CEC statements spread one transaction over several text lines: a
// standalone date line, then description fragments, then a closing line
// with the operation reference and a signed amount:
//
//	15.01.2024
//	PLATA FACTURA
//	ENEL ENERGIE
//	OP-2024-0117 -142,50
//
// The parser runs a small state machine over the lines. A record opens on a
// date line and closes on a reference+amount line; description fragments in
// between are accumulated unless a noise predicate discards them. If no
// closing line appears within the scan bound the record is abandoned
// silently.
type cecParser struct {
	opts Options
}

var (
	cecDateLine  = regexp.MustCompile(`^\d{2}[\.\-]\d{2}[\.\-]\d{4}$`)
	cecCloseLine = regexp.MustCompile(`^([A-Z0-9][A-Z0-9\-/]{3,})\s+([+-]?\d+(?:\.\d{3})*,\d{2}|[+-]?\d+\.\d{2})$`)
)

// cecNoise is the ordered list of predicates that drop a line from the
// accumulated description without closing the record. Evaluation is
// top-to-bottom, first match wins; the order is part of the contract since
// the patterns overlap (an IBAN line is also "mostly digits").
var cecNoise = []*regexp.Regexp{
	regexp.MustCompile(`^RO\d{2}[A-Z]{4}\d{16}$`),    // counterparty IBAN
	regexp.MustCompile(`^[A-Z]{4}RO[A-Z0-9]{2,5}$`),  // BIC/SWIFT bank code
	regexp.MustCompile(`^[\d\s\.,]+$`),               // numeric column artifact
}

type cecState int

const (
	cecSeekingDate cecState = iota
	cecAccumulating
)

func (p *cecParser) Bank() Bank { return BankCEC }

func (p *cecParser) Parse(text string) []Candidate {
	var out []Candidate

	state := cecSeekingDate
	var (
		openDate  string
		fragments []string
		scanned   int
	)

	lines := splitLines(text)
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		switch state {
		case cecSeekingDate:
			if cecDateLine.MatchString(line) {
				openDate = line
				fragments = fragments[:0]
				scanned = 0
				state = cecAccumulating
			}

		case cecAccumulating:
			scanned++
			if scanned > p.opts.ScanBound {
				// No amount line within the bound: abandon the record and
				// reconsider the current line as a possible new date.
				state = cecSeekingDate
				i--
				continue
			}

			if cecDateLine.MatchString(line) {
				// A fresh date line means the open record never closed;
				// drop it and start over from this line.
				state = cecSeekingDate
				i--
				continue
			}

			if m := cecCloseLine.FindStringSubmatch(line); m != nil {
				if c, ok := p.closeRecord(openDate, fragments, m[2]); ok {
					out = append(out, c)
				}
				state = cecSeekingDate
				continue
			}

			if isCECNoise(line) {
				continue
			}
			fragments = append(fragments, line)
		}
	}

	return out
}

func (p *cecParser) closeRecord(dateStr string, fragments []string, amountToken string) (Candidate, bool) {
	date, err := normalizer.ParseDate(dateStr)
	if err != nil {
		return Candidate{}, false
	}
	amount, err := normalizer.ParseAmount(amountToken)
	if err != nil {
		return Candidate{}, false
	}
	amount = amount.Abs()
	if amount.IsZero() {
		return Candidate{}, false
	}

	description := normalizer.CleanDescription(strings.Join(fragments, " "))
	var isIncome bool
	switch {
	case strings.HasPrefix(amountToken, "+"):
		isIncome = true
	case strings.HasPrefix(amountToken, "-"):
		isIncome = false
	case looksLikeInflow(description):
		isIncome = true
	default:
		isIncome = p.opts.classifyUnsigned(description)
	}

	return Candidate{
		Date:        date,
		Amount:      amount,
		Description: description,
		IsIncome:    isIncome,
	}, true
}

func isCECNoise(line string) bool {
	for _, re := range cecNoise {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
