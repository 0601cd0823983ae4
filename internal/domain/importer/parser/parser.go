// Package parser extracts candidate transactions from the raw text of bank
// statements. Each supported bank layout is one variant of a closed set,
// selected by Bank key; AutoDetect runs every variant and keeps the largest
// result.
package parser

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Candidate is one parsed-but-unvalidated transaction extracted from
// statement text. Amount is always strictly positive; income vs. expense is
// carried by IsIncome.
type Candidate struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	IsIncome    bool
}

// Bank identifies a supported statement layout.
type Bank string

const (
	BankBCR        Bank = "BCR"
	BankBRD        Bank = "BRD"
	BankING        Bank = "ING"
	BankRevolut    Bank = "REVOLUT"
	BankRaiffeisen Bank = "RAIFFEISEN"
	BankCEC        Bank = "CEC"
	BankGeneric    Bank = "GENERIC"
	BankAuto       Bank = "AUTO"
)

// ParseBank normalizes a bank hint string. Unknown hints map to BankGeneric;
// an empty hint maps to BankAuto.
func ParseBank(hint string) Bank {
	switch Bank(strings.ToUpper(strings.TrimSpace(hint))) {
	case BankBCR:
		return BankBCR
	case BankBRD:
		return BankBRD
	case BankING:
		return BankING
	case BankRevolut:
		return BankRevolut
	case BankRaiffeisen:
		return BankRaiffeisen
	case BankCEC:
		return BankCEC
	case BankAuto, "":
		return BankAuto
	default:
		return BankGeneric
	}
}

// UnsignedAmountPolicy decides the transaction direction when a statement
// line carries a single unsigned amount and no debit/credit indicator.
type UnsignedAmountPolicy string

const (
	// DefaultExpense treats every unsigned single amount as an expense.
	DefaultExpense UnsignedAmountPolicy = "default_expense"
	// KeywordHeuristic marks the amount as income when the description
	// contains a known inflow keyword, expense otherwise.
	KeywordHeuristic UnsignedAmountPolicy = "keyword_heuristic"
)

// Options configures layout-independent parser behavior.
type Options struct {
	// ScanBound caps how many lines the multi-line CEC parser reads ahead
	// while accumulating a record's description.
	ScanBound int
	// UnsignedPolicy applies where a layout yields one amount with no sign.
	UnsignedPolicy UnsignedAmountPolicy
	Logger         *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.ScanBound <= 0 {
		o.ScanBound = 8
	}
	if o.UnsignedPolicy == "" {
		o.UnsignedPolicy = DefaultExpense
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// StatementParser is the uniform capability every bank layout variant
// implements. Parse never fails as a whole: unparseable lines are skipped.
type StatementParser interface {
	Bank() Bank
	Parse(text string) []Candidate
}

// Registry holds one parser per supported bank layout.
type Registry struct {
	opts    Options
	ordered []StatementParser
	generic StatementParser
}

// NewRegistry builds the closed parser set. The slice order is the
// auto-detect evaluation order and is part of the contract: ties between
// equally-sized result sets go to the first parser listed here.
func NewRegistry(opts Options) *Registry {
	opts = opts.withDefaults()
	return &Registry{
		opts: opts,
		ordered: []StatementParser{
			&bcrParser{opts: opts},
			&brdParser{opts: opts},
			&ingParser{opts: opts},
			&revolutParser{opts: opts},
			&raiffeisenParser{opts: opts},
			&cecParser{opts: opts},
		},
		generic: &genericParser{opts: opts},
	}
}

// ForBank returns the parser for a bank key. BankAuto has no single parser;
// callers route it through AutoDetect. Unknown keys get the generic parser.
func (r *Registry) ForBank(bank Bank) StatementParser {
	for _, p := range r.ordered {
		if p.Bank() == bank {
			return p
		}
	}
	return r.generic
}

// AutoDetect runs every bank-specific parser over the same text and returns
// the largest candidate list, falling back to the generic parser when no
// bank layout matched anything.
func (r *Registry) AutoDetect(text string) []Candidate {
	var best []Candidate
	for _, p := range r.ordered {
		if got := p.Parse(text); len(got) > len(best) {
			best = got
		}
	}
	if len(best) == 0 {
		best = r.generic.Parse(text)
	}
	return best
}

// classifyUnsigned resolves the direction of a single unsigned amount with
// no debit/credit indicator, per the configured policy.
func (o Options) classifyUnsigned(description string) bool {
	if o.UnsignedPolicy == KeywordHeuristic {
		return looksLikeInflow(description)
	}
	return false
}

// inflowKeywords flag descriptions that represent money coming in when the
// layout itself gives no sign.
var inflowKeywords = []string{
	"salariu", "venit", "salary", "income",
	"alimentare", "depunere", "deposit", "intrare", "incasare", "added",
}

func looksLikeInflow(description string) bool {
	lower := strings.ToLower(description)
	for _, kw := range inflowKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
