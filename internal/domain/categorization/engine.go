// Package categorization infers a category for a transaction from its
// free-text description, then resolves the category name to a persisted
// record.
package categorization

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// Engine maps free-text transaction descriptions to category names using
// Aho-Corasick multi-pattern matching: one pass over the description finds
// every keyword from every group at once, independent of how many keywords
// are loaded. Group order breaks ties; the earliest group with any match
// wins.
type Engine struct {
	mu sync.RWMutex

	expenseMatcher *ahocorasick.Matcher
	expenseGroups  []int // keyword index -> group index
	expenseNames   []string

	incomeMatcher *ahocorasick.Matcher
	incomeGroups  []int
	incomeNames   []string
}

// NewEngine builds an engine over the given rule sets. Passing nil for
// either set loads the built-in defaults.
func NewEngine(expense, income []KeywordGroup) *Engine {
	if expense == nil {
		expense = ExpenseGroups
	}
	if income == nil {
		income = IncomeGroups
	}
	e := &Engine{}
	e.Build(expense, income)
	return e
}

// Build reconstructs both matchers. Safe to call on a live engine when the
// rule sets change.
func (e *Engine) Build(expense, income []KeywordGroup) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expenseMatcher, e.expenseGroups, e.expenseNames = buildMatcher(expense)
	e.incomeMatcher, e.incomeGroups, e.incomeNames = buildMatcher(income)
}

func buildMatcher(groups []KeywordGroup) (*ahocorasick.Matcher, []int, []string) {
	var (
		patterns   [][]byte
		groupIndex []int
		names      = make([]string, len(groups))
	)
	for gi, g := range groups {
		names[gi] = g.Category
		for _, kw := range g.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			patterns = append(patterns, []byte(kw))
			groupIndex = append(groupIndex, gi)
		}
	}
	if len(patterns) == 0 {
		return nil, nil, names
	}
	return ahocorasick.NewMatcher(patterns), groupIndex, names
}

// Categorize returns the category name for a description. It never fails:
// when no keyword matches it returns the fallback category for the
// transaction direction.
func (e *Engine) Categorize(description string, isIncome bool) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if isIncome {
		if name, ok := match(e.incomeMatcher, e.incomeGroups, e.incomeNames, description); ok {
			return name
		}
		return FallbackIncomeCategory
	}
	if name, ok := match(e.expenseMatcher, e.expenseGroups, e.expenseNames, description); ok {
		return name
	}
	return FallbackExpenseCategory
}

func match(m *ahocorasick.Matcher, groupIndex []int, names []string, description string) (string, bool) {
	if m == nil {
		return "", false
	}
	hits := m.Match([]byte(strings.ToLower(description)))
	if len(hits) == 0 {
		return "", false
	}
	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(groupIndex) {
			continue
		}
		if gi := groupIndex[idx]; best == -1 || gi < best {
			best = gi
		}
	}
	if best == -1 {
		return "", false
	}
	return names[best], true
}
