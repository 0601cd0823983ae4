package categorization

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Resolver maps engine-produced category names onto persisted category
// records. Resolution is best effort: exact name first, then
// case-insensitive, then a bounded fuzzy match to absorb small spelling
// drift between the rule set and the user's actual categories. A miss
// returns nil rather than an error.
type Resolver struct {
	mu         sync.RWMutex
	byName     map[string]Category
	names      []string
	categories []Category
}

// fuzzyRankCeiling is the worst Levenshtein rank still accepted as the same
// category name.
const fuzzyRankCeiling = 2

func NewResolver(categories []Category) *Resolver {
	r := &Resolver{}
	r.Reload(categories)
	return r
}

// Reload replaces the resolver's category set.
func (r *Resolver) Reload(categories []Category) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = categories
	r.byName = make(map[string]Category, len(categories))
	r.names = make([]string, 0, len(categories))
	for _, c := range categories {
		key := strings.ToLower(c.Name)
		if _, seen := r.byName[key]; seen {
			continue
		}
		r.byName[key] = c
		r.names = append(r.names, c.Name)
	}
}

// Resolve returns the ID of the category matching name, or nil when nothing
// close enough exists.
func (r *Resolver) Resolve(name string) *uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.byName[strings.ToLower(name)]; ok {
		id := c.ID
		return &id
	}

	ranks := fuzzy.RankFindNormalizedFold(name, r.names)
	if len(ranks) == 0 {
		return nil
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
		}
	}
	if best.Distance > fuzzyRankCeiling {
		return nil
	}
	if c, ok := r.byName[strings.ToLower(best.Target)]; ok {
		id := c.ID
		return &id
	}
	return nil
}
