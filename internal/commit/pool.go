package commit

import "strings"

// Pool is an insertion-ordered set of candidates compared case-insensitively.
// It never holds more than its capacity; the first casing seen is kept.
type Pool struct {
	limit int
	seen  map[string]struct{}
	items []string
}

// NewPool returns an empty pool holding at most limit candidates.
func NewPool(limit int) *Pool {
	if limit <= 0 {
		limit = MaxCandidates
	}
	return &Pool{limit: limit, seen: make(map[string]struct{}, limit)}
}

// Add inserts c unless it is already present or the pool is full.
// It reports whether c was added.
func (p *Pool) Add(c string) bool {
	if p.Full() {
		return false
	}
	key := strings.ToLower(c)
	if _, ok := p.seen[key]; ok {
		return false
	}
	p.seen[key] = struct{}{}
	p.items = append(p.items, c)
	return true
}

// Contains reports whether an equal candidate, ignoring case, is present.
func (p *Pool) Contains(c string) bool {
	_, ok := p.seen[strings.ToLower(c)]
	return ok
}

func (p *Pool) Full() bool { return len(p.items) >= p.limit }

func (p *Pool) Len() int { return len(p.items) }

// Items returns a copy of the candidates in insertion order.
func (p *Pool) Items() []string {
	out := make([]string, len(p.items))
	copy(out, p.items)
	return out
}
