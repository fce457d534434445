package hunt

import (
	"math/rand/v2"
	"slices"
	"sync"
)

// ClueSession remembers which clue variant a participant was shown for each
// ordinal, so the text stays stable for the rest of their visit.
type ClueSession struct {
	Clues map[int]Clue `json:"clues"`
}

func NewClueSession() *ClueSession {
	return &ClueSession{Clues: make(map[int]Clue)}
}

// Catalog serves clues with a per-session random variant.
type Catalog struct {
	sets map[int]Clue

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCatalog builds a catalog over sets. A nil src seeds randomly.
func NewCatalog(sets []Clue, src rand.Source) *Catalog {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	m := make(map[int]Clue, len(sets))
	for _, s := range sets {
		m[s.ID] = s
	}
	return &Catalog{sets: m, rng: rand.New(src)}
}

func DefaultCatalog() *Catalog {
	return NewCatalog(ClueSets, nil)
}

// Clue returns the clue for ordinal as chosen for sess. The first request
// per ordinal picks the primary text or, with equal probability, one of the
// alternates; later requests return that same choice. A nil sess picks
// afresh and remembers nothing.
func (c *Catalog) Clue(sess *ClueSession, ordinal int) (Clue, error) {
	set, ok := c.sets[ordinal]
	if !ok {
		return Clue{}, ErrNotFound
	}
	if sess == nil {
		sess = NewClueSession()
	}
	if chosen, ok := sess.Clues[ordinal]; ok {
		return chosen, nil
	}

	chosen := set
	chosen.AlternateClues = slices.Clone(set.AlternateClues)
	if n := len(set.AlternateClues); n > 0 {
		c.mu.Lock()
		if c.rng.Float64() >= 0.5 {
			chosen.Clue = set.AlternateClues[c.rng.IntN(n)]
		}
		c.mu.Unlock()
	}

	if sess.Clues == nil {
		sess.Clues = make(map[int]Clue)
	}
	sess.Clues[ordinal] = chosen
	return chosen, nil
}

// ClearAll forgets every choice made for sess.
func (c *Catalog) ClearAll(sess *ClueSession) {
	if sess == nil {
		return
	}
	clear(sess.Clues)
}

// Reset forgets the choice made for one ordinal.
func (c *Catalog) Reset(sess *ClueSession, ordinal int) {
	if sess == nil {
		return
	}
	delete(sess.Clues, ordinal)
}

// Ordinals lists the catalog's ordinals in ascending order.
func (c *Catalog) Ordinals() []int {
	out := make([]int, 0, len(c.sets))
	for id := range c.sets {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
