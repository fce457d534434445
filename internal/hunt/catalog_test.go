package hunt_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/qrhunt/scavenger/internal/hunt"
)

var testSets = []hunt.Clue{
	{ID: 1, Title: "One", Clue: "primary one", Hint: "hint one", AlternateClues: []string{"alt one a", "alt one b"}},
	{ID: 2, Title: "Two", Clue: "primary two", Hint: "hint two"},
}

func TestCatalogSessionSticky(t *testing.T) {
	c := hunt.NewCatalog(testSets, rand.NewPCG(1, 2))
	sess := hunt.NewClueSession()

	first, err := c.Clue(sess, 1)
	if err != nil {
		t.Fatalf("Clue: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := c.Clue(sess, 1)
		if err != nil {
			t.Fatalf("Clue: %v", err)
		}
		if again.Clue != first.Clue {
			t.Fatalf("call %d: clue changed from %q to %q", i, first.Clue, again.Clue)
		}
	}
	if first.Hint != "hint one" || first.Title != "One" {
		t.Errorf("unexpected clue metadata: %+v", first)
	}
}

func TestCatalogNoAlternatesUsesPrimary(t *testing.T) {
	c := hunt.NewCatalog(testSets, rand.NewPCG(3, 4))
	for i := 0; i < 50; i++ {
		got, err := c.Clue(hunt.NewClueSession(), 2)
		if err != nil {
			t.Fatalf("Clue: %v", err)
		}
		if got.Clue != "primary two" {
			t.Fatalf("clue = %q, want primary", got.Clue)
		}
	}
}

func TestCatalogUnknownOrdinal(t *testing.T) {
	c := hunt.NewCatalog(testSets, nil)
	_, err := c.Clue(hunt.NewClueSession(), 9)
	if !errors.Is(err, hunt.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCatalogNilSession(t *testing.T) {
	c := hunt.NewCatalog(testSets, nil)
	got, err := c.Clue(nil, 2)
	if err != nil {
		t.Fatalf("Clue: %v", err)
	}
	if got.Clue != "primary two" {
		t.Errorf("clue = %q, want primary", got.Clue)
	}
	c.ClearAll(nil)
	c.Reset(nil, 1)
}

func TestCatalogPrimaryAlternateSplit(t *testing.T) {
	c := hunt.NewCatalog(testSets, rand.NewPCG(42, 7))

	const sessions = 10000
	primary := 0
	alternates := map[string]int{}
	for i := 0; i < sessions; i++ {
		got, err := c.Clue(hunt.NewClueSession(), 1)
		if err != nil {
			t.Fatalf("Clue: %v", err)
		}
		if got.Clue == "primary one" {
			primary++
		} else {
			alternates[got.Clue]++
		}
	}

	ratio := float64(primary) / sessions
	if ratio < 0.45 || ratio > 0.55 {
		t.Errorf("primary ratio = %.3f, want close to 0.5", ratio)
	}
	if len(alternates) != 2 {
		t.Errorf("alternates drawn = %v, want both variants", alternates)
	}
}

func TestCatalogClearAndReset(t *testing.T) {
	c := hunt.NewCatalog(testSets, nil)
	sess := hunt.NewClueSession()

	// No-ops on an empty session.
	c.ClearAll(sess)
	c.Reset(sess, 1)

	if _, err := c.Clue(sess, 1); err != nil {
		t.Fatalf("Clue: %v", err)
	}
	if _, err := c.Clue(sess, 2); err != nil {
		t.Fatalf("Clue: %v", err)
	}

	c.Reset(sess, 1)
	if _, ok := sess.Clues[1]; ok {
		t.Error("Reset left ordinal 1 memoized")
	}
	if _, ok := sess.Clues[2]; !ok {
		t.Error("Reset dropped ordinal 2")
	}

	c.ClearAll(sess)
	if len(sess.Clues) != 0 {
		t.Errorf("ClearAll left %d clues", len(sess.Clues))
	}
}

func TestDefaultCatalogCoversEveryComponent(t *testing.T) {
	c := hunt.DefaultCatalog()
	sess := hunt.NewClueSession()
	for _, comp := range hunt.DefaultComponents() {
		ord := hunt.Ordinal(comp.ID)
		clue, err := c.Clue(sess, ord)
		if err != nil {
			t.Fatalf("Clue(%d) for %s: %v", ord, comp.ID, err)
		}
		if clue.Clue == "" || clue.Hint == "" {
			t.Errorf("ordinal %d has empty text", ord)
		}
	}
	if got := c.Ordinals(); len(got) != 5 || got[0] != 1 || got[4] != 5 {
		t.Errorf("Ordinals = %v, want 1..5", got)
	}
}
