package catalog

import (
	"errors"
	"math/rand"
	"testing"

	"mealgacha/internal/core"
)

func TestDrawMatchesRequestedMode(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	engine := NewEngineWithSource(c, rand.New(rand.NewSource(1)))

	for _, mode := range []core.Mode{core.ModeDisciplined, core.ModeIndulgent} {
		for i := 0; i < 50; i++ {
			res, err := engine.Draw(mode)
			if err != nil {
				t.Fatalf("draw %s: %v", mode, err)
			}
			if res.Mode != mode {
				t.Fatalf("result mode %s, want %s", res.Mode, mode)
			}
			if res.Item.Mode != mode {
				t.Fatalf("item %q tagged %s, want %s", res.Item.Name, res.Item.Mode, mode)
			}
		}
	}
}

func TestDrawCoversFullCandidateSet(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	engine := NewEngineWithSource(c, rand.New(rand.NewSource(42)))

	for _, mode := range []core.Mode{core.ModeDisciplined, core.ModeIndulgent} {
		candidates := c.ByMode(mode)
		seen := make(map[string]bool, len(candidates))
		// Enough trials that missing any item would mean it is unreachable,
		// not unlucky.
		for i := 0; i < 200*len(candidates); i++ {
			res, err := engine.Draw(mode)
			if err != nil {
				t.Fatalf("draw %s: %v", mode, err)
			}
			seen[res.Item.Name] = true
		}
		for _, item := range candidates {
			if !seen[item.Name] {
				t.Fatalf("mode %s: item %q never drawn", mode, item.Name)
			}
		}
	}
}

func TestDrawInvalidMode(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	engine := NewEngine(c)
	if _, err := engine.Draw("snack"); !errors.Is(err, core.ErrInvalidMode) {
		t.Fatalf("got %v, want ErrInvalidMode", err)
	}
}

func TestDrawEmptyCandidateSet(t *testing.T) {
	// Bypass Load validation to simulate a broken configuration.
	c := &Catalog{byMode: map[core.Mode][]core.FoodItem{}}
	engine := NewEngineWithSource(c, rand.New(rand.NewSource(1)))
	if _, err := engine.Draw(core.ModeDisciplined); !errors.Is(err, core.ErrNoCandidates) {
		t.Fatalf("got %v, want ErrNoCandidates", err)
	}
}
