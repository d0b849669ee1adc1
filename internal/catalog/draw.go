package catalog

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"mealgacha/internal/core"
)

// Source is the randomness provider for draws. The engine serializes
// calls, so implementations need not be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n). Precondition: n > 0.
	Intn(n int) int
}

// Engine picks one catalog item uniformly at random from the per-mode
// candidate set. Stateless apart from RNG consumption; the mutex
// serializes access to the source so Draw is safe under the HTTP server.
type Engine struct {
	catalog *Catalog
	mu      sync.Mutex
	src     Source
}

// NewEngine creates a draw engine with a time-seeded RNG.
func NewEngine(c *Catalog) *Engine {
	return NewEngineWithSource(c, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEngineWithSource creates a draw engine with an explicit randomness
// source, for deterministic tests.
func NewEngineWithSource(c *Catalog, src Source) *Engine {
	return &Engine{catalog: c, src: src}
}

// Draw returns one uniformly selected item tagged for the given mode.
// An invalid mode or an empty candidate set is an error; the latter can
// only happen with a hand-edited catalog, since Load rejects it.
func (e *Engine) Draw(mode core.Mode) (core.DrawResult, error) {
	if !mode.Valid() {
		return core.DrawResult{}, fmt.Errorf("draw: %w", core.ErrInvalidMode)
	}
	candidates := e.catalog.byMode[mode]
	if len(candidates) == 0 {
		return core.DrawResult{}, fmt.Errorf("draw mode %s: %w", mode, core.ErrNoCandidates)
	}
	e.mu.Lock()
	idx := e.src.Intn(len(candidates))
	e.mu.Unlock()
	return core.DrawResult{Item: candidates[idx], Mode: mode}, nil
}
