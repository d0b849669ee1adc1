// Package drawcache passes a draw result across a client page transition.
//
// It is a write-once, read-many-until-deleted key-value store keyed by a
// generated opaque ticket: no TTL, no ordering guarantees, explicit
// delete. It sits outside the record store's consistency domain.
package drawcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"mealgacha/internal/core"
)

// Store keeps one JSON file per ticket under a dedicated directory, so a
// result survives a process restart between draw and confirmation.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create draw cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(ticket string) string {
	return filepath.Join(s.dir, ticket+".json")
}

// validTicket accepts only tickets this store could have issued. Anything
// else, including path fragments smuggled in by a client, is treated as
// unknown rather than joined into the cache directory.
func validTicket(ticket string) bool {
	return uuid.Validate(ticket) == nil
}

// Put stores a draw result and returns its ticket.
func (s *Store) Put(ctx context.Context, res core.DrawResult) (string, error) {
	ticket := uuid.NewString()
	data, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshal draw result: %w", err)
	}
	if err := os.WriteFile(s.path(ticket), data, 0644); err != nil {
		return "", fmt.Errorf("write draw result: %w", err)
	}

	slog.DebugContext(ctx, "Draw result cached", "ticket", ticket, "dish", res.Item.Name)
	return ticket, nil
}

// Take reads the result for a ticket without removing it; the consumer
// deletes explicitly once the hand-off is done. Missing or garbled
// entries report ok=false, not an error.
func (s *Store) Take(ctx context.Context, ticket string) (core.DrawResult, bool, error) {
	if !validTicket(ticket) {
		return core.DrawResult{}, false, nil
	}
	data, err := os.ReadFile(s.path(ticket))
	if errors.Is(err, fs.ErrNotExist) {
		return core.DrawResult{}, false, nil
	}
	if err != nil {
		return core.DrawResult{}, false, fmt.Errorf("read draw result: %w", err)
	}

	var res core.DrawResult
	if err := json.Unmarshal(data, &res); err != nil {
		slog.WarnContext(ctx, "Discarding garbled draw cache entry", "ticket", ticket, "error", err)
		return core.DrawResult{}, false, nil
	}
	return res, true, nil
}

// Delete removes a ticket's entry. Missing and malformed tickets are
// no-ops.
func (s *Store) Delete(ctx context.Context, ticket string) error {
	if !validTicket(ticket) {
		return nil
	}
	if err := os.Remove(s.path(ticket)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete draw result: %w", err)
	}
	return nil
}
