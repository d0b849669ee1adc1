package services

import (
	"context"
	"fmt"
	"log/slog"

	"mealgacha/internal/core"
	"mealgacha/internal/storage"
)

// RecordService is the store boundary for consumption records. It owns
// input validation: the repository below trusts its arguments, and mode
// in particular is re-checked here on both save and update since the
// store is the durability boundary.
type RecordService struct {
	storage *storage.SQLiteRepository
}

func NewRecordService(storage *storage.SQLiteRepository) *RecordService {
	return &RecordService{storage: storage}
}

// RecordInput carries the caller-supplied content fields of a record.
type RecordInput struct {
	Dish     string
	Amount   core.Money
	Calories int
	Mode     core.Mode
	Category string
}

func (in RecordInput) validate() error {
	probe := core.Record{
		Dish:     in.Dish,
		Amount:   in.Amount,
		Calories: in.Calories,
		Mode:     in.Mode,
		Category: in.Category,
	}
	return probe.Validate()
}

// Save validates the input and appends a new record; the store stamps
// the timestamp and interval.
func (s *RecordService) Save(ctx context.Context, in RecordInput) (core.Record, error) {
	if err := in.validate(); err != nil {
		return core.Record{}, fmt.Errorf("validate record: %w", err)
	}

	rec, err := s.storage.Save(ctx, in.Dish, in.Amount, in.Calories, in.Mode, in.Category)
	if err != nil {
		return core.Record{}, fmt.Errorf("save record: %w", err)
	}
	return rec, nil
}

// GetByID returns the record or storage.ErrNotFound.
func (s *RecordService) GetByID(ctx context.Context, id int64) (core.Record, error) {
	return s.storage.GetByID(ctx, id)
}

// Update validates the input and rewrites the content fields of id.
// A missing id stays a benign no-op.
func (s *RecordService) Update(ctx context.Context, id int64, in RecordInput) error {
	if err := in.validate(); err != nil {
		return fmt.Errorf("validate record: %w", err)
	}
	if err := s.storage.Update(ctx, id, in.Dish, in.Amount, in.Calories, in.Mode, in.Category); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

// Delete removes the record; a missing id is a benign no-op.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// WeekStats computes the current week's roll-up.
func (s *RecordService) WeekStats(ctx context.Context) (core.WeekStats, error) {
	stats, err := s.storage.WeekStats(ctx)
	if err != nil {
		return core.WeekStats{}, fmt.Errorf("week stats: %w", err)
	}

	slog.DebugContext(ctx, "Week stats computed",
		"range", stats.Range,
		"total_meals", stats.TotalMeals,
		"total_spend_tenths", stats.TotalSpend.Tenths)

	return stats, nil
}

// WeekRecords lists the current week's records in creation order.
func (s *RecordService) WeekRecords(ctx context.Context) ([]core.Record, error) {
	records, err := s.storage.WeekRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("week records: %w", err)
	}
	return records, nil
}

// Close releases the underlying store.
func (s *RecordService) Close() error {
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			return fmt.Errorf("close storage: %w", err)
		}
	}
	return nil
}
