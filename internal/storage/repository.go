package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mealgacha/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound signals a point lookup on an absent identifier. Expected
// and non-fatal; callers check it with errors.Is.
var ErrNotFound = errors.New("record not found")

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries

	// now is the wall clock used to stamp inserts and compute the week
	// window. Overridable in tests.
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
		now:     time.Now,
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save stamps the current wall-clock time, derives the interval bucket
// from it, and appends the row. The stored record with its assigned id
// comes back to the caller.
func (r *SQLiteRepository) Save(ctx context.Context, dish string, amount core.Money, calories int, mode core.Mode, category string) (core.Record, error) {
	now := r.now()
	row, err := r.queries.CreateRecord(ctx, CreateRecordParams{
		DishName:  dish,
		Amount:    amount.Units(),
		Calories:  int64(calories),
		Mode:      string(mode),
		Category:  category,
		CreatedAt: now.Format(core.TimeLayout),
		Interval:  string(core.IntervalAt(now)),
	})
	if err != nil {
		return core.Record{}, fmt.Errorf("create record: %w", err)
	}

	rec, err := rowToRecord(row)
	if err != nil {
		return core.Record{}, err
	}

	slog.InfoContext(ctx, "Record saved",
		"id", rec.ID,
		"dish", rec.Dish,
		"amount_tenths", rec.Amount.Tenths,
		"mode", rec.Mode,
		"interval", rec.Interval)

	return rec, nil
}

// GetByID returns the record for id, or ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (core.Record, error) {
	row, err := r.queries.GetRecord(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get record by id: %w", err)
	}
	return rowToRecord(row)
}

// Update rewrites the content fields of the row matching id. created_at
// and interval stay untouched. A missing id is a benign no-op: the single
// interactive user may race a stale view against an earlier delete.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, dish string, amount core.Money, calories int, mode core.Mode, category string) error {
	err := r.queries.UpdateRecord(ctx, UpdateRecordParams{
		DishName: dish,
		Amount:   amount.Units(),
		Calories: int64(calories),
		Mode:     string(mode),
		Category: category,
		ID:       id,
	})
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}

	slog.InfoContext(ctx, "Record updated", "id", id, "dish", dish)
	return nil
}

// Delete removes the row if present; missing ids are a benign no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if err := r.queries.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	slog.InfoContext(ctx, "Record deleted", "id", id)
	return nil
}

// WeekRecords returns the current week's records in ascending creation
// order, for detail display and as the basis for edit/delete by id.
func (r *SQLiteRepository) WeekRecords(ctx context.Context) ([]core.Record, error) {
	start, end := core.WeekBounds(r.now())
	rows, err := r.queries.ListRecordsInWindow(ctx, ListRecordsInWindowParams{
		Start: start.Format(core.TimeLayout),
		End:   end.Format(core.TimeLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("list week records: %w", err)
	}

	records := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// WeekStats re-scans and re-sums the current week's rows on every call.
// No caching and no incremental maintenance, so the summary is always
// consistent with the latest edits and deletes.
func (r *SQLiteRepository) WeekStats(ctx context.Context) (core.WeekStats, error) {
	start, end := core.WeekBounds(r.now())
	rows, err := r.queries.ListRecordsInWindow(ctx, ListRecordsInWindowParams{
		Start: start.Format(core.TimeLayout),
		End:   end.Format(core.TimeLayout),
	})
	if err != nil {
		return core.WeekStats{}, fmt.Errorf("scan week records: %w", err)
	}

	stats := core.WeekStats{Range: core.WeekRangeLabel(start, end)}
	for _, row := range rows {
		rec, err := rowToRecord(row)
		if err != nil {
			return core.WeekStats{}, err
		}

		stats.TotalSpend.Tenths += rec.Amount.Tenths
		stats.TotalCalories += rec.Calories
		stats.TotalMeals++

		if rec.Interval == core.IntervalWeekday {
			stats.WeekdaySpend.Tenths += rec.Amount.Tenths
			stats.WeekdayCalories += rec.Calories
			stats.WeekdayMeals++
		} else {
			stats.WeekendSpend.Tenths += rec.Amount.Tenths
			stats.WeekendCalories += rec.Calories
			stats.WeekendMeals++
		}
	}

	return stats, nil
}

// rowToRecord converts a table row into a domain record. Rows older than
// migration 0002 carry no interval; those fall back to deriving it from
// the stored timestamp via the same function insert uses.
func rowToRecord(row RecordRow) (core.Record, error) {
	createdAt, err := time.Parse(core.TimeLayout, row.CreatedAt)
	if err != nil {
		return core.Record{}, fmt.Errorf("parse created_at %q: %w", row.CreatedAt, err)
	}

	// The fallback is strictly for absent values; a non-empty stored
	// interval is trusted as written.
	interval := core.Interval(row.Interval.String)
	if !row.Interval.Valid || row.Interval.String == "" {
		interval = core.IntervalAt(createdAt)
	}

	return core.Record{
		ID:        row.ID,
		Dish:      row.DishName,
		Amount:    core.MoneyFromUnits(row.Amount),
		Calories:  int(row.Calories),
		Mode:      core.Mode(row.Mode),
		Category:  row.Category,
		CreatedAt: createdAt,
		Interval:  interval,
	}, nil
}
