package storage

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB / *sql.Tx the query layer needs.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// RecordRow mirrors one row of the records table. Interval is nullable:
// rows written before migration 0002 have no value there.
type RecordRow struct {
	ID        int64
	DishName  string
	Amount    float64
	Calories  int64
	Mode      string
	Category  string
	CreatedAt string
	Interval  sql.NullString
}

const createRecord = `
INSERT INTO records (dish_name, amount, calories, mode, category, created_at, interval)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, dish_name, amount, calories, mode, category, created_at, interval
`

type CreateRecordParams struct {
	DishName  string
	Amount    float64
	Calories  int64
	Mode      string
	Category  string
	CreatedAt string
	Interval  string
}

func (q *Queries) CreateRecord(ctx context.Context, arg CreateRecordParams) (RecordRow, error) {
	row := q.db.QueryRowContext(ctx, createRecord,
		arg.DishName,
		arg.Amount,
		arg.Calories,
		arg.Mode,
		arg.Category,
		arg.CreatedAt,
		arg.Interval,
	)
	var r RecordRow
	err := row.Scan(
		&r.ID,
		&r.DishName,
		&r.Amount,
		&r.Calories,
		&r.Mode,
		&r.Category,
		&r.CreatedAt,
		&r.Interval,
	)
	return r, err
}

const getRecord = `
SELECT id, dish_name, amount, calories, mode, category, created_at, interval
FROM records
WHERE id = ?
`

func (q *Queries) GetRecord(ctx context.Context, id int64) (RecordRow, error) {
	row := q.db.QueryRowContext(ctx, getRecord, id)
	var r RecordRow
	err := row.Scan(
		&r.ID,
		&r.DishName,
		&r.Amount,
		&r.Calories,
		&r.Mode,
		&r.Category,
		&r.CreatedAt,
		&r.Interval,
	)
	return r, err
}

const updateRecord = `
UPDATE records
SET dish_name = ?, amount = ?, calories = ?, mode = ?, category = ?
WHERE id = ?
`

type UpdateRecordParams struct {
	DishName string
	Amount   float64
	Calories int64
	Mode     string
	Category string
	ID       int64
}

// UpdateRecord rewrites content fields only. created_at and interval are
// deliberately absent from the SET list; they are fixed at insert time.
func (q *Queries) UpdateRecord(ctx context.Context, arg UpdateRecordParams) error {
	_, err := q.db.ExecContext(ctx, updateRecord,
		arg.DishName,
		arg.Amount,
		arg.Calories,
		arg.Mode,
		arg.Category,
		arg.ID,
	)
	return err
}

const deleteRecord = `
DELETE FROM records
WHERE id = ?
`

func (q *Queries) DeleteRecord(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteRecord, id)
	return err
}

const listRecordsInWindow = `
SELECT id, dish_name, amount, calories, mode, category, created_at, interval
FROM records
WHERE created_at >= ? AND created_at <= ?
ORDER BY created_at
`

type ListRecordsInWindowParams struct {
	Start string
	End   string
}

func (q *Queries) ListRecordsInWindow(ctx context.Context, arg ListRecordsInWindowParams) ([]RecordRow, error) {
	rows, err := q.db.QueryContext(ctx, listRecordsInWindow, arg.Start, arg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RecordRow
	for rows.Next() {
		var r RecordRow
		if err := rows.Scan(
			&r.ID,
			&r.DishName,
			&r.Amount,
			&r.Calories,
			&r.Mode,
			&r.Category,
			&r.CreatedAt,
			&r.Interval,
		); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
