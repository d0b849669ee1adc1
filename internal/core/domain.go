package core

import (
	"errors"
	"strings"
	"time"
)

const (
	ModeDisciplined Mode = "disciplined"
	ModeIndulgent   Mode = "indulgent"

	IntervalWeekday Interval = "weekday"
	IntervalWeekend Interval = "weekend"
)

// TimeLayout is the canonical timestamp format for stored records.
const TimeLayout = "2006-01-02 15:04:05"

type (
	// Mode is one of two mutually exclusive eating profiles.
	Mode string

	// Interval classifies a record by the weekday of its creation
	// timestamp. Fixed at insert time, never recomputed afterwards.
	Interval string

	// FoodItem is a static, read-only catalog entry.
	FoodItem struct {
		Name     string `json:"name"`
		Calories int    `json:"calories"`
		Pairing  string `json:"pairing"`
		Mode     Mode   `json:"mode"`
		Category string `json:"category"`
		// Note is a cautionary remark for disciplined items and a
		// lighthearted tip for indulgent ones.
		Note string `json:"note"`
	}

	// DrawResult is an ephemeral snapshot of one drawn FoodItem. It is
	// never persisted; the user confirms it before a Record is saved.
	DrawResult struct {
		Item FoodItem `json:"item"`
		Mode Mode     `json:"mode"`
	}

	// Record is one logged consumption event.
	Record struct {
		ID        int64     `json:"id"`
		Dish      string    `json:"dish"`
		Amount    Money     `json:"amount"`
		Calories  int       `json:"calories"`
		Mode      Mode      `json:"mode"`
		Category  string    `json:"category"`
		CreatedAt time.Time `json:"created_at"`
		Interval  Interval  `json:"interval"`
	}
)

var (
	ErrInvalidMode     = errors.New("invalid mode")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCalories = errors.New("invalid calories")
	ErrEmptyDish       = errors.New("empty dish name")
	ErrEmptyCategory   = errors.New("empty category")
	ErrNoCandidates    = errors.New("no catalog candidates for mode")
)

// ParseMode maps a raw string to a Mode, rejecting anything outside the
// closed two-element set.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.TrimSpace(s)) {
	case ModeDisciplined:
		return ModeDisciplined, nil
	case ModeIndulgent:
		return ModeIndulgent, nil
	default:
		return "", ErrInvalidMode
	}
}

// Valid reports whether the mode is one of the two known variants.
func (m Mode) Valid() bool {
	return m == ModeDisciplined || m == ModeIndulgent
}

// Valid reports whether the interval is one of the two known buckets.
// The empty string is not valid; legacy rows carry it and are bucketed by
// fallback derivation instead.
func (i Interval) Valid() bool {
	return i == IntervalWeekday || i == IntervalWeekend
}

func (r Record) Validate() error {
	if len(strings.TrimSpace(r.Dish)) == 0 {
		return ErrEmptyDish
	}
	if r.Amount.Tenths < 0 {
		return ErrInvalidAmount
	}
	if r.Calories < 0 {
		return ErrInvalidCalories
	}
	if !r.Mode.Valid() {
		return ErrInvalidMode
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
