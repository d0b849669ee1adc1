package core

import (
	"fmt"
	"time"
)

// WeekStats is the weekly roll-up over all records in the current calendar
// week. It is derived on demand and never persisted.
type WeekStats struct {
	TotalSpend    Money `json:"total_spend"`
	TotalCalories int   `json:"total_calories"`
	TotalMeals    int   `json:"total_meals"`

	WeekdaySpend    Money `json:"weekday_spend"`
	WeekdayCalories int   `json:"weekday_calories"`
	WeekdayMeals    int   `json:"weekday_meals"`

	WeekendSpend    Money `json:"weekend_spend"`
	WeekendCalories int   `json:"weekend_calories"`
	WeekendMeals    int   `json:"weekend_meals"`

	// Range is a human-readable label for the computed window,
	// e.g. "Aug 25 - Aug 31".
	Range string `json:"range"`
}

// mondayIndex maps time.Weekday (Sunday=0) to Monday=0 .. Sunday=6.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// IntervalAt derives the weekday/weekend bucket from a timestamp's
// weekday: Monday through Friday is weekday, Saturday and Sunday weekend.
// This is the only derivation path; it runs at insert time and again as
// the read-time fallback for legacy rows without a stored interval.
func IntervalAt(t time.Time) Interval {
	if mondayIndex(t.Weekday()) <= 4 {
		return IntervalWeekday
	}
	return IntervalWeekend
}

// WeekBounds returns the calendar week containing now: Monday 00:00:00
// through the following Sunday 23:59:59. Both ends are inclusive when
// filtering stored timestamps.
func WeekBounds(now time.Time) (start, end time.Time) {
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	start = today.AddDate(0, 0, -mondayIndex(today.Weekday()))
	end = start.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end
}

// WeekRangeLabel formats the window bounds for display.
func WeekRangeLabel(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2"))
}
