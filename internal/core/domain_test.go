package core

import (
	"testing"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"disciplined", ModeDisciplined, true},
		{"indulgent", ModeIndulgent, true},
		{" disciplined ", ModeDisciplined, true},
		{"", "", false},
		{"snacky", "", false},
		{"Disciplined", "", false},
	}
	for i, tc := range cases {
		got, err := ParseMode(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d: got (%q, %v), want %q", i, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestIntervalValid(t *testing.T) {
	if !IntervalWeekday.Valid() || !IntervalWeekend.Valid() {
		t.Fatal("known intervals must be valid")
	}
	if Interval("").Valid() {
		t.Fatal("empty interval must not be valid")
	}
	if Interval("holiday").Valid() {
		t.Fatal("unknown interval must not be valid")
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{
		Dish:     "grilled chicken bowl",
		Amount:   Money{Tenths: 255},
		Calories: 480,
		Mode:     ModeDisciplined,
		Category: "bowl",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		name string
		rec  Record
		want error
	}{
		{"empty dish", Record{Dish: "  ", Amount: Money{Tenths: 1}, Calories: 1, Mode: ModeIndulgent, Category: "c"}, ErrEmptyDish},
		{"negative amount", Record{Dish: "a", Amount: Money{Tenths: -1}, Calories: 1, Mode: ModeIndulgent, Category: "c"}, ErrInvalidAmount},
		{"negative calories", Record{Dish: "a", Amount: Money{Tenths: 1}, Calories: -1, Mode: ModeIndulgent, Category: "c"}, ErrInvalidCalories},
		{"bad mode", Record{Dish: "a", Amount: Money{Tenths: 1}, Calories: 1, Mode: "feast", Category: "c"}, ErrInvalidMode},
		{"empty category", Record{Dish: "a", Amount: Money{Tenths: 1}, Calories: 1, Mode: ModeIndulgent, Category: ""}, ErrEmptyCategory},
	}
	for _, tc := range bads {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.rec.Validate(); err != tc.want {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRecordZeroAmountAndCaloriesAllowed(t *testing.T) {
	rec := Record{
		Dish:     "tap water",
		Amount:   Money{},
		Calories: 0,
		Mode:     ModeDisciplined,
		Category: "drink",
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("zero amount and calories should validate, got %v", err)
	}
}
