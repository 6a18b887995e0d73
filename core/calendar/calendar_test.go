package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestStartOfWeekMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "monday", in: date(2024, 3, 11), want: date(2024, 3, 11)},
		{name: "wednesday", in: date(2024, 3, 13), want: date(2024, 3, 11)},
		{name: "sunday", in: date(2024, 3, 17), want: date(2024, 3, 11)},
		{name: "saturday with time-of-day", in: time.Date(2024, 3, 16, 18, 30, 0, 0, time.Local), want: date(2024, 3, 11)},
		{name: "across month boundary", in: date(2024, 5, 1), want: date(2024, 4, 29)},
		{name: "across year boundary", in: date(2024, 1, 3), want: date(2024, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeekMonday(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeekMonday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantFirst time.Time
		wantLast  time.Time
	}{
		{name: "31-day month", in: date(2024, 5, 15), wantFirst: date(2024, 5, 1), wantLast: date(2024, 5, 31)},
		{name: "leap february", in: date(2024, 2, 10), wantFirst: date(2024, 2, 1), wantLast: date(2024, 2, 29)},
		{name: "non-leap february", in: date(2023, 2, 10), wantFirst: date(2023, 2, 1), wantLast: date(2023, 2, 28)},
		{name: "december", in: date(2024, 12, 31), wantFirst: date(2024, 12, 1), wantLast: date(2024, 12, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfMonth(tt.in); !got.Equal(tt.wantFirst) {
				t.Errorf("StartOfMonth() = %v, want %v", got, tt.wantFirst)
			}
			if got := EndOfMonth(tt.in); !got.Equal(tt.wantLast) {
				t.Errorf("EndOfMonth() = %v, want %v", got, tt.wantLast)
			}
		})
	}
}

func TestAddMonthsRollover(t *testing.T) {
	// Jan 31 + 1 month rolls over into March (time.AddDate semantics).
	got := AddMonths(date(2024, 1, 31), 1)
	if want := date(2024, 3, 2); !got.Equal(want) {
		t.Errorf("AddMonths() = %v, want %v", got, want)
	}
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)
	b := time.Date(2024, 5, 1, 23, 59, 0, 0, time.Local)
	if !IsSameDay(a, b) {
		t.Error("IsSameDay() = false, want true")
	}
	if IsSameDay(a, AddDays(b, 1)) {
		t.Error("IsSameDay() = true, want false")
	}
}

func TestDays(t *testing.T) {
	days := Days(date(2024, 4, 29), date(2024, 5, 2))
	if len(days) != 4 {
		t.Fatalf("Days() len = %d, want 4", len(days))
	}
	if !days[0].Equal(date(2024, 4, 29)) || !days[3].Equal(date(2024, 5, 2)) {
		t.Errorf("Days() bounds = %v .. %v", days[0], days[3])
	}

	if got := Days(date(2024, 5, 2), date(2024, 5, 1)); got != nil {
		t.Errorf("Days() on inverted bounds = %v, want nil", got)
	}
}

func TestOverlapsDay(t *testing.T) {
	start := date(2024, 3, 10)
	end := date(2024, 3, 12)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{name: "day before range", day: date(2024, 3, 9), want: false},
		{name: "range start", day: date(2024, 3, 10), want: true},
		{name: "middle of range", day: date(2024, 3, 11), want: true},
		{name: "range end", day: date(2024, 3, 12), want: true},
		{name: "day after range", day: date(2024, 3, 13), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapsDay(start, end, tt.day); got != tt.want {
				t.Errorf("OverlapsDay() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("zero end matches start day only", func(t *testing.T) {
		if !OverlapsDay(start, time.Time{}, date(2024, 3, 10)) {
			t.Error("OverlapsDay() = false, want true")
		}
		if OverlapsDay(start, time.Time{}, date(2024, 3, 11)) {
			t.Error("OverlapsDay() = true, want false")
		}
	})

	t.Run("inverted range never overlaps", func(t *testing.T) {
		if OverlapsDay(end, start, date(2024, 3, 11)) {
			t.Error("OverlapsDay() = true, want false")
		}
	})
}
