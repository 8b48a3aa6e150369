package services

import (
	"testing"
	"time"
)

func TestFirstOfMonth(t *testing.T) {
	got := firstOfMonth(time.Date(2024, 3, 17, 15, 42, 1, 0, time.UTC))
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestMonthWindow(t *testing.T) {
	start, next := monthWindow(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC))
	if !start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %s", start)
	}
	if !next.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected next %s", next)
	}
}

func TestMonthFromIndex(t *testing.T) {
	cases := []struct {
		year, month int
		want        time.Time
	}{
		{2024, 0, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{2024, 2, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{2024, 11, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
		// Out-of-range indexes normalize by date arithmetic.
		{2024, -1, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
		{2024, 12, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		if got := monthFromIndex(c.year, c.month); !got.Equal(c.want) {
			t.Errorf("monthFromIndex(%d, %d) = %s, want %s", c.year, c.month, got, c.want)
		}
	}
}
