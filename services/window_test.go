package services

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWindowAlwaysNextFriday(t *testing.T) {
	tests := []struct {
		collectedOn time.Time
		wantStart   time.Time
	}{
		{date(2025, time.December, 20), date(2025, time.December, 26)}, // Saturday
		{date(2025, time.December, 21), date(2025, time.December, 26)}, // Sunday
		{date(2025, time.December, 22), date(2025, time.December, 26)}, // Monday
		{date(2025, time.December, 25), date(2025, time.December, 26)}, // Thursday
		{date(2025, time.December, 27), date(2026, time.January, 2)},   // Saturday, year boundary
	}

	for _, tt := range tests {
		got := ResolveWindow(tt.collectedOn)
		if !got.StayStart.Equal(tt.wantStart) {
			t.Errorf("ResolveWindow(%s).StayStart = %s; want %s",
				tt.collectedOn.Format("2006-01-02"), got.StayStart.Format("2006-01-02"), tt.wantStart.Format("2006-01-02"))
		}
		if got.StayStart.Weekday() != time.Friday {
			t.Errorf("ResolveWindow(%s).StayStart is a %s, want Friday",
				tt.collectedOn.Format("2006-01-02"), got.StayStart.Weekday())
		}
		if !got.StayStart.After(tt.collectedOn) {
			t.Errorf("ResolveWindow(%s).StayStart = %s is not strictly after the collection date",
				tt.collectedOn.Format("2006-01-02"), got.StayStart.Format("2006-01-02"))
		}
		if want := got.StayStart.AddDate(0, 0, 2); !got.StayEnd.Equal(want) {
			t.Errorf("StayEnd = %s; want StayStart + 2 days (%s)",
				got.StayEnd.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}

func TestResolveWindowFridayRollsToNextWeek(t *testing.T) {
	friday := date(2025, time.December, 26)
	got := ResolveWindow(friday)

	want := friday.AddDate(0, 0, 7)
	if !got.StayStart.Equal(want) {
		t.Errorf("ResolveWindow(Friday).StayStart = %s; want %s (never same-day check-in)",
			got.StayStart.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}
