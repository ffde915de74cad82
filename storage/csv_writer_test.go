package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vegas-hotel-events/models"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return rows
}

func TestWriteDetailCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "analysis_summary.csv")
	stayStart := time.Date(2025, time.December, 26, 0, 0, 0, 0, time.UTC)

	results := []models.CorrelationResult{
		{
			Price: &models.PriceRecord{
				Name: "The Mirage", NumericPrice: 189, Rating: "8.1", Distance: "0.5 miles",
			},
			Window:     models.WeekendWindow{StayStart: stayStart, StayEnd: stayStart.AddDate(0, 0, 2)},
			Events:     []*models.EventRecord{{Name: "Fight Night"}, {Name: "Residency Show"}},
			EventCount: 2,
		},
		{
			Price:      &models.PriceRecord{Name: "Quiet Hotel", NumericPrice: 99},
			Window:     models.WeekendWindow{StayStart: stayStart, StayEnd: stayStart.AddDate(0, 0, 2)},
			EventCount: 0,
		},
	}

	if err := WriteDetailCSV(path, results); err != nil {
		t.Fatalf("WriteDetailCSV: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"hotel", "price", "rating", "distance", "checkin_date", "event_count", "event_names"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d]: got %q, want %q", i, rows[0][i], col)
		}
	}

	if rows[1][0] != "The Mirage" || rows[1][5] != "2" {
		t.Errorf("row 1: got hotel %q count %q", rows[1][0], rows[1][5])
	}
	if rows[1][6] != "Fight Night; Residency Show" {
		t.Errorf("event_names: got %q", rows[1][6])
	}
	if rows[1][4] != "2025-12-26" {
		t.Errorf("checkin_date: got %q", rows[1][4])
	}
	if rows[2][5] != "0" || rows[2][6] != "" {
		t.Errorf("no-match row: got count %q names %q", rows[2][5], rows[2][6])
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")

	rows := []models.SummaryRow{
		{EventCount: 0, AveragePrice: 150},
		{EventCount: 1, AveragePrice: 300},
	}
	if err := WriteSummaryCSV(path, rows); err != nil {
		t.Fatalf("WriteSummaryCSV: %v", err)
	}

	got := readRows(t, path)
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	if got[0][0] != "Events During Stay" || got[0][1] != "Average Price" {
		t.Errorf("header: got %v", got[0])
	}
	if got[1][0] != "0" || got[1][1] != "150.00" {
		t.Errorf("row 1: got %v", got[1])
	}
	if got[2][0] != "1" || got[2][1] != "300.00" {
		t.Errorf("row 2: got %v", got[2])
	}
}

func TestSnapshotWritersRoundTrip(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2025, time.December, 20, 12, 0, 0, 0, time.UTC)

	hotelPath := SnapshotPath(dir, "hotels", day)
	hw, err := NewHotelSnapshotWriter(hotelPath)
	if err != nil {
		t.Fatalf("NewHotelSnapshotWriter: %v", err)
	}
	err = hw.WriteRaw([]*models.RawHotelRow{
		{Name: "The Mirage", RawPrice: "$189", Rating: "8.1", ReviewCount: "1204", Distance: "0.5 miles", ScrapedAt: day},
	})
	if err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if err := hw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if filepath.Base(hotelPath) != "vegas_hotels_2025-12-20.csv" {
		t.Errorf("SnapshotPath: got %q", filepath.Base(hotelPath))
	}

	rows := readRows(t, hotelPath)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[1][0] != "The Mirage" || rows[1][5] != "2025-12-20" {
		t.Errorf("hotel row: got %v", rows[1])
	}

	eventPath := SnapshotPath(dir, "events", day)
	ew, err := NewEventSnapshotWriter(eventPath)
	if err != nil {
		t.Fatalf("NewEventSnapshotWriter: %v", err)
	}
	err = ew.WriteRaw([]*models.RawEventRow{
		{Name: "Fight Night", DateText: "Dec 26", Venue: "T-Mobile Arena", Category: "Sports"},
	})
	if err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if err := ew.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows = readRows(t, eventPath)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[1][1] != "Dec 26" {
		t.Errorf("event row date: got %q", rows[1][1])
	}
}
