package storage

import (
	"os"
	"path/filepath"
	"testing"

	"vegas-hotel-events/utils"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
}

func TestLoadPricesMergesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vegas_hotels_2025-12-20.csv",
		"name,price,rating,review_count,distance,date_scraped\n"+
			"The Mirage,$189,8.1,1204,0.5 miles from center,2025-12-20\n")
	writeFile(t, dir, "vegas_hotels_2025-12-21.csv",
		"name,price,rating,review_count,distance,date_scraped\n"+
			"Bellagio,\"$1,204\",9.0,5400,0.2 miles from center,2025-12-21\n")

	loader := NewRecordLoader(dir, utils.NewLogger(false))
	records, err := loader.LoadPrices()
	if err != nil {
		t.Fatalf("LoadPrices: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records across files, got %d", len(records))
	}
	if records[0].Name != "The Mirage" || records[1].Name != "Bellagio" {
		t.Errorf("merge order: got %q, %q", records[0].Name, records[1].Name)
	}
	if records[1].RawPrice != "$1,204" {
		t.Errorf("RawPrice: got %q, want %q", records[1].RawPrice, "$1,204")
	}
}

func TestLoadPricesMatchesColumnsByName(t *testing.T) {
	dir := t.TempDir()
	// Reordered columns, extra column — header names decide.
	writeFile(t, dir, "vegas_hotels_2025-12-20.csv",
		"date_scraped,extra,price,name\n"+
			"2025-12-20,x,$250,Caesars Palace\n")

	loader := NewRecordLoader(dir, utils.NewLogger(false))
	records, err := loader.LoadPrices()
	if err != nil {
		t.Fatalf("LoadPrices: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Name != "Caesars Palace" || records[0].RawPrice != "$250" {
		t.Errorf("got name %q price %q", records[0].Name, records[0].RawPrice)
	}
	if records[0].CollectedOn.Format("2006-01-02") != "2025-12-20" {
		t.Errorf("CollectedOn: got %s", records[0].CollectedOn.Format("2006-01-02"))
	}
}

func TestLoadPricesSkipsRowsWithBadDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vegas_hotels_2025-12-20.csv",
		"name,price,date_scraped\n"+
			"Good Row,$100,2025-12-20\n"+
			"Bad Date,$100,yesterday\n"+
			",$100,2025-12-20\n")

	loader := NewRecordLoader(dir, utils.NewLogger(false))
	records, err := loader.LoadPrices()
	if err != nil {
		t.Fatalf("LoadPrices: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected only the valid row, got %d records", len(records))
	}
	if records[0].Name != "Good Row" {
		t.Errorf("got %q", records[0].Name)
	}
}

func TestLoadPricesNoFiles(t *testing.T) {
	loader := NewRecordLoader(t.TempDir(), utils.NewLogger(false))
	records, err := loader.LoadPrices()
	if err != nil {
		t.Fatalf("LoadPrices on empty dir: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestLoadEventsMergesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vegas_events_2025-12-20.csv",
		"name,date,venue,category\n"+
			"Residency Show,Dec 26,The Sphere,Music\n"+
			"Fight Night,Dec 26,T-Mobile Arena,Sports\n")
	writeFile(t, dir, "vegas_events_2025-12-21.csv",
		"name,date,venue,category\n"+
			"NYE Party,Dec 31,Fremont Street,Festival\n")

	loader := NewRecordLoader(dir, utils.NewLogger(false))
	records, err := loader.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].RawDate != "Dec 26" || records[0].Venue != "The Sphere" {
		t.Errorf("first record: got date %q venue %q", records[0].RawDate, records[0].Venue)
	}
}

func TestLoadEventsSkipsNamelessRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vegas_events_2025-12-20.csv",
		"name,date,venue,category\n"+
			",Dec 26,The Sphere,Music\n"+
			"Named Event,Dec 27,,\n")

	loader := NewRecordLoader(dir, utils.NewLogger(false))
	records, err := loader.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Named Event" {
		t.Fatalf("expected only the named row, got %d records", len(records))
	}
}
