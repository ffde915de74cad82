package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"vegas-hotel-events/models"
)

// HotelSnapshotWriter writes raw hotel rows to a dated snapshot CSV.
// It is safe for concurrent use.
type HotelSnapshotWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewHotelSnapshotWriter creates (or truncates) the snapshot file at the
// given path and writes the header row. Intermediate directories are
// created automatically.
func NewHotelSnapshotWriter(path string) (*HotelSnapshotWriter, error) {
	f, w, err := createCSV(path, []string{
		"name", "price", "rating", "review_count", "distance", "date_scraped",
	})
	if err != nil {
		return nil, err
	}
	return &HotelSnapshotWriter{file: f, writer: w}, nil
}

// WriteRaw appends the given hotel rows to the snapshot file.
func (s *HotelSnapshotWriter) WriteRaw(rows []*models.RawHotelRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rows {
		record := []string{
			r.Name,
			r.RawPrice,
			r.Rating,
			r.ReviewCount,
			r.Distance,
			r.ScrapedAt.Format("2006-01-02"),
		}
		if err := s.writer.Write(record); err != nil {
			return fmt.Errorf("csv: write hotel row: %w", err)
		}
	}

	s.writer.Flush()
	return s.writer.Error()
}

// Close flushes and closes the underlying file.
func (s *HotelSnapshotWriter) Close() error {
	s.writer.Flush()
	return s.file.Close()
}

// EventSnapshotWriter writes raw event rows to a dated snapshot CSV.
// It is safe for concurrent use.
type EventSnapshotWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewEventSnapshotWriter creates (or truncates) the snapshot file at the
// given path and writes the header row.
func NewEventSnapshotWriter(path string) (*EventSnapshotWriter, error) {
	f, w, err := createCSV(path, []string{"name", "date", "venue", "category"})
	if err != nil {
		return nil, err
	}
	return &EventSnapshotWriter{file: f, writer: w}, nil
}

// WriteRaw appends the given event rows to the snapshot file.
func (s *EventSnapshotWriter) WriteRaw(rows []*models.RawEventRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rows {
		if err := s.writer.Write([]string{r.Name, r.DateText, r.Venue, r.Category}); err != nil {
			return fmt.Errorf("csv: write event row: %w", err)
		}
	}

	s.writer.Flush()
	return s.writer.Error()
}

// Close flushes and closes the underlying file.
func (s *EventSnapshotWriter) Close() error {
	s.writer.Flush()
	return s.file.Close()
}

// SnapshotPath builds the dated snapshot filename a scraper writes to,
// matching the pattern the loader globs for.
func SnapshotPath(dataDir, source string, day time.Time) string {
	return filepath.Join(dataDir, fmt.Sprintf("vegas_%s_%s.csv", source, day.Format("2006-01-02")))
}

// WriteDetailCSV writes the per-record correlation table — the durable
// record of a run. One row per price record that survived parsing.
func WriteDetailCSV(path string, results []models.CorrelationResult) error {
	f, w, err := createCSV(path, []string{
		"hotel", "price", "rating", "distance", "checkin_date", "event_count", "event_names",
	})
	if err != nil {
		return err
	}
	defer f.Close()

	for _, r := range results {
		names := make([]string, 0, len(r.Events))
		for _, ev := range r.Events {
			names = append(names, ev.Name)
		}
		row := []string{
			r.Price.Name,
			strconv.FormatFloat(r.Price.NumericPrice, 'f', -1, 64),
			r.Price.Rating,
			r.Price.Distance,
			r.Window.StayStart.Format("2006-01-02"),
			strconv.Itoa(r.EventCount),
			strings.Join(names, "; "),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write detail row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteSummaryCSV writes the mean-price-by-event-count view.
func WriteSummaryCSV(path string, rows []models.SummaryRow) error {
	f, w, err := createCSV(path, []string{"Events During Stay", "Average Price"})
	if err != nil {
		return err
	}
	defer f.Close()

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.EventCount),
			strconv.FormatFloat(row.AveragePrice, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: write summary row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func createCSV(path string, header []string) (*os.File, *csv.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return f, w, nil
}
