package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"vegas-hotel-events/models"
	"vegas-hotel-events/utils"
)

// RecordLoader merges every snapshot file of a source into one logical
// record set. Columns are matched by header name, not position, so
// snapshots whose producers reordered or added columns still load.
type RecordLoader struct {
	dataDir string
	logger  *utils.Logger
}

// NewRecordLoader creates a loader reading snapshots from dataDir.
func NewRecordLoader(dataDir string, logger *utils.Logger) *RecordLoader {
	return &RecordLoader{dataDir: dataDir, logger: logger}
}

// LoadPrices reads and concatenates all vegas_hotels_*.csv snapshots.
// Rows missing a name, price or a valid date_scraped are skipped.
func (l *RecordLoader) LoadPrices() ([]*models.PriceRecord, error) {
	files, err := l.glob("vegas_hotels_*.csv")
	if err != nil {
		return nil, err
	}

	var records []*models.PriceRecord
	for _, file := range files {
		rows, header, err := readAll(file)
		if err != nil {
			return nil, fmt.Errorf("loader: read %q: %w", file, err)
		}
		for _, row := range rows {
			name := header.get(row, "name")
			rawPrice := header.get(row, "price")
			if name == "" || rawPrice == "" {
				continue
			}
			collectedOn, err := time.Parse("2006-01-02", header.get(row, "date_scraped"))
			if err != nil {
				l.logger.Debug("[loader] Skipping %q: bad date_scraped %q", name, header.get(row, "date_scraped"))
				continue
			}
			records = append(records, &models.PriceRecord{
				Name:        name,
				RawPrice:    rawPrice,
				Rating:      header.get(row, "rating"),
				Distance:    header.get(row, "distance"),
				CollectedOn: collectedOn,
			})
		}
	}

	l.logger.Info("[loader] Loaded %d price rows from %d file(s)", len(records), len(files))
	return records, nil
}

// LoadEvents reads and concatenates all vegas_events_*.csv snapshots.
// Rows without a name are skipped.
func (l *RecordLoader) LoadEvents() ([]*models.EventRecord, error) {
	files, err := l.glob("vegas_events_*.csv")
	if err != nil {
		return nil, err
	}

	var records []*models.EventRecord
	for _, file := range files {
		rows, header, err := readAll(file)
		if err != nil {
			return nil, fmt.Errorf("loader: read %q: %w", file, err)
		}
		for _, row := range rows {
			name := header.get(row, "name")
			if name == "" {
				continue
			}
			records = append(records, &models.EventRecord{
				Name:     name,
				RawDate:  header.get(row, "date"),
				Venue:    header.get(row, "venue"),
				Category: header.get(row, "category"),
			})
		}
	}

	l.logger.Info("[loader] Loaded %d event rows from %d file(s)", len(records), len(files))
	return records, nil
}

func (l *RecordLoader) glob(pattern string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(l.dataDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("loader: glob %q: %w", pattern, err)
	}
	sort.Strings(files)
	return files, nil
}

// headerIndex maps column names to positions for one file.
type headerIndex map[string]int

func (h headerIndex) get(row []string, column string) string {
	idx, ok := h[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func readAll(path string) ([][]string, headerIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, headerIndex{}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	idx := make(headerIndex, len(header))
	for i, col := range header {
		idx[col] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return rows, idx, nil
}
