package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"vegas-hotel-events/models"
)

// PostgresWriter mirrors the correlation detail table into PostgreSQL
// so runs can be queried across days. Gated by POSTGRES_ENABLED; the
// pipeline's contract is file-in/file-out and holds without a database.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS correlations (
			id           SERIAL PRIMARY KEY,
			hotel        TEXT          NOT NULL,
			price        NUMERIC(10,2) NOT NULL,
			rating       TEXT          NOT NULL DEFAULT '',
			distance     TEXT          NOT NULL DEFAULT '',
			checkin_date DATE          NOT NULL,
			event_count  INTEGER       NOT NULL DEFAULT 0,
			event_names  TEXT          NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_correlations_checkin ON correlations(checkin_date);
		CREATE INDEX IF NOT EXISTS idx_correlations_count   ON correlations(event_count);
	`)
	return err
}

// Write batch-inserts all correlation results.
func (pw *PostgresWriter) Write(results []models.CorrelationResult) error {
	if len(results) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(results); i += batchSize {
		end := i + batchSize
		if end > len(results) {
			end = len(results)
		}
		if err := pw.insertBatch(results[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []models.CorrelationResult) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*7)

	for idx, r := range batch {
		base := idx * 7
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))

		names := make([]string, 0, len(r.Events))
		for _, ev := range r.Events {
			names = append(names, ev.Name)
		}
		valueArgs = append(valueArgs,
			r.Price.Name, r.Price.NumericPrice, r.Price.Rating, r.Price.Distance,
			r.Window.StayStart.Format("2006-01-02"), r.EventCount, strings.Join(names, "; "))
	}

	query := fmt.Sprintf(`
		INSERT INTO correlations (hotel, price, rating, distance, checkin_date, event_count, event_names)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
