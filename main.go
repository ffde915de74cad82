package main

import (
	"fmt"
	"os"
	"time"

	"vegas-hotel-events/config"
	"vegas-hotel-events/models"
	"vegas-hotel-events/scraper/booking"
	"vegas-hotel-events/scraper/events"
	"vegas-hotel-events/services"
	"vegas-hotel-events/storage"
	"vegas-hotel-events/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	mode := "analyze"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "analyze":
		runAnalyze(cfg, logger)
	case "scrape-hotels":
		runScrapeHotels(cfg, logger)
	case "scrape-events":
		runScrapeEvents(cfg, logger)
	default:
		logger.Error("Unknown mode %q — expected analyze, scrape-hotels or scrape-events", mode)
		os.Exit(2)
	}
}

func runAnalyze(cfg *config.Config, logger *utils.Logger) {
	logger.Info("=== Vegas weekend price / event analysis starting ===")

	loader := storage.NewRecordLoader(cfg.DataDir, logger)

	rawPrices, err := loader.LoadPrices()
	if err != nil {
		logger.Error("Loading hotel snapshots failed: %v", err)
		os.Exit(1)
	}
	rawEvents, err := loader.LoadEvents()
	if err != nil {
		logger.Error("Loading event snapshots failed: %v", err)
		os.Exit(1)
	}

	preparer := services.NewPreparer(logger, cfg.EventYearRollover)
	prices := preparer.PreparePrices(rawPrices)
	eventRecords := preparer.PrepareEvents(rawEvents)

	// Correlation needs both sides; an empty source is the one fatal
	// condition of the run.
	if len(prices) == 0 {
		logger.Error("No usable hotel price records in %s — nothing to analyze", cfg.DataDir)
		os.Exit(1)
	}
	if len(eventRecords) == 0 {
		logger.Error("No usable event records in %s — nothing to analyze", cfg.DataDir)
		os.Exit(1)
	}

	engine := services.NewEngine(logger, cfg.DedupeEvents)
	results := engine.Correlate(prices, eventRecords)

	if len(results) == 0 {
		logger.Warn("Correlation produced no rows — skipping summary emission")
		return
	}

	if err := storage.WriteDetailCSV(cfg.DetailOutputPath, results); err != nil {
		logger.Error("Detail table write failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Detailed analysis saved to %s", cfg.DetailOutputPath)

	aggSvc := services.NewAggregateService(logger)
	summary := aggSvc.Aggregate(results)

	if err := storage.WriteSummaryCSV(cfg.SummaryOutputPath, summary); err != nil {
		logger.Error("Summary write failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Summary saved to %s", cfg.SummaryOutputPath)

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			logger.Error("Make sure Docker is running: docker compose up -d")
			os.Exit(1)
		}
		defer pgWriter.Close()

		if err := pgWriter.Write(results); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("Correlation rows stored in PostgreSQL (table: correlations)")
		}
	}

	aggSvc.Print(summary, len(results))
}

func runScrapeHotels(cfg *config.Config, logger *utils.Logger) {
	logger.Info("=== Booking.com weekend price scrape starting ===")

	scraper := booking.New(cfg, logger)
	rows, err := scraper.Scrape()
	if err != nil {
		logger.Error("Booking scrape failed: %v", err)
	}
	if len(rows) == 0 {
		logger.Error("No hotel rows were scraped. Exiting.")
		os.Exit(1)
	}

	path := storage.SnapshotPath(cfg.DataDir, "hotels", time.Now())
	writeHotelSnapshot(logger, path, rows)
}

func runScrapeEvents(cfg *config.Config, logger *utils.Logger) {
	logger.Info("=== Vegas events calendar scrape starting ===")

	scraper := events.New(cfg, logger)
	rows, err := scraper.Scrape()
	if err != nil {
		logger.Error("Events scrape failed: %v", err)
	}
	if len(rows) == 0 {
		logger.Error("No event rows were scraped. Exiting.")
		os.Exit(1)
	}

	path := storage.SnapshotPath(cfg.DataDir, "events", time.Now())
	writeEventSnapshot(logger, path, rows)
}

func writeHotelSnapshot(logger *utils.Logger, path string, rows []*models.RawHotelRow) {
	writer, err := storage.NewHotelSnapshotWriter(path)
	if err != nil {
		logger.Error("Failed to create snapshot writer: %v", err)
		os.Exit(1)
	}
	defer writer.Close()

	if err := writer.WriteRaw(rows); err != nil {
		logger.Error("Snapshot write failed: %v", err)
		os.Exit(1)
	}
	fmt.Printf("  Saved %d rows to %s\n", len(rows), path)
}

func writeEventSnapshot(logger *utils.Logger, path string, rows []*models.RawEventRow) {
	writer, err := storage.NewEventSnapshotWriter(path)
	if err != nil {
		logger.Error("Failed to create snapshot writer: %v", err)
		os.Exit(1)
	}
	defer writer.Close()

	if err := writer.WriteRaw(rows); err != nil {
		logger.Error("Snapshot write failed: %v", err)
		os.Exit(1)
	}
	fmt.Printf("  Saved %d rows to %s\n", len(rows), path)
}
