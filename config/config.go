package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir           string
	DetailOutputPath  string
	SummaryOutputPath string

	EventYearRollover bool
	DedupeEvents      bool

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	PagesToScrape  int

	ChromeBin string
	Headless  bool
	Debug     bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataDir:           getEnv("DATA_DIR", "./data"),
		DetailOutputPath:  getEnv("DETAIL_OUTPUT_PATH", "./data/analysis_summary.csv"),
		SummaryOutputPath: getEnv("SUMMARY_OUTPUT_PATH", "./data/price_by_event_count.csv"),

		EventYearRollover: getEnvBool("EVENT_YEAR_ROLLOVER", false),
		DedupeEvents:      getEnvBool("DEDUPE_EVENTS", false),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "analyst"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "analyst123"),
		PostgresDB:       getEnv("POSTGRES_DB", "vegas_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 2000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		PagesToScrape:  getEnvInt("PAGES_TO_SCRAPE", 2),

		ChromeBin: getEnv("CHROME_BIN", ""),
		Headless:  getEnvBool("HEADLESS", true),
		Debug:     getEnvBool("DEBUG", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
