package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Ledger backend selectors for Config.LedgerBackend.
const (
	LedgerBackendFile  = "file"
	LedgerBackendRedis = "redis"
	LedgerBackendS3    = "s3"
)

// placeholderMarkers flag credentials copied verbatim from an example
// .env file; a run with these would burn API calls for nothing.
var placeholderMarkers = []string{"YOUR_", "VOTRE_", "changeme"}

// RedisConfig holds connection details for the redis ledger backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// S3Config holds location details for the s3 ledger backend. Region and
// Profile are optional and fall back to the standard AWS config chain.
type S3Config struct {
	Bucket       string
	Key          string
	Region       string
	Profile      string
	UsePathStyle bool
}

// Config carries every run-level setting, read once at startup.
type Config struct {
	NotionAPIKey     string
	NotionDatabaseID string
	CohereAPIKey     string
	CohereModel      string

	FeedURLs []string
	OPMLFile string

	MaxAgeHours int
	MinRating   int
	MaxArticles int

	LedgerBackend string
	LedgerFile    string
	Redis         RedisConfig
	S3            S3Config
}

// FromEnv builds a Config from environment variables, applying defaults
// for everything optional.
func FromEnv() Config {
	cfg := Config{
		NotionAPIKey:     strings.TrimSpace(os.Getenv("NOTION_API_KEY")),
		NotionDatabaseID: strings.TrimSpace(os.Getenv("NOTION_DATABASE_ID")),
		CohereAPIKey:     strings.TrimSpace(os.Getenv("COHERE_API_KEY")),
		CohereModel:      getEnvOrDefault("COHERE_MODEL", "command-r-08-2024"),
		OPMLFile:         strings.TrimSpace(os.Getenv("OPML_FILE")),
		MaxAgeHours:      getEnvInt("MAX_AGE_HOURS", DefaultMaxAgeHours),
		MinRating:        getEnvInt("MIN_RATING", DefaultMinRating),
		MaxArticles:      getEnvInt("MAX_ARTICLES", DefaultMaxArticles),
		LedgerBackend:    getEnvOrDefault("LEDGER_BACKEND", LedgerBackendFile),
		LedgerFile:       getEnvOrDefault("LEDGER_FILE", DefaultLedgerFile),
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASS"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		S3: S3Config{
			Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
			Key:          getEnvOrDefault("S3_LEDGER_KEY", DefaultLedgerFile),
			Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
			Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
			UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
		},
	}

	for _, raw := range strings.Split(os.Getenv("RSS_FEEDS"), ",") {
		if url := strings.TrimSpace(raw); url != "" {
			cfg.FeedURLs = append(cfg.FeedURLs, url)
		}
	}

	return cfg
}

// Validate reports the first fatal configuration problem. Only these
// errors abort a run; everything downstream degrades per item instead.
func (c Config) Validate() error {
	if c.NotionAPIKey == "" {
		return fmt.Errorf("NOTION_API_KEY is not set")
	}
	if c.NotionDatabaseID == "" {
		return fmt.Errorf("NOTION_DATABASE_ID is not set")
	}
	if c.CohereAPIKey == "" {
		return fmt.Errorf("COHERE_API_KEY is not set")
	}
	if len(c.FeedURLs) == 0 && c.OPMLFile == "" {
		return fmt.Errorf("no feed source configured: set RSS_FEEDS or OPML_FILE")
	}

	for _, marker := range placeholderMarkers {
		if strings.Contains(c.NotionAPIKey, marker) || strings.Contains(c.CohereAPIKey, marker) {
			return fmt.Errorf("placeholder credential detected (%q): replace the example values in .env", marker)
		}
	}

	switch c.LedgerBackend {
	case LedgerBackendFile, LedgerBackendRedis:
	case LedgerBackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("LEDGER_BACKEND=s3 requires S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown LEDGER_BACKEND %q", c.LedgerBackend)
	}

	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
