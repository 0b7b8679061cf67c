package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/expat-financier/internal/errs"
)

const (
	StoreFirestore = "firestore"
	StoreSQLite    = "sqlite"

	defaultPort          = "8080"
	defaultSQLitePath    = "data/financier.db"
	defaultNotifyTimeout = 10 * time.Second
	defaultCurrency      = "AED"
	defaultSessionIdle   = 24 * time.Hour
)

type Config struct {
	ProjectID      string
	LogLevel       string
	Port           string
	BotToken       string
	BotTokenSecret string
	WebhookSecret  string
	StoreDriver    string
	SQLitePath     string
	SheetsURL      string
	NotifyTimeout  time.Duration
	Currency       string
	SessionIdle    time.Duration
}

// New reads the environment, after loading a .env file if one exists.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ProjectID:      os.Getenv("PROJECTID"),
		LogLevel:       os.Getenv("LOGLEVEL"),
		Port:           getOrDefault("PORT", defaultPort),
		BotToken:       os.Getenv("BOTTOKEN"),
		BotTokenSecret: os.Getenv("BOTTOKENSECRET"),
		WebhookSecret:  os.Getenv("WEBHOOKSECRET"),
		StoreDriver:    os.Getenv("STOREDRIVER"),
		SQLitePath:     getOrDefault("SQLITEPATH", defaultSQLitePath),
		SheetsURL:      os.Getenv("SHEETSURL"),
		NotifyTimeout:  getDuration("NOTIFYTIMEOUT", defaultNotifyTimeout),
		Currency:       getOrDefault("CURRENCY", defaultCurrency),
		SessionIdle:    getDuration("SESSIONIDLE", defaultSessionIdle),
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = StoreSQLite
		if cfg.ProjectID != "" {
			cfg.StoreDriver = StoreFirestore
		}
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreFirestore:
		if c.ProjectID == "" {
			return errs.NewValidationError("PROJECTID is required for the firestore store")
		}
	case StoreSQLite:
	default:
		return errs.NewValidationError("STOREDRIVER must be firestore or sqlite, got " + c.StoreDriver)
	}
	if c.BotToken == "" && c.BotTokenSecret == "" {
		return errs.NewValidationError("one of BOTTOKEN or BOTTOKENSECRET is required")
	}
	if c.BotToken == "" && c.ProjectID == "" {
		return errs.NewValidationError("PROJECTID is required to read BOTTOKENSECRET")
	}
	return nil
}

func getOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
