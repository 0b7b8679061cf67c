package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GregMSThompson/expat-financier/internal/config"
	"github.com/GregMSThompson/expat-financier/internal/models"
	"github.com/GregMSThompson/expat-financier/pkg/logger"
)

type recordStore interface {
	Get(ctx context.Context, uid string) (models.Record, error)
	Put(ctx context.Context, uid string, rec models.Record) error
}

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	SQLite    *sql.DB
	Profiles  recordStore
	Registry  *prometheus.Registry
	BotToken  string
}

func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	if err = cfg.Validate(); err != nil {
		return bs, err
	}
	bs.Registry = InitRegistry()

	if err = bs.InitProfileStore(ctx, cfg); err != nil {
		return bs, err
	}
	bs.Log.Info("profile store ready", "driver", cfg.StoreDriver)

	bs.BotToken = cfg.BotToken
	if bs.BotToken == "" {
		bs.BotToken, err = ResolveSecret(ctx, cfg.ProjectID, cfg.BotTokenSecret)
		if err != nil {
			return bs, err
		}
		bs.BotToken = strings.TrimSpace(bs.BotToken)
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		if err := bs.Firestore.Close(); err != nil {
			bs.Log.Warn("firestore close failed", "error", err)
		}
	}
	if bs.SQLite != nil {
		if err := bs.SQLite.Close(); err != nil {
			bs.Log.Warn("sqlite close failed", "error", err)
		}
	}
}
