package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/expat-financier/internal/config"
	"github.com/GregMSThompson/expat-financier/internal/store"
)

// InitProfileStore opens the backend named by cfg.StoreDriver. The
// firestore client honours FIRESTORE_EMULATOR_HOST.
func (bs *Bootstrap) InitProfileStore(ctx context.Context, cfg *config.Config) error {
	var err error
	switch cfg.StoreDriver {
	case config.StoreFirestore:
		bs.Firestore, err = firestore.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			return err
		}
		bs.Profiles = store.NewProfileStore(bs.Firestore)
	default:
		bs.SQLite, err = store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return err
		}
		bs.Profiles = store.NewSQLiteProfileStore(bs.SQLite)
	}
	return nil
}
