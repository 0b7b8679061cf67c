package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/GregMSThompson/expat-financier/internal/errs"
	"github.com/GregMSThompson/expat-financier/internal/models"
)

const createProfilesTableSQL = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// OpenSQLite opens (creating if needed) a local profile database.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time; sqlite serialises anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createProfilesTableSQL); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type sqliteProfileStore struct {
	db *sql.DB
}

func NewSQLiteProfileStore(db *sql.DB) *sqliteProfileStore {
	return &sqliteProfileStore{db: db}
}

func (s *sqliteProfileStore) Get(ctx context.Context, uid string) (models.Record, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM profiles WHERE user_id = ?`, uid).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError("profile not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get profile", err)
	}

	var rec models.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, errs.NewMalformedRecordError("record", "is not valid JSON")
	}
	return rec, nil
}

func (s *sqliteProfileStore) Put(ctx context.Context, uid string, rec models.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return errs.NewDatabaseError("write", "failed to encode profile", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, record, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		uid, string(raw), time.Now().UTC())
	if err != nil {
		return errs.NewDatabaseError("write", "failed to save profile", err)
	}
	return nil
}
