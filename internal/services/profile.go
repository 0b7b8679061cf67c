package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/expat-financier/internal/errs"
	"github.com/GregMSThompson/expat-financier/internal/models"
	"github.com/GregMSThompson/expat-financier/pkg/logger"
)

type profileRecordStore interface {
	Get(ctx context.Context, uid string) (models.Record, error)
	Put(ctx context.Context, uid string, rec models.Record) error
}

type profileService struct {
	store profileRecordStore
	now   func() time.Time
}

func NewProfileService(store profileRecordStore) *profileService {
	return &profileService{
		store: store,
		now:   time.Now,
	}
}

// Load never fails: a missing, unreadable or corrupt record yields a fresh
// default profile for uid.
func (s *profileService) Load(ctx context.Context, uid string) *models.Profile {
	log := logger.FromContext(ctx)

	rec, err := s.store.Get(ctx, uid)
	if err != nil {
		if _, ok := err.(*errs.NotFoundError); !ok {
			log.Error("failed to read profile, starting fresh", "error", err)
		}
		return models.NewProfile(uid, s.now())
	}

	p, err := models.ProfileFromRecord(rec)
	if err != nil {
		log.Error("corrupt profile record, starting fresh", "error", err)
		return models.NewProfile(uid, s.now())
	}
	if p.UserID != uid {
		log.Warn("profile record identity mismatch", "stored_user_id", p.UserID)
		p.UserID = uid
	}
	return p
}

// Save stamps LastUpdated and overwrites the whole stored record.
func (s *profileService) Save(ctx context.Context, p *models.Profile) error {
	p.LastUpdated = s.now()
	if err := s.store.Put(ctx, p.UserID, p.ToRecord()); err != nil {
		logger.FromContext(ctx).Error("failed to save profile", "error", err)
		return err
	}
	if logger.IsDebugEnabled(ctx) {
		logger.FromContext(ctx).Debug("profile saved", "record", p.ToRecord())
	}
	return nil
}
