package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/expat-financier/internal/errs"
	"github.com/GregMSThompson/expat-financier/internal/models"
)

type profileStore struct {
	client *firestore.Client
}

func NewProfileStore(client *firestore.Client) *profileStore {
	return &profileStore{client: client}
}

func (s *profileStore) collection() *firestore.CollectionRef {
	return s.client.Collection("profiles")
}

func (s *profileStore) Get(ctx context.Context, uid string) (models.Record, error) {
	doc, err := s.collection().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("profile not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get profile", err)
	}
	return models.Record(doc.Data()), nil
}

// Put replaces the whole document; fields absent from rec are dropped.
func (s *profileStore) Put(ctx context.Context, uid string, rec models.Record) error {
	_, err := s.collection().Doc(uid).Set(ctx, map[string]any(rec))
	if err != nil {
		return errs.NewDatabaseError("write", "failed to save profile", err)
	}
	return nil
}
