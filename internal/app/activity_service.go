package app

import (
	"context"

	"studyprep-api/internal/identity"
	"studyprep-api/internal/model"
)

type ActivityStore interface {
	ListByOwner(ctx context.Context, owner string, limit int) ([]model.ActivityEvent, error)
}

type ActivityService struct {
	store ActivityStore
}

func NewActivityService(store ActivityStore) *ActivityService {
	return &ActivityService{store: store}
}

func (s *ActivityService) ListActivity(ctx context.Context, id identity.Identity, limit int) ([]model.ActivityEvent, error) {
	owner, err := ownerOf(id.String())
	if err != nil {
		return nil, err
	}
	return s.store.ListByOwner(ctx, owner, limit)
}
