package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"studyprep-api/internal/model"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 100
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, event *model.ActivityEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create activity event failed: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]model.ActivityEvent, error) {
	switch {
	case limit <= 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}

	var events []model.ActivityEvent
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("occurred_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list activity events failed: %w", err)
	}
	return events, nil
}
