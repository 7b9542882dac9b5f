package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"studyprep-api/internal/model"
)

type CareerReportRepository struct {
	db *gorm.DB
}

func NewCareerReportRepository(db *gorm.DB) *CareerReportRepository {
	return &CareerReportRepository{db: db}
}

func (r *CareerReportRepository) Create(ctx context.Context, report *model.CareerReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("create career report failed: %w", err)
	}
	return nil
}

func (r *CareerReportRepository) ListByOwner(ctx context.Context, owner string) ([]model.CareerReport, error) {
	var reports []model.CareerReport
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("list career reports failed: %w", err)
	}
	return reports, nil
}
