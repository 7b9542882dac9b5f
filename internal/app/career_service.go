package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"studyprep-api/internal/identity"
	"studyprep-api/internal/model"
)

type CareerReportStore interface {
	Create(ctx context.Context, report *model.CareerReport) error
	ListByOwner(ctx context.Context, owner string) ([]model.CareerReport, error)
}

type CareerService struct {
	store     CareerReportStore
	publisher RecordEventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

type CreateCareerReportInput struct {
	Owner         identity.Identity
	Role          string
	ReportContent string
}

func NewCareerService(store CareerReportStore, publisher RecordEventPublisher, logger *slog.Logger) *CareerService {
	return &CareerService{
		store:     store,
		publisher: publisher,
		logger:    loggerOrDefault(logger),
		now:       time.Now,
	}
}

func (s *CareerService) CreateCareerReport(ctx context.Context, input CreateCareerReportInput) (*model.CareerReport, error) {
	owner, err := ownerOf(input.Owner.String())
	if err != nil {
		return nil, err
	}

	role := strings.TrimSpace(input.Role)
	content := strings.TrimSpace(input.ReportContent)
	if role == "" || content == "" {
		return nil, ErrInvalidInput
	}

	report := &model.CareerReport{
		Owner:         owner,
		Role:          role,
		ReportContent: content,
		CreatedAt:     s.now(),
	}
	if err := s.store.Create(ctx, report); err != nil {
		return nil, err
	}

	announce(ctx, s.publisher, s.logger, newRecordEvent(model.RecordKindCareerReport, report.ID, owner, report.Role, report.CreatedAt))
	return report, nil
}

func (s *CareerService) ListCareerReports(ctx context.Context, id identity.Identity) ([]model.CareerReport, error) {
	owner, err := ownerOf(id.String())
	if err != nil {
		return nil, err
	}
	return s.store.ListByOwner(ctx, owner)
}
