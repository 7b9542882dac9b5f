package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"studyprep-api/internal/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoOwner      = errors.New("record owner is required")
)

const maxSummaryLength = 256

// RecordEventPublisher announces records that have just been written.
type RecordEventPublisher interface {
	Publish(ctx context.Context, event model.RecordEvent) error
}

// announce publishes a record event. The record is already stored, so a
// failure is only logged.
func announce(ctx context.Context, publisher RecordEventPublisher, logger *slog.Logger, event model.RecordEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("publish record event failed",
			slog.String("kind", event.Kind),
			slog.Uint64("record_id", uint64(event.RecordID)),
			slog.String("error", err.Error()),
		)
	}
}

func newRecordEvent(kind string, recordID uint, owner, summary string, at time.Time) model.RecordEvent {
	return model.RecordEvent{
		Kind:       kind,
		RecordID:   recordID,
		Owner:      owner,
		Summary:    truncate(summary, maxSummaryLength),
		OccurredAt: at,
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func ownerOf(identity string) (string, error) {
	owner := strings.TrimSpace(identity)
	if owner == "" {
		return "", ErrNoOwner
	}
	return owner, nil
}
