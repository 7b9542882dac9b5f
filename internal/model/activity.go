package model

import "time"

const (
	RecordKindNote         = "note"
	RecordKindCareerReport = "career_report"
)

// RecordEvent is published after a record has been written.
type RecordEvent struct {
	Kind       string    `json:"kind"`
	RecordID   uint      `json:"record_id"`
	Owner      string    `json:"owner"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityEvent is the persisted form of a RecordEvent.
type ActivityEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Owner      string    `gorm:"size:320;not null;index" json:"owner"`
	Kind       string    `gorm:"size:32;not null" json:"kind"`
	RecordID   uint      `gorm:"not null" json:"record_id"`
	Summary    string    `gorm:"size:256" json:"summary"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
