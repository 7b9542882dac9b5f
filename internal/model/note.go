package model

import (
	"encoding/json"
	"time"
)

// Note is a study note owned by the user whose email is Owner.
// StructuredQuestions is stored verbatim as JSON.
type Note struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	Owner               string          `gorm:"size:320;not null;index:idx_notes_owner_created,priority:1" json:"owner"`
	Title               string          `gorm:"size:256;not null" json:"title"`
	Body                string          `gorm:"type:longtext;not null" json:"body"`
	StructuredQuestions json.RawMessage `gorm:"type:json" json:"structured_questions,omitempty"`
	PageCount           int             `gorm:"not null;default:0" json:"page_count"`
	CreatedAt           time.Time       `gorm:"index:idx_notes_owner_created,priority:2" json:"created_at"`
}
