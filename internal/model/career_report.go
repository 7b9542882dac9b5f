package model

import "time"

type CareerReport struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Owner         string    `gorm:"size:320;not null;index:idx_career_reports_owner_created,priority:1" json:"owner"`
	Role          string    `gorm:"size:256;not null" json:"role"`
	ReportContent string    `gorm:"type:longtext;not null" json:"report_content"`
	CreatedAt     time.Time `gorm:"index:idx_career_reports_owner_created,priority:2" json:"created_at"`
}
