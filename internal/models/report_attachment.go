package models

import "time"

// ReportAttachment is a file reference attached to a task report. Rows are
// replaced as a set when a report is resubmitted.
type ReportAttachment struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	TaskID       uint64    `gorm:"not null;index" json:"task_id"`
	Filename     string    `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string    `gorm:"type:varchar(255)" json:"original_name"`
	ContentType  string    `gorm:"type:varchar(100)" json:"content_type"`
	Size         int64     `gorm:"not null" json:"size"`
	URL          string    `gorm:"type:varchar(512)" json:"url"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
