package models

import "time"

// TaskHistory is an append-only audit entry recorded on every status
// transition and report submission. Entries are never updated or deleted.
type TaskHistory struct {
	ID     uint64     `gorm:"primarykey" json:"id"`
	TaskID uint64     `gorm:"not null;index" json:"task_id"`
	Status TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	Note   string     `gorm:"type:varchar(255)" json:"note"`
	At     time.Time  `gorm:"not null" json:"at"`
}
