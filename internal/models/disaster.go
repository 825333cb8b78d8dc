package models

import (
	"time"

	"gorm.io/gorm"
)

// Disaster is a weak lookup target for tasks; tasks reference it, never own it.
type Disaster struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	Title    string `gorm:"type:varchar(255);not null" json:"title"`
	Type     string `gorm:"type:varchar(50)" json:"type"`
	Location string `gorm:"type:varchar(255)" json:"location"`
	Severity string `gorm:"type:varchar(20)" json:"severity"`
	IsActive bool   `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
