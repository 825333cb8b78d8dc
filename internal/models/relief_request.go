package models

import (
	"time"

	"gorm.io/gorm"
)

// ReliefRequest is an aid request a task may be linked to (weak reference).
type ReliefRequest struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"type:varchar(255)" json:"location"`
	Status      string `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
