package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'volunteer';index" json:"role"`

	Approved           bool           `gorm:"not null;default:false" json:"approved"`
	ApprovalStatus     ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"approval_status"`
	Blocked            bool           `gorm:"not null;default:false" json:"blocked"`
	ForcePasswordReset bool           `gorm:"not null;default:false" json:"-"`

	Phone        string `gorm:"type:varchar(30)" json:"phone"`
	City         string `gorm:"type:varchar(100)" json:"city"`
	State        string `gorm:"type:varchar(100)" json:"state"`
	Availability string `gorm:"type:varchar(30)" json:"availability"`
	Skills       string `gorm:"type:text" json:"skills"`

	IDProofName string `gorm:"type:varchar(255)" json:"-"`
	IDProofURL  string `gorm:"type:varchar(512)" json:"-"`

	// Denormalized task counters, refreshed wholesale from the task store on
	// every assignment and completion. Display only, never authoritative.
	TotalTasksAssigned  int64      `gorm:"not null;default:0" json:"total_tasks_assigned"`
	TotalTasksCompleted int64      `gorm:"not null;default:0" json:"total_tasks_completed"`
	LastAssignmentAt    *time.Time `json:"last_assignment_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks []Task `gorm:"foreignKey:VolunteerID" json:"-"`
}

// ActiveVolunteer reports whether the user can be assigned tasks.
func (u *User) ActiveVolunteer() bool {
	return u.Role == RoleVolunteer && u.Approved && !u.Blocked
}
