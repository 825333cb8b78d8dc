package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// ValidTaskStatus reports whether s is one of the statuses a volunteer can set.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// NormalizePriority coerces unknown priorities to medium.
func NormalizePriority(p TaskPriority) TaskPriority {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return p
	}
	return TaskPriorityMedium
}

// Task is a unit of relief work assigned to exactly one volunteer.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'assigned';index" json:"status"`

	VolunteerID     uint64  `gorm:"not null;index" json:"volunteer_id"`
	AssignedByID    *uint64 `json:"assigned_by_id"`
	ReliefRequestID *uint64 `json:"relief_request_id"`
	DisasterID      *uint64 `json:"disaster_id"`

	Deadline    *time.Time `gorm:"index" json:"deadline"`
	Warned      bool       `gorm:"not null;default:false" json:"warned"`
	WarnedAt    *time.Time `json:"warned_at"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// LockVersion guards against lost updates; mutating queries include the
	// version they read in the WHERE clause.
	LockVersion uint64 `gorm:"not null;default:1" json:"lock_version"`

	// Report is one-per-task, last write wins. Resubmissions are visible in
	// the history trail, not here.
	ReportDescription string     `gorm:"type:text" json:"report_description"`
	ReportSubmittedAt *time.Time `json:"report_submitted_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Volunteer     User               `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
	AssignedBy    *User              `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
	Disaster      *Disaster          `gorm:"foreignKey:DisasterID" json:"disaster,omitempty"`
	ReliefRequest *ReliefRequest     `gorm:"foreignKey:ReliefRequestID" json:"relief_request,omitempty"`
	History       []TaskHistory      `gorm:"foreignKey:TaskID" json:"history,omitempty"`
	Attachments   []ReportAttachment `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
}

// Overdue reports whether the task's deadline has passed while unresolved.
func (t *Task) Overdue(now time.Time) bool {
	return t.Status != TaskStatusCompleted && t.Deadline != nil && t.Deadline.Before(now)
}
