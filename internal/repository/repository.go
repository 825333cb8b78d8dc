package repository

import (
	"errors"
	"time"

	"github.com/yashika222/ReliefNet/internal/models"
)

// ErrStaleTask is returned when a version-guarded update matched no rows,
// meaning another writer changed the task since it was read.
var ErrStaleTask = errors.New("task was modified concurrently")

// TaskFilter holds filtering options for listing a volunteer's tasks
type TaskFilter struct {
	Status   *models.TaskStatus
	Page     int
	PageSize int
}

// TaskStats is the wholesale-refreshed snapshot copied onto the volunteer row.
type TaskStats struct {
	TotalAssigned    int64
	TotalCompleted   int64
	LastAssignmentAt *time.Time
}

// VolunteerMetrics is a live, derived view of one volunteer's task counts.
type VolunteerMetrics struct {
	Assigned   int64 `json:"assigned"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"in_progress"`
	Overdue    int64 `json:"overdue"`
	Warned     int64 `json:"warned"`
}

// GlobalTaskMetrics aggregates task counts across all volunteers.
type GlobalTaskMetrics struct {
	TotalTasks      int64 `json:"total_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	OverdueTasks    int64 `json:"overdue_tasks"`
	WarnedTasks     int64 `json:"warned_tasks"`
}

// VolunteerCounts aggregates volunteer headcounts for the admin summary.
type VolunteerCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Pending  int64 `json:"pending"`
	Rejected int64 `json:"rejected"`
	Blocked  int64 `json:"blocked"`
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindOwned finds a task scoped to its owning volunteer. A task owned by
	// someone else is indistinguishable from a missing one.
	FindOwned(id, volunteerID uint64, preload ...string) (*models.Task, error)

	// ListByVolunteer retrieves a volunteer's tasks, newest first
	ListByVolunteer(volunteerID uint64, filter TaskFilter) ([]models.Task, int64, error)

	// UpdateLifecycle writes the task's lifecycle fields guarded by the
	// lock version that was read; returns ErrStaleTask on a lost race.
	UpdateLifecycle(task *models.Task) error

	// ReplaceReport overwrites the task's report and attachment set
	ReplaceReport(task *models.Task, description string, submittedAt time.Time, attachments []models.ReportAttachment) error

	// AppendHistory appends one audit entry; entries are never rewritten
	AppendHistory(entry *models.TaskHistory) error

	// FindOverdueUnwarned returns tasks past deadline, unresolved, not yet warned
	FindOverdueUnwarned(now time.Time) ([]models.Task, error)

	// FindOverdueByVolunteer returns a volunteer's overdue tasks regardless
	// of the warned flag (manual warning path)
	FindOverdueByVolunteer(volunteerID uint64, now time.Time) ([]models.Task, error)

	// MarkWarned flags the given tasks warned in a single bulk update
	MarkWarned(ids []uint64, now time.Time) error

	// DeleteByVolunteer removes all of a volunteer's tasks (account deletion cascade)
	DeleteByVolunteer(volunteerID uint64) error

	// Stats computes the denormalized counter snapshot for one volunteer
	Stats(volunteerID uint64) (TaskStats, error)

	// Metrics computes the live derived counts for one volunteer
	Metrics(volunteerID uint64, now time.Time) (VolunteerMetrics, error)

	// GlobalMetrics computes task counts across all volunteers
	GlobalMetrics(now time.Time) (GlobalTaskMetrics, error)
}

// VolunteerSort orders volunteer listings
type VolunteerSort string

const (
	VolunteerSortNewest VolunteerSort = "newest"
	VolunteerSortOldest VolunteerSort = "oldest"
	VolunteerSortName   VolunteerSort = "name"
	VolunteerSortTasks  VolunteerSort = "tasks"
)

// VolunteerFilter holds filtering options for listing volunteers
type VolunteerFilter struct {
	Search   string
	Status   *models.ApprovalStatus
	Blocked  *bool
	Sort     VolunteerSort
	Page     int
	PageSize int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindVolunteerByID finds a user constrained to the volunteer role
	FindVolunteerByID(id uint64) (*models.User, error)

	// ListVolunteers retrieves volunteers with filtering and pagination
	ListVolunteers(filter VolunteerFilter) ([]models.User, int64, error)

	// Save persists changes to a user
	Save(user *models.User) error

	// RefreshTaskStats overwrites the volunteer's denormalized counters
	RefreshTaskStats(volunteerID uint64, stats TaskStats) error

	// DeleteVolunteer removes a volunteer account
	DeleteVolunteer(id uint64) error

	// Counts aggregates volunteer headcounts by approval state
	Counts() (VolunteerCounts, error)
}

// DisasterRepository defines the interface for disaster lookups
type DisasterRepository interface {
	// FindByID finds a disaster by ID
	FindByID(id uint64) (*models.Disaster, error)

	// ListActive lists active disasters, most recently updated first
	ListActive() ([]models.Disaster, error)
}
