package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yashika222/ReliefNet/internal/constants"
	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/notify"
	"github.com/yashika222/ReliefNet/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrVolunteerNotFound  = errors.New("approved volunteer not found")
	ErrTaskCompleted      = errors.New("task already completed")
	ErrConcurrentUpdate   = errors.New("task was modified by another request")
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrReportTooShort     = errors.New("report description is too short")
	ErrTooManyAttachments = errors.New("too many report attachments")
	ErrAttachmentType     = errors.New("attachment type not allowed")
	ErrAttachmentTooLarge = errors.New("attachment exceeds the size limit")
)

// TaskService handles the volunteer task lifecycle: assignment, status
// transitions, and report submission.
type TaskService struct {
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	notifier   notify.Notifier
	sms        notify.SMSSender
	adminEmail string
}

// NewTaskService creates a new TaskService. sms may be nil.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, notifier notify.Notifier, sms notify.SMSSender, adminEmail string) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		sms:        sms,
		adminEmail: adminEmail,
	}
}

// AssignTaskInput represents input for assigning a task to a volunteer
type AssignTaskInput struct {
	VolunteerID     uint64
	Title           string
	Description     string
	Priority        models.TaskPriority
	Deadline        *time.Time
	ReliefRequestID *uint64
	DisasterID      *uint64
	AssignedByID    *uint64
}

// AssignTask creates a task for an approved, unblocked volunteer. The
// volunteer's denormalized counters are recomputed from the task store, and
// an assignment notification is attempted best-effort.
func (s *TaskService) AssignTask(input AssignTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	volunteer, err := s.userRepo.FindVolunteerByID(input.VolunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("failed to find volunteer: %w", err)
	}
	if !volunteer.ActiveVolunteer() {
		// Unapproved and blocked volunteers look identical to missing ones.
		return nil, ErrVolunteerNotFound
	}

	task := &models.Task{
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		Priority:        models.NormalizePriority(input.Priority),
		Status:          models.TaskStatusAssigned,
		VolunteerID:     input.VolunteerID,
		AssignedByID:    input.AssignedByID,
		ReliefRequestID: input.ReliefRequestID,
		DisasterID:      input.DisasterID,
		Deadline:        input.Deadline,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.refreshVolunteerStats(input.VolunteerID); err != nil {
		log.Printf("task %d: stats refresh failed: %v", task.ID, err)
	}

	if err := s.notifier.NotifyAssignment(volunteer, task); err != nil {
		log.Printf("task %d: assignment notification failed: %v", task.ID, err)
	}
	if s.sms != nil {
		if err := s.sms.SendAssignment(volunteer, task); err != nil {
			log.Printf("task %d: assignment SMS failed: %v", task.ID, err)
		}
	}

	return task, nil
}

// TransitionInput represents a volunteer's status transition request
type TransitionInput struct {
	TaskID      uint64
	VolunteerID uint64
	Status      models.TaskStatus
	Note        string
}

// TransitionStatus applies a status transition on a volunteer's own task.
// Completed is terminal: a completed task cannot go back to in_progress.
// Every call appends a history entry, including repeats of the current
// status, so the audit trail records each operator action.
func (s *TaskService) TransitionStatus(input TransitionInput) (*models.Task, error) {
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	task, err := s.taskRepo.FindOwned(input.TaskID, input.VolunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Status == models.TaskStatusInProgress && task.Status == models.TaskStatusCompleted {
		return nil, ErrTaskCompleted
	}

	now := time.Now()
	task.Status = input.Status
	if input.Status == models.TaskStatusInProgress && task.AcceptedAt == nil {
		task.AcceptedAt = &now
	}
	if input.Status == models.TaskStatusCompleted {
		// Refreshed on every completion call; repeat completions are rare
		// and admin-auditable through the history trail.
		task.CompletedAt = &now
	}

	if err := s.taskRepo.UpdateLifecycle(task); err != nil {
		if errors.Is(err, repository.ErrStaleTask) {
			return nil, ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	note := input.Note
	if note == "" {
		note = "Volunteer portal update"
	}
	entry := &models.TaskHistory{
		TaskID: task.ID,
		Status: input.Status,
		Note:   note,
		At:     now,
	}
	if err := s.taskRepo.AppendHistory(entry); err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}

	if input.Status == models.TaskStatusCompleted {
		if err := s.refreshVolunteerStats(input.VolunteerID); err != nil {
			log.Printf("task %d: stats refresh failed: %v", task.ID, err)
		}
	}

	return task, nil
}

// AttachmentInput describes one uploaded report attachment.
type AttachmentInput struct {
	Filename     string
	OriginalName string
	ContentType  string
	Size         int64
	URL          string
}

// SubmitReportInput represents a volunteer's report submission
type SubmitReportInput struct {
	TaskID      uint64
	VolunteerID uint64
	Description string
	Attachments []AttachmentInput
}

// SubmitReport attaches completion evidence to a task. Allowed in any
// status; a resubmission fully replaces the prior report while the history
// trail keeps one entry per submission. The admin notification is
// fire-and-forget.
func (s *TaskService) SubmitReport(input SubmitReportInput) (*models.Task, error) {
	description := strings.TrimSpace(input.Description)
	if len(description) < constants.MinReportDescriptionLength {
		return nil, ErrReportTooShort
	}
	if len(input.Attachments) > constants.MaxReportAttachments {
		return nil, ErrTooManyAttachments
	}

	now := time.Now()
	attachments := make([]models.ReportAttachment, 0, len(input.Attachments))
	for _, a := range input.Attachments {
		if !constants.AllowedAttachmentTypes[a.ContentType] {
			return nil, ErrAttachmentType
		}
		if a.Size > constants.MaxReportAttachmentSize {
			return nil, ErrAttachmentTooLarge
		}
		attachments = append(attachments, models.ReportAttachment{
			Filename:     a.Filename,
			OriginalName: a.OriginalName,
			ContentType:  a.ContentType,
			Size:         a.Size,
			URL:          a.URL,
			UploadedAt:   now,
		})
	}

	task, err := s.taskRepo.FindOwned(input.TaskID, input.VolunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.ReplaceReport(task, description, now, attachments); err != nil {
		if errors.Is(err, repository.ErrStaleTask) {
			return nil, ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	entry := &models.TaskHistory{
		TaskID: task.ID,
		Status: task.Status,
		Note:   "Report submitted",
		At:     now,
	}
	if err := s.taskRepo.AppendHistory(entry); err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}

	if s.adminEmail != "" {
		volunteer, err := s.userRepo.FindByID(input.VolunteerID)
		if err != nil {
			log.Printf("task %d: report notification skipped, volunteer lookup failed: %v", task.ID, err)
		} else if err := s.notifier.NotifyReportSubmitted(s.adminEmail, volunteer, task); err != nil {
			log.Printf("task %d: report notification failed: %v", task.ID, err)
		}
	}

	return task, nil
}

// ListVolunteerTasks returns a volunteer's tasks, newest first
func (s *TaskService) ListVolunteerTasks(volunteerID uint64, filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.ListByVolunteer(volunteerID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetOwnedTask returns one of the volunteer's tasks with its history and
// attachments loaded
func (s *TaskService) GetOwnedTask(taskID, volunteerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(taskID, volunteerID, "History", "Attachments", "Disaster")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// refreshVolunteerStats recomputes the denormalized counters from the task
// store and writes them wholesale onto the volunteer row.
func (s *TaskService) refreshVolunteerStats(volunteerID uint64) error {
	stats, err := s.taskRepo.Stats(volunteerID)
	if err != nil {
		return err
	}
	return s.userRepo.RefreshTaskStats(volunteerID, stats)
}
