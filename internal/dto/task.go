package dto

import (
	"time"

	"github.com/yashika222/ReliefNet/internal/models"
)

// TaskHistoryDTO represents one audit entry in API responses
type TaskHistoryDTO struct {
	Status models.TaskStatus `json:"status"`
	Note   string            `json:"note"`
	At     time.Time         `json:"at"`
}

// AttachmentDTO represents a report attachment in API responses
type AttachmentDTO struct {
	OriginalName string `json:"original_name"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}

// ReportDTO represents a task report in API responses
type ReportDTO struct {
	Description string          `json:"description"`
	SubmittedAt *time.Time      `json:"submitted_at"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
}

// DisasterDTO represents a disaster reference in API responses
type DisasterDTO struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Severity string `json:"severity"`
	IsActive bool   `json:"is_active"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	VolunteerID uint64              `json:"volunteer_id"`
	Deadline    *time.Time          `json:"deadline"`
	Warned      bool                `json:"warned"`
	WarnedAt    *time.Time          `json:"warned_at"`
	AcceptedAt  *time.Time          `json:"accepted_at"`
	CompletedAt *time.Time          `json:"completed_at"`
	LockVersion uint64              `json:"lock_version"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Disaster    *DisasterDTO        `json:"disaster,omitempty"`
	Report      *ReportDTO          `json:"report,omitempty"`
	History     []TaskHistoryDTO    `json:"history,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// Conversion functions

// ToDisasterDTO converts a Disaster model to DisasterDTO
func ToDisasterDTO(d models.Disaster) DisasterDTO {
	return DisasterDTO{
		ID:       d.ID,
		Title:    d.Title,
		Type:     d.Type,
		Location: d.Location,
		Severity: d.Severity,
		IsActive: d.IsActive,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		VolunteerID: task.VolunteerID,
		Deadline:    task.Deadline,
		Warned:      task.Warned,
		WarnedAt:    task.WarnedAt,
		AcceptedAt:  task.AcceptedAt,
		CompletedAt: task.CompletedAt,
		LockVersion: task.LockVersion,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include disaster if preloaded
	if task.Disaster != nil && task.Disaster.ID != 0 {
		disaster := ToDisasterDTO(*task.Disaster)
		dto.Disaster = &disaster
	}

	// Include report once one has been submitted
	if task.ReportSubmittedAt != nil {
		report := ReportDTO{
			Description: task.ReportDescription,
			SubmittedAt: task.ReportSubmittedAt,
		}
		for _, a := range task.Attachments {
			report.Attachments = append(report.Attachments, AttachmentDTO{
				OriginalName: a.OriginalName,
				ContentType:  a.ContentType,
				Size:         a.Size,
				URL:          a.URL,
			})
		}
		dto.Report = &report
	}

	// Include history if preloaded
	if len(task.History) > 0 {
		dto.History = make([]TaskHistoryDTO, len(task.History))
		for i, h := range task.History {
			dto.History[i] = TaskHistoryDTO{
				Status: h.Status,
				Note:   h.Note,
				At:     h.At,
			}
		}
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
