package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yashika222/ReliefNet/internal/constants"
	"github.com/yashika222/ReliefNet/internal/dto"
	apierrors "github.com/yashika222/ReliefNet/internal/errors"
	"github.com/yashika222/ReliefNet/internal/middleware"
	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/repository"
	"github.com/yashika222/ReliefNet/internal/services"
	"github.com/yashika222/ReliefNet/internal/utils"
)

// TaskHandler serves the volunteer portal's task endpoints.
type TaskHandler struct {
	taskService    *services.TaskService
	metricsService *services.MetricsService
	uploadDir      string
}

// NewTaskHandler creates a new TaskHandler. uploadDir is where report
// attachments are stored on disk.
func NewTaskHandler(taskService *services.TaskService, metricsService *services.MetricsService, uploadDir string) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		metricsService: metricsService,
		uploadDir:      uploadDir,
	}
}

// ListTasks returns the authenticated volunteer's tasks, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	volunteerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.TaskFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(raw)
		if !models.ValidTaskStatus(status) {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Status = &status
	}

	tasks, total, err := h.taskService.ListVolunteerTasks(volunteerID, filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns one of the volunteer's tasks with its history and report.
func (h *TaskHandler) GetTask(c *gin.Context) {
	volunteerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetOwnedTask(taskID, volunteerID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateStatus applies a lifecycle transition to the volunteer's own task.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	volunteerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.TransitionStatus(services.TransitionInput{
		TaskID:      taskID,
		VolunteerID: volunteerID,
		Status:      models.TaskStatus(req.Status),
		Note:        req.Note,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SubmitReport accepts a multipart report submission with up to four
// attachments. A resubmission replaces the previous report entirely.
func (h *TaskHandler) SubmitReport(c *gin.Context) {
	volunteerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apierrors.BadRequest(c, "Invalid multipart form")
		return
	}

	description := c.PostForm("description")
	files := form.File["attachments"]
	if len(files) > constants.MaxReportAttachments {
		apierrors.BadRequest(c, fmt.Sprintf("At most %d attachments are allowed", constants.MaxReportAttachments))
		return
	}

	attachments := make([]services.AttachmentInput, 0, len(files))
	for _, file := range files {
		contentType := file.Header.Get("Content-Type")
		if !constants.AllowedAttachmentTypes[contentType] {
			apierrors.BadRequest(c, "Attachments must be JPEG, PNG or PDF")
			return
		}
		if file.Size > constants.MaxReportAttachmentSize {
			apierrors.BadRequest(c, "Attachment exceeds the 8MB size limit")
			return
		}

		name := utils.StoredFilename(file.Filename)
		dest := filepath.Join(h.uploadDir, name)
		if err := c.SaveUploadedFile(file, dest); err != nil {
			apierrors.InternalError(c, "Failed to store attachment")
			return
		}
		attachments = append(attachments, services.AttachmentInput{
			Filename:     name,
			OriginalName: file.Filename,
			ContentType:  contentType,
			Size:         file.Size,
			URL:          "/uploads/" + name,
		})
	}

	task, err := h.taskService.SubmitReport(services.SubmitReportInput{
		TaskID:      taskID,
		VolunteerID: volunteerID,
		Description: description,
		Attachments: attachments,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// GetMetrics returns the volunteer's live task counts.
func (h *TaskHandler) GetMetrics(c *gin.Context) {
	volunteerID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	metrics, err := h.metricsService.VolunteerMetrics(volunteerID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrVolunteerNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskCompleted),
		errors.Is(err, services.ErrConcurrentUpdate):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrReportTooShort),
		errors.Is(err, services.ErrTooManyAttachments),
		errors.Is(err, services.ErrAttachmentType),
		errors.Is(err, services.ErrAttachmentTooLarge):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAggregation):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
