package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yashika222/ReliefNet/internal/dto"
	apierrors "github.com/yashika222/ReliefNet/internal/errors"
	"github.com/yashika222/ReliefNet/internal/middleware"
	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/repository"
	"github.com/yashika222/ReliefNet/internal/services"
	"github.com/yashika222/ReliefNet/internal/utils"
)

// AdminHandler serves the coordination dashboard: volunteer management,
// task assignment, warning sweeps, and aggregate metrics.
type AdminHandler struct {
	taskService      *services.TaskService
	volunteerService *services.VolunteerService
	warningService   *services.WarningService
	metricsService   *services.MetricsService
	aiService        *services.AIService
	disasterRepo     repository.DisasterRepository
}

// NewAdminHandler creates a new AdminHandler. aiService may be nil when no
// API key is configured.
func NewAdminHandler(
	taskService *services.TaskService,
	volunteerService *services.VolunteerService,
	warningService *services.WarningService,
	metricsService *services.MetricsService,
	aiService *services.AIService,
	disasterRepo repository.DisasterRepository,
) *AdminHandler {
	return &AdminHandler{
		taskService:      taskService,
		volunteerService: volunteerService,
		warningService:   warningService,
		metricsService:   metricsService,
		aiService:        aiService,
		disasterRepo:     disasterRepo,
	}
}

// AssignTask creates a task for an approved volunteer.
func (h *AdminHandler) AssignTask(c *gin.Context) {
	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type AssignTaskRequest struct {
		VolunteerID     uint64  `json:"volunteer_id" binding:"required"`
		Title           string  `json:"title" binding:"required"`
		Description     string  `json:"description"`
		Priority        string  `json:"priority"`
		Deadline        *string `json:"deadline"`
		ReliefRequestID *uint64 `json:"relief_request_id"`
		DisasterID      *uint64 `json:"disaster_id"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			apierrors.BadRequest(c, "Deadline must be an RFC 3339 timestamp")
			return
		}
		deadline = &parsed
	}

	task, err := h.taskService.AssignTask(services.AssignTaskInput{
		VolunteerID:     req.VolunteerID,
		Title:           req.Title,
		Description:     req.Description,
		Priority:        models.TaskPriority(req.Priority),
		Deadline:        deadline,
		ReliefRequestID: req.ReliefRequestID,
		DisasterID:      req.DisasterID,
		AssignedByID:    &adminID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListVolunteers returns volunteers filtered by search, approval state and
// block state.
func (h *AdminHandler) ListVolunteers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := repository.VolunteerFilter{
		Search:   c.Query("search"),
		Sort:     repository.VolunteerSort(c.DefaultQuery("sort", string(repository.VolunteerSortNewest))),
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if raw := c.Query("status"); raw != "" {
		status := models.ApprovalStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("blocked"); raw != "" {
		blocked := raw == "true"
		filter.Blocked = &blocked
	}

	volunteers, total, err := h.volunteerService.ListVolunteers(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list volunteers")
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerListResponse(volunteers, params.Page, params.Limit, total))
}

// GetVolunteer returns one volunteer with live task metrics.
func (h *AdminHandler) GetVolunteer(c *gin.Context) {
	volunteerID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	volunteer, err := h.volunteerService.GetVolunteer(volunteerID)
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	metrics, err := h.metricsService.VolunteerMetrics(volunteerID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"volunteer": dto.ToVolunteerDTO(*volunteer),
		"metrics":   metrics,
	})
}

// ListVolunteerTasks returns one volunteer's tasks for the admin view.
func (h *AdminHandler) ListVolunteerTasks(c *gin.Context) {
	volunteerID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
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

// ApproveVolunteer approves a pending registration.
func (h *AdminHandler) ApproveVolunteer(c *gin.Context) {
	h.updateApproval(c, (*services.VolunteerService).Approve)
}

// RejectVolunteer rejects a registration.
func (h *AdminHandler) RejectVolunteer(c *gin.Context) {
	h.updateApproval(c, (*services.VolunteerService).Reject)
}

func (h *AdminHandler) updateApproval(c *gin.Context, action func(*services.VolunteerService, uint64, uint64) (*models.User, error)) {
	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	volunteerID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	volunteer, err := action(h.volunteerService, volunteerID, adminID)
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerDTO(*volunteer))
}

// BlockVolunteer blocks a volunteer from new assignments and login.
func (h *AdminHandler) BlockVolunteer(c *gin.Context) {
	h.updateBlocked(c, true)
}

// UnblockVolunteer lifts a block.
func (h *AdminHandler) UnblockVolunteer(c *gin.Context) {
	h.updateBlocked(c, false)
}

func (h *AdminHandler) updateBlocked(c *gin.Context, blocked bool) {
	volunteerID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	volunteer, err := h.volunteerService.SetBlocked(volunteerID, blocked)
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerDTO(*volunteer))
}

// DeleteVolunteer removes a volunteer account and all their tasks.
func (h *AdminHandler) DeleteVolunteer(c *gin.Context) {
	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	volunteerID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	if err := h.volunteerService.Delete(volunteerID, adminID); err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Volunteer deleted",
	})
}

// ResetVolunteerPassword issues a temporary password and emails it.
func (h *AdminHandler) ResetVolunteerPassword(c *gin.Context) {
	volunteerID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	if err := h.volunteerService.ResetPassword(volunteerID); err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Temporary password sent",
	})
}

// EmailVolunteer sends a custom message to a volunteer.
func (h *AdminHandler) EmailVolunteer(c *gin.Context) {
	volunteerID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	type EmailRequest struct {
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}

	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.volunteerService.EmailVolunteer(volunteerID, req.Subject, req.Message); err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email sent",
	})
}

// WarnVolunteer sends an overdue-task warning to one volunteer regardless
// of whether their tasks were already flagged.
func (h *AdminHandler) WarnVolunteer(c *gin.Context) {
	volunteerID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid volunteer ID")
		return
	}

	count, err := h.warningService.WarnVolunteer(volunteerID, time.Now())
	if err != nil {
		respondVolunteerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Warning sent",
		"overdue_tasks": count,
	})
}

// RunWarningSweep triggers the overdue-warning sweep on demand. The same
// sweep also runs on the background schedule.
func (h *AdminHandler) RunWarningSweep(c *gin.Context) {
	result, err := h.warningService.RunAutoWarnings(time.Now())
	if err != nil {
		apierrors.InternalError(c, "Warning sweep failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSummary returns volunteer headcounts and global task metrics.
func (h *AdminHandler) GetSummary(c *gin.Context) {
	summary, err := h.metricsService.Summary()
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListActiveDisasters returns active disasters for the assignment form.
func (h *AdminHandler) ListActiveDisasters(c *gin.Context) {
	disasters, err := h.disasterRepo.ListActive()
	if err != nil {
		apierrors.InternalError(c, "Failed to list disasters")
		return
	}

	out := make([]dto.DisasterDTO, 0, len(disasters))
	for _, d := range disasters {
		out = append(out, dto.ToDisasterDTO(d))
	}
	c.JSON(http.StatusOK, gin.H{
		"disasters": out,
	})
}

// DraftTasks asks the AI service to propose task drafts from a free-form
// situation report.
func (h *AdminHandler) DraftTasks(c *gin.Context) {
	if h.aiService == nil {
		apierrors.BadRequest(c, "AI drafting is not configured")
		return
	}

	type DraftRequest struct {
		Report string `json:"report" binding:"required"`
	}

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.aiService.DraftTasksFromReport(c.Request.Context(), req.Report)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate drafts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drafts": drafts,
	})
}

func respondVolunteerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrVolunteerNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSelfAction):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrSubjectRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
