package repository

import (
	"database/sql"
	"time"

	"github.com/yashika222/ReliefNet/internal/database"
	"github.com/yashika222/ReliefNet/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindOwned finds a task scoped to its owning volunteer
func (r *GormTaskRepository) FindOwned(id, volunteerID uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.Where("id = ? AND volunteer_id = ?", id, volunteerID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByVolunteer retrieves a volunteer's tasks, newest first
func (r *GormTaskRepository) ListByVolunteer(volunteerID uint64, filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("volunteer_id = ?", volunteerID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC").Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Disaster").Preload("Attachments").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateLifecycle writes lifecycle fields guarded by the lock version read
// by the caller. The single UPDATE keeps the write atomic and detects lost
// races without a table lock.
func (r *GormTaskRepository) UpdateLifecycle(task *models.Task) error {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND lock_version = ?", task.ID, task.LockVersion).
		Updates(map[string]interface{}{
			"status":       task.Status,
			"accepted_at":  task.AcceptedAt,
			"completed_at": task.CompletedAt,
			"lock_version": task.LockVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleTask
	}

	task.LockVersion++
	return nil
}

// ReplaceReport overwrites the task's report and swaps the attachment set
// in one transaction. One report per task, last write wins.
func (r *GormTaskRepository) ReplaceReport(task *models.Task, description string, submittedAt time.Time, attachments []models.ReportAttachment) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).
			Where("id = ? AND lock_version = ?", task.ID, task.LockVersion).
			Updates(map[string]interface{}{
				"report_description":  description,
				"report_submitted_at": submittedAt,
				"lock_version":        task.LockVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleTask
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.ReportAttachment{}).Error; err != nil {
			return err
		}

		if len(attachments) > 0 {
			for i := range attachments {
				attachments[i].TaskID = task.ID
			}
			if err := tx.Create(&attachments).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	task.ReportDescription = description
	task.ReportSubmittedAt = &submittedAt
	task.LockVersion++
	return nil
}

// AppendHistory appends one audit entry
func (r *GormTaskRepository) AppendHistory(entry *models.TaskHistory) error {
	return r.db.Create(entry).Error
}

// FindOverdueUnwarned returns tasks past deadline, unresolved, not yet warned
func (r *GormTaskRepository) FindOverdueUnwarned(now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("status <> ?", models.TaskStatusCompleted).
		Where("deadline IS NOT NULL AND deadline < ?", now).
		Where("warned = ?", false).
		Preload("Volunteer").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindOverdueByVolunteer returns a volunteer's overdue tasks regardless of
// the warned flag
func (r *GormTaskRepository) FindOverdueByVolunteer(volunteerID uint64, now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("volunteer_id = ?", volunteerID).
		Where("status <> ?", models.TaskStatusCompleted).
		Where("deadline IS NOT NULL AND deadline < ?", now).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// MarkWarned flags the given tasks warned in a single bulk update
func (r *GormTaskRepository) MarkWarned(ids []uint64, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Task{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"warned":    true,
			"warned_at": now,
		}).Error
}

// DeleteByVolunteer removes all of a volunteer's tasks along with their
// history and attachments
func (r *GormTaskRepository) DeleteByVolunteer(volunteerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint64
		if err := tx.Model(&models.Task{}).
			Where("volunteer_id = ?", volunteerID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("task_id IN ?", ids).Delete(&models.TaskHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id IN ?", ids).Delete(&models.ReportAttachment{}).Error; err != nil {
			return err
		}

		return tx.Where("volunteer_id = ?", volunteerID).Delete(&models.Task{}).Error
	})
}

// Stats computes the denormalized counter snapshot for one volunteer
func (r *GormTaskRepository) Stats(volunteerID uint64) (TaskStats, error) {
	var stats TaskStats

	base := r.db.Model(&models.Task{}).Where("volunteer_id = ?", volunteerID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalAssigned).Error; err != nil {
		return TaskStats{}, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", models.TaskStatusCompleted).
		Count(&stats.TotalCompleted).Error; err != nil {
		return TaskStats{}, err
	}

	var last sql.NullTime
	if err := base.Session(&gorm.Session{}).
		Select("MAX(created_at)").
		Scan(&last).Error; err != nil {
		return TaskStats{}, err
	}
	if last.Valid {
		stats.LastAssignmentAt = &last.Time
	}

	return stats, nil
}

// Metrics computes the live derived counts for one volunteer
func (r *GormTaskRepository) Metrics(volunteerID uint64, now time.Time) (VolunteerMetrics, error) {
	var m VolunteerMetrics

	base := r.db.Model(&models.Task{}).Where("volunteer_id = ?", volunteerID)

	counts := []struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&m.Assigned, func(q *gorm.DB) *gorm.DB { return q }},
		{&m.Completed, func(q *gorm.DB) *gorm.DB {
			return q.Where("status = ?", models.TaskStatusCompleted)
		}},
		{&m.InProgress, func(q *gorm.DB) *gorm.DB {
			return q.Where("status = ?", models.TaskStatusInProgress)
		}},
		{&m.Overdue, func(q *gorm.DB) *gorm.DB {
			return q.Where("status <> ?", models.TaskStatusCompleted).
				Where("deadline IS NOT NULL AND deadline < ?", now)
		}},
		{&m.Warned, func(q *gorm.DB) *gorm.DB {
			return q.Where("warned = ?", true)
		}},
	}

	for _, c := range counts {
		if err := c.scope(base.Session(&gorm.Session{})).Count(c.dest).Error; err != nil {
			return VolunteerMetrics{}, err
		}
	}

	return m, nil
}

// GlobalMetrics computes task counts across all volunteers
func (r *GormTaskRepository) GlobalMetrics(now time.Time) (GlobalTaskMetrics, error) {
	var m GlobalTaskMetrics

	base := r.db.Model(&models.Task{})

	counts := []struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&m.TotalTasks, func(q *gorm.DB) *gorm.DB { return q }},
		{&m.CompletedTasks, func(q *gorm.DB) *gorm.DB {
			return q.Where("status = ?", models.TaskStatusCompleted)
		}},
		{&m.InProgressTasks, func(q *gorm.DB) *gorm.DB {
			return q.Where("status = ?", models.TaskStatusInProgress)
		}},
		{&m.OverdueTasks, func(q *gorm.DB) *gorm.DB {
			return q.Where("status <> ?", models.TaskStatusCompleted).
				Where("deadline IS NOT NULL AND deadline < ?", now)
		}},
		{&m.WarnedTasks, func(q *gorm.DB) *gorm.DB {
			return q.Where("warned = ?", true)
		}},
	}

	for _, c := range counts {
		if err := c.scope(base.Session(&gorm.Session{})).Count(c.dest).Error; err != nil {
			return GlobalTaskMetrics{}, err
		}
	}

	return m, nil
}
