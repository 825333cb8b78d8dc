package repository

import (
	"github.com/yashika222/ReliefNet/internal/database"
	"github.com/yashika222/ReliefNet/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindVolunteerByID finds a user constrained to the volunteer role
func (r *GormUserRepository) FindVolunteerByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ? AND role = ?", id, models.RoleVolunteer).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListVolunteers retrieves volunteers with filtering and pagination
func (r *GormUserRepository) ListVolunteers(filter VolunteerFilter) ([]models.User, int64, error) {
	var volunteers []models.User

	query := r.db.Model(&models.User{}).Where("role = ?", models.RoleVolunteer)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("approval_status = ?", *filter.Status)
	}
	if filter.Blocked != nil {
		query = query.Where("blocked = ?", *filter.Blocked)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	switch filter.Sort {
	case VolunteerSortOldest:
		listQuery = listQuery.Order("created_at ASC")
	case VolunteerSortName:
		listQuery = listQuery.Order("name ASC")
	case VolunteerSortTasks:
		listQuery = listQuery.Order("total_tasks_assigned DESC")
	default:
		listQuery = listQuery.Order("created_at DESC")
	}

	listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Find(&volunteers).Error; err != nil {
		return nil, 0, err
	}

	return volunteers, total, nil
}

// Save persists changes to a user
func (r *GormUserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// RefreshTaskStats overwrites the volunteer's denormalized counters with a
// freshly computed snapshot. Wholesale, not incremental.
func (r *GormUserRepository) RefreshTaskStats(volunteerID uint64, stats TaskStats) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", volunteerID).
		Updates(map[string]interface{}{
			"total_tasks_assigned":  stats.TotalAssigned,
			"total_tasks_completed": stats.TotalCompleted,
			"last_assignment_at":    stats.LastAssignmentAt,
		}).Error
}

// DeleteVolunteer removes a volunteer account
func (r *GormUserRepository) DeleteVolunteer(id uint64) error {
	return r.db.Where("role = ?", models.RoleVolunteer).Delete(&models.User{}, id).Error
}

// Counts aggregates volunteer headcounts by approval state
func (r *GormUserRepository) Counts() (VolunteerCounts, error) {
	var c VolunteerCounts

	base := r.db.Model(&models.User{}).Where("role = ?", models.RoleVolunteer)

	counts := []struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&c.Total, func(q *gorm.DB) *gorm.DB { return q }},
		{&c.Active, func(q *gorm.DB) *gorm.DB {
			return q.Where("approved = ? AND blocked = ?", true, false)
		}},
		{&c.Pending, func(q *gorm.DB) *gorm.DB {
			return q.Where("approval_status = ?", models.ApprovalPending)
		}},
		{&c.Rejected, func(q *gorm.DB) *gorm.DB {
			return q.Where("approval_status = ?", models.ApprovalRejected)
		}},
		{&c.Blocked, func(q *gorm.DB) *gorm.DB {
			return q.Where("blocked = ?", true)
		}},
	}

	for _, count := range counts {
		if err := count.scope(base.Session(&gorm.Session{})).Count(count.dest).Error; err != nil {
			return VolunteerCounts{}, err
		}
	}

	return c, nil
}
