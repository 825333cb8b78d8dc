package dto

import (
	"time"

	"github.com/yashika222/ReliefNet/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// VolunteerDTO represents a volunteer in admin API responses
type VolunteerDTO struct {
	ID                  uint64                `json:"id"`
	Name                string                `json:"name"`
	Email               string                `json:"email"`
	Phone               string                `json:"phone,omitempty"`
	City                string                `json:"city,omitempty"`
	State               string                `json:"state,omitempty"`
	Availability        string                `json:"availability,omitempty"`
	Skills              string                `json:"skills,omitempty"`
	Approved            bool                  `json:"approved"`
	ApprovalStatus      models.ApprovalStatus `json:"approval_status"`
	Blocked             bool                  `json:"blocked"`
	TotalTasksAssigned  int64                 `json:"total_tasks_assigned"`
	TotalTasksCompleted int64                 `json:"total_tasks_completed"`
	LastAssignmentAt    *time.Time            `json:"last_assignment_at"`
	CreatedAt           time.Time             `json:"created_at"`
}

// VolunteerListResponse represents a paginated list of volunteers
type VolunteerListResponse struct {
	Volunteers []VolunteerDTO `json:"volunteers"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// ToVolunteerDTO converts a User model to VolunteerDTO
func ToVolunteerDTO(user models.User) VolunteerDTO {
	return VolunteerDTO{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               user.Email,
		Phone:               user.Phone,
		City:                user.City,
		State:               user.State,
		Availability:        user.Availability,
		Skills:              user.Skills,
		Approved:            user.Approved,
		ApprovalStatus:      user.ApprovalStatus,
		Blocked:             user.Blocked,
		TotalTasksAssigned:  user.TotalTasksAssigned,
		TotalTasksCompleted: user.TotalTasksCompleted,
		LastAssignmentAt:    user.LastAssignmentAt,
		CreatedAt:           user.CreatedAt,
	}
}

// ToVolunteerListResponse converts a slice of users to VolunteerListResponse
func ToVolunteerListResponse(volunteers []models.User, page, pageSize int, totalCount int64) VolunteerListResponse {
	items := make([]VolunteerDTO, len(volunteers))
	for i, v := range volunteers {
		items[i] = ToVolunteerDTO(v)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return VolunteerListResponse{
		Volunteers: items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
