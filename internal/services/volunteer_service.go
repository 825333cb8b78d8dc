package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/notify"
	"github.com/yashika222/ReliefNet/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrSelfAction      = errors.New("administrators cannot perform this action on their own account")
	ErrSubjectRequired = errors.New("subject and message are required")
)

// VolunteerService covers admin-side volunteer management: approval,
// blocking, deletion, listing, and direct email.
type VolunteerService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
	notifier notify.Notifier
}

// NewVolunteerService creates a new VolunteerService
func NewVolunteerService(userRepo repository.UserRepository, taskRepo repository.TaskRepository, notifier notify.Notifier) *VolunteerService {
	return &VolunteerService{
		userRepo: userRepo,
		taskRepo: taskRepo,
		notifier: notifier,
	}
}

// ListVolunteers returns volunteers matching the filter
func (s *VolunteerService) ListVolunteers(filter repository.VolunteerFilter) ([]models.User, int64, error) {
	volunteers, total, err := s.userRepo.ListVolunteers(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return volunteers, total, nil
}

// GetVolunteer returns one volunteer by ID
func (s *VolunteerService) GetVolunteer(id uint64) (*models.User, error) {
	volunteer, err := s.userRepo.FindVolunteerByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("failed to find volunteer: %w", err)
	}
	return volunteer, nil
}

// Approve marks a volunteer approved and unblocked. Admins cannot approve
// themselves.
func (s *VolunteerService) Approve(volunteerID, actorID uint64) (*models.User, error) {
	if volunteerID == actorID {
		return nil, ErrSelfAction
	}

	volunteer, err := s.GetVolunteer(volunteerID)
	if err != nil {
		return nil, err
	}

	volunteer.Approved = true
	volunteer.ApprovalStatus = models.ApprovalApproved
	volunteer.Blocked = false
	if err := s.userRepo.Save(volunteer); err != nil {
		return nil, fmt.Errorf("failed to approve volunteer: %w", err)
	}

	if err := s.notifier.NotifyApproval(volunteer); err != nil {
		log.Printf("volunteer %d: approval mail failed: %v", volunteer.ID, err)
	}

	return volunteer, nil
}

// Reject marks a volunteer rejected
func (s *VolunteerService) Reject(volunteerID, actorID uint64) (*models.User, error) {
	if volunteerID == actorID {
		return nil, ErrSelfAction
	}

	volunteer, err := s.GetVolunteer(volunteerID)
	if err != nil {
		return nil, err
	}

	volunteer.Approved = false
	volunteer.ApprovalStatus = models.ApprovalRejected
	if err := s.userRepo.Save(volunteer); err != nil {
		return nil, fmt.Errorf("failed to reject volunteer: %w", err)
	}

	if err := s.notifier.NotifyRejection(volunteer); err != nil {
		log.Printf("volunteer %d: rejection mail failed: %v", volunteer.ID, err)
	}

	return volunteer, nil
}

// SetBlocked blocks or unblocks a volunteer
func (s *VolunteerService) SetBlocked(volunteerID uint64, blocked bool) (*models.User, error) {
	volunteer, err := s.GetVolunteer(volunteerID)
	if err != nil {
		return nil, err
	}

	volunteer.Blocked = blocked
	if err := s.userRepo.Save(volunteer); err != nil {
		return nil, fmt.Errorf("failed to update volunteer: %w", err)
	}

	var notifyErr error
	if blocked {
		notifyErr = s.notifier.NotifyBlocked(volunteer)
	} else {
		notifyErr = s.notifier.NotifyUnblocked(volunteer)
	}
	if notifyErr != nil {
		log.Printf("volunteer %d: block-state mail failed: %v", volunteer.ID, notifyErr)
	}

	return volunteer, nil
}

// Delete removes a volunteer account and cascades deletion of their tasks.
// Task deletion is the only path where stored tasks go away.
func (s *VolunteerService) Delete(volunteerID, actorID uint64) error {
	if volunteerID == actorID {
		return ErrSelfAction
	}

	if _, err := s.GetVolunteer(volunteerID); err != nil {
		return err
	}

	if err := s.userRepo.DeleteVolunteer(volunteerID); err != nil {
		return fmt.Errorf("failed to delete volunteer: %w", err)
	}
	if err := s.taskRepo.DeleteByVolunteer(volunteerID); err != nil {
		return fmt.Errorf("failed to delete volunteer tasks: %w", err)
	}

	return nil
}

// ResetPassword generates a temporary password, stores its hash, and mails
// it to the volunteer.
func (s *VolunteerService) ResetPassword(volunteerID uint64) error {
	volunteer, err := s.GetVolunteer(volunteerID)
	if err != nil {
		return err
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	volunteer.PasswordHash = string(hashed)
	volunteer.ForcePasswordReset = true
	if err := s.userRepo.Save(volunteer); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	if err := s.notifier.NotifyPasswordReset(volunteer, tempPassword); err != nil {
		log.Printf("volunteer %d: password reset mail failed: %v", volunteer.ID, err)
	}

	return nil
}

// EmailVolunteer sends a custom admin message to a volunteer. Unlike the
// lifecycle notifications this one is the primary operation, so delivery
// failure is returned to the caller.
func (s *VolunteerService) EmailVolunteer(volunteerID uint64, subject, message string) error {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(message) == "" {
		return ErrSubjectRequired
	}

	volunteer, err := s.GetVolunteer(volunteerID)
	if err != nil {
		return err
	}

	if err := s.notifier.SendCustom(volunteer.Email, subject, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(buf)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, encoded)

	if len(cleaned) > 10 {
		cleaned = cleaned[:10]
	}
	return cleaned, nil
}
