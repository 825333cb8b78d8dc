package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/notify"
	"github.com/yashika222/ReliefNet/internal/repository"
	"gorm.io/gorm"
)

// SweepResult reports what an auto-warning sweep did.
type SweepResult struct {
	Triggered bool `json:"triggered"`
	Count     int  `json:"count"`
}

// WarningService detects overdue tasks and warns their volunteers at most
// once per task. The warned flag is set before any notification goes out,
// so a concurrent or repeated sweep never double-notifies; a delivery
// failure after the flag is set is logged and not retried.
type WarningService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	notifier notify.Notifier
	sms      notify.SMSSender
}

// NewWarningService creates a new WarningService. sms may be nil.
func NewWarningService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, notifier notify.Notifier, sms notify.SMSSender) *WarningService {
	return &WarningService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: notifier,
		sms:      sms,
	}
}

// RunAutoWarnings scans for tasks past their deadline that are unresolved
// and not yet warned, flags them, and sends one grouped notification per
// volunteer.
func (s *WarningService) RunAutoWarnings(now time.Time) (SweepResult, error) {
	overdue, err := s.taskRepo.FindOverdueUnwarned(now)
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to scan overdue tasks: %w", err)
	}
	if len(overdue) == 0 {
		return SweepResult{}, nil
	}

	ids := make([]uint64, len(overdue))
	for i, t := range overdue {
		ids[i] = t.ID
	}

	// Flag first. Once marked, a task is never warned again even if
	// delivery below fails.
	if err := s.taskRepo.MarkWarned(ids, now); err != nil {
		return SweepResult{}, fmt.Errorf("failed to mark tasks warned: %w", err)
	}

	for volunteerID, tasks := range groupByVolunteer(overdue) {
		volunteer := tasks[0].Volunteer
		if volunteer.ID == 0 {
			log.Printf("auto-warning: volunteer %d missing, skipping %d task(s)", volunteerID, len(tasks))
			continue
		}
		s.dispatchWarning(&volunteer, tasks)
	}

	return SweepResult{Triggered: true, Count: len(overdue)}, nil
}

// WarnVolunteer warns one volunteer about all their currently overdue
// tasks, including ones already flagged by a previous sweep. Returns the
// number of overdue tasks covered.
func (s *WarningService) WarnVolunteer(volunteerID uint64, now time.Time) (int, error) {
	overdue, err := s.taskRepo.FindOverdueByVolunteer(volunteerID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to find overdue tasks: %w", err)
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	ids := make([]uint64, len(overdue))
	for i, t := range overdue {
		ids[i] = t.ID
	}
	if err := s.taskRepo.MarkWarned(ids, now); err != nil {
		return 0, fmt.Errorf("failed to mark tasks warned: %w", err)
	}

	volunteer, err := s.userRepo.FindVolunteerByID(volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrVolunteerNotFound
		}
		return 0, fmt.Errorf("failed to find volunteer: %w", err)
	}

	s.dispatchWarning(volunteer, overdue)

	return len(overdue), nil
}

// dispatchWarning delivers one grouped warning; failures are logged, never
// propagated.
func (s *WarningService) dispatchWarning(volunteer *models.User, tasks []models.Task) {
	if err := s.notifier.NotifyOverdueWarning(volunteer, tasks); err != nil {
		log.Printf("auto-warning: notification to %s failed: %v", volunteer.Email, err)
	}
	if s.sms != nil {
		if err := s.sms.SendOverdueWarning(volunteer, tasks); err != nil {
			log.Printf("auto-warning: SMS to %s failed: %v", volunteer.Email, err)
		}
	}
}

func groupByVolunteer(tasks []models.Task) map[uint64][]models.Task {
	grouped := make(map[uint64][]models.Task)
	for _, t := range tasks {
		grouped[t.VolunteerID] = append(grouped[t.VolunteerID], t)
	}
	return grouped
}
