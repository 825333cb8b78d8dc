package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yashika222/ReliefNet/internal/repository"
	"gorm.io/gorm"
)

// ErrAggregation marks a metrics query failure. Callers may retry; the
// service never substitutes zeroed counts for a failed query.
var ErrAggregation = errors.New("metrics aggregation failed")

// VolunteerSummary is the admin dashboard snapshot.
type VolunteerSummary struct {
	Volunteers repository.VolunteerCounts   `json:"volunteers"`
	Tasks      repository.GlobalTaskMetrics `json:"tasks"`
}

// MetricsService computes read-only, derived task counts. Nothing here is a
// source of truth; every number is recomputed from the task store on demand.
type MetricsService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *MetricsService {
	return &MetricsService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// VolunteerMetrics returns the live task counts for one volunteer.
func (s *MetricsService) VolunteerMetrics(volunteerID uint64) (repository.VolunteerMetrics, error) {
	if _, err := s.userRepo.FindVolunteerByID(volunteerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.VolunteerMetrics{}, ErrVolunteerNotFound
		}
		return repository.VolunteerMetrics{}, fmt.Errorf("%w: %v", ErrAggregation, err)
	}

	metrics, err := s.taskRepo.Metrics(volunteerID, time.Now())
	if err != nil {
		return repository.VolunteerMetrics{}, fmt.Errorf("%w: %v", ErrAggregation, err)
	}
	return metrics, nil
}

// Summary returns volunteer headcounts and global task counts for the
// admin dashboard. The summary is a pure read; the overdue sweep runs on
// its own schedule, not as a side effect here.
func (s *MetricsService) Summary() (VolunteerSummary, error) {
	volunteers, err := s.userRepo.Counts()
	if err != nil {
		return VolunteerSummary{}, fmt.Errorf("%w: %v", ErrAggregation, err)
	}

	tasks, err := s.taskRepo.GlobalMetrics(time.Now())
	if err != nil {
		return VolunteerSummary{}, fmt.Errorf("%w: %v", ErrAggregation, err)
	}

	return VolunteerSummary{
		Volunteers: volunteers,
		Tasks:      tasks,
	}, nil
}
