package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yashika222/ReliefNet/internal/services"
)

// Scheduler runs the overdue-warning sweep on a cron schedule so that
// warnings go out even when nobody is looking at the dashboard.
type Scheduler struct {
	cron    *cron.Cron
	warning *services.WarningService
}

// New creates a Scheduler around the given warning service.
func New(warning *services.WarningService) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		warning: warning,
	}
}

// Start registers the sweep job under spec (cron syntax, "@every 5m" style
// accepted) and starts the scheduler in its own goroutine.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runSweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("scheduler: warning sweep registered (%s)", spec)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runSweep() {
	result, err := s.warning.RunAutoWarnings(time.Now())
	if err != nil {
		log.Printf("scheduler: warning sweep failed: %v", err)
		return
	}
	if result.Triggered {
		log.Printf("scheduler: warned %d overdue tasks", result.Count)
	}
}
