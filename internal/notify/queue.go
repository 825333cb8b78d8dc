package notify

import (
	"log"
	"sync"

	"github.com/yashika222/ReliefNet/internal/models"
)

// Queue decorates a Notifier with an outbound buffer and a single delivery
// worker, so request handling never blocks on SMTP. Delivery failures are
// logged by the worker and never reach the enqueueing caller; when the
// buffer is full the notification is dropped with a log line rather than
// stalling the request.
type Queue struct {
	next Notifier
	jobs chan func() error
	wg   sync.WaitGroup
}

// NewQueue wraps next with a buffered dispatch queue of the given size and
// starts the delivery worker.
func NewQueue(next Notifier, size int) *Queue {
	q := &Queue{
		next: next,
		jobs: make(chan func() error, size),
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// Close stops accepting notifications and waits for queued deliveries.
func (q *Queue) Close() {
	close(q.jobs)
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for job := range q.jobs {
		if err := job(); err != nil {
			log.Printf("notify: delivery failed: %v", err)
		}
	}
}

func (q *Queue) enqueue(job func() error) error {
	select {
	case q.jobs <- job:
	default:
		log.Printf("notify: queue full, dropping notification")
	}
	return nil
}

func (q *Queue) NotifyAssignment(volunteer *models.User, task *models.Task) error {
	return q.enqueue(func() error { return q.next.NotifyAssignment(volunteer, task) })
}

func (q *Queue) NotifyOverdueWarning(volunteer *models.User, tasks []models.Task) error {
	return q.enqueue(func() error { return q.next.NotifyOverdueWarning(volunteer, tasks) })
}

func (q *Queue) NotifyReportSubmitted(adminEmail string, volunteer *models.User, task *models.Task) error {
	return q.enqueue(func() error { return q.next.NotifyReportSubmitted(adminEmail, volunteer, task) })
}

func (q *Queue) NotifyApproval(volunteer *models.User) error {
	return q.enqueue(func() error { return q.next.NotifyApproval(volunteer) })
}

func (q *Queue) NotifyRejection(volunteer *models.User) error {
	return q.enqueue(func() error { return q.next.NotifyRejection(volunteer) })
}

func (q *Queue) NotifyBlocked(volunteer *models.User) error {
	return q.enqueue(func() error { return q.next.NotifyBlocked(volunteer) })
}

func (q *Queue) NotifyUnblocked(volunteer *models.User) error {
	return q.enqueue(func() error { return q.next.NotifyUnblocked(volunteer) })
}

func (q *Queue) NotifyPasswordReset(volunteer *models.User, tempPassword string) error {
	return q.enqueue(func() error { return q.next.NotifyPasswordReset(volunteer, tempPassword) })
}

func (q *Queue) SendCustom(to, subject, body string) error {
	return q.enqueue(func() error { return q.next.SendCustom(to, subject, body) })
}
