package notify

import (
	"log"

	"github.com/yashika222/ReliefNet/internal/models"
)

// Notifier delivers volunteer-facing and admin-facing notifications. Every
// method may fail independently; callers treat failures as non-fatal and
// must not propagate them into the primary operation.
type Notifier interface {
	NotifyAssignment(volunteer *models.User, task *models.Task) error
	NotifyOverdueWarning(volunteer *models.User, tasks []models.Task) error
	NotifyReportSubmitted(adminEmail string, volunteer *models.User, task *models.Task) error
	NotifyApproval(volunteer *models.User) error
	NotifyRejection(volunteer *models.User) error
	NotifyBlocked(volunteer *models.User) error
	NotifyUnblocked(volunteer *models.User) error
	NotifyPasswordReset(volunteer *models.User, tempPassword string) error
	SendCustom(to, subject, body string) error
}

// SMSSender is an optional second delivery channel. Nobody implements it
// right now (Twilio integration is disabled); call sites nil-check it.
type SMSSender interface {
	SendOverdueWarning(volunteer *models.User, tasks []models.Task) error
	SendAssignment(volunteer *models.User, task *models.Task) error
}

// LogNotifier writes notifications to the process log instead of delivering
// them. Used in development and tests when SMTP is not configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifyAssignment(volunteer *models.User, task *models.Task) error {
	log.Printf("notify: assignment of task %d to %s", task.ID, volunteer.Email)
	return nil
}

func (n *LogNotifier) NotifyOverdueWarning(volunteer *models.User, tasks []models.Task) error {
	log.Printf("notify: overdue warning to %s for %d task(s)", volunteer.Email, len(tasks))
	return nil
}

func (n *LogNotifier) NotifyReportSubmitted(adminEmail string, volunteer *models.User, task *models.Task) error {
	log.Printf("notify: report on task %d from %s forwarded to %s", task.ID, volunteer.Email, adminEmail)
	return nil
}

func (n *LogNotifier) NotifyApproval(volunteer *models.User) error {
	log.Printf("notify: approval mail to %s", volunteer.Email)
	return nil
}

func (n *LogNotifier) NotifyRejection(volunteer *models.User) error {
	log.Printf("notify: rejection mail to %s", volunteer.Email)
	return nil
}

func (n *LogNotifier) NotifyBlocked(volunteer *models.User) error {
	log.Printf("notify: blocked mail to %s", volunteer.Email)
	return nil
}

func (n *LogNotifier) NotifyUnblocked(volunteer *models.User) error {
	log.Printf("notify: unblocked mail to %s", volunteer.Email)
	return nil
}

func (n *LogNotifier) NotifyPasswordReset(volunteer *models.User, tempPassword string) error {
	log.Printf("notify: password reset mail to %s", volunteer.Email)
	return nil
}

func (n *LogNotifier) SendCustom(to, subject, body string) error {
	log.Printf("notify: custom mail %q to %s", subject, to)
	return nil
}
