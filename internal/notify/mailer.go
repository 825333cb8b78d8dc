package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/yashika222/ReliefNet/internal/models"
	"gopkg.in/gomail.v2"
)

// Mailer delivers notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a Mailer from SMTP settings.
func NewMailer(host string, port int, user, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) NotifyAssignment(volunteer *models.User, task *models.Task) error {
	deadline := "no deadline"
	if task.Deadline != nil {
		deadline = task.Deadline.Format(time.RFC1123)
	}
	body := fmt.Sprintf(
		"Hello %s,\n\nYou have been assigned a new relief task.\n\nTitle: %s\nPriority: %s\nDeadline: %s\n\n%s\n",
		volunteer.Name, task.Title, task.Priority, deadline, task.Description,
	)
	return m.send(volunteer.Email, "New relief task assigned", body)
}

func (m *Mailer) NotifyOverdueWarning(volunteer *models.User, tasks []models.Task) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nThe following task(s) are past their deadline:\n\n", volunteer.Name)
	for _, t := range tasks {
		deadline := ""
		if t.Deadline != nil {
			deadline = t.Deadline.Format(time.RFC1123)
		}
		fmt.Fprintf(&b, "  - %s (deadline %s)\n", t.Title, deadline)
	}
	b.WriteString("\nPlease update their status or contact the coordination team.\n")

	subject := fmt.Sprintf("Overdue task warning (%d task(s))", len(tasks))
	return m.send(volunteer.Email, subject, b.String())
}

func (m *Mailer) NotifyReportSubmitted(adminEmail string, volunteer *models.User, task *models.Task) error {
	body := fmt.Sprintf(
		"Volunteer %s <%s> submitted a report for task %q (#%d).\n\n%s\n",
		volunteer.Name, volunteer.Email, task.Title, task.ID, task.ReportDescription,
	)
	return m.send(adminEmail, "Volunteer report submitted", body)
}

func (m *Mailer) NotifyApproval(volunteer *models.User) error {
	body := fmt.Sprintf("Hello %s,\n\nYour volunteer registration has been approved. You can now log in and receive relief tasks.\n", volunteer.Name)
	return m.send(volunteer.Email, "Volunteer registration approved", body)
}

func (m *Mailer) NotifyRejection(volunteer *models.User) error {
	body := fmt.Sprintf("Hello %s,\n\nYour volunteer registration was not approved at this time.\n", volunteer.Name)
	return m.send(volunteer.Email, "Volunteer registration update", body)
}

func (m *Mailer) NotifyBlocked(volunteer *models.User) error {
	body := fmt.Sprintf("Hello %s,\n\nYour volunteer account has been suspended. Contact the coordination team for details.\n", volunteer.Name)
	return m.send(volunteer.Email, "Volunteer account suspended", body)
}

func (m *Mailer) NotifyUnblocked(volunteer *models.User) error {
	body := fmt.Sprintf("Hello %s,\n\nYour volunteer account has been reinstated.\n", volunteer.Name)
	return m.send(volunteer.Email, "Volunteer account reinstated", body)
}

func (m *Mailer) NotifyPasswordReset(volunteer *models.User, tempPassword string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nA temporary password has been generated for your account: %s\nYou will be asked to change it on your next login.\n",
		volunteer.Name, tempPassword,
	)
	return m.send(volunteer.Email, "Temporary password", body)
}

func (m *Mailer) SendCustom(to, subject, body string) error {
	return m.send(to, subject, body)
}
