package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db       *gorm.DB
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	notifier *recordingNotifier
}

func setupServiceTest(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Disaster{},
		&models.ReliefRequest{},
		&models.Task{},
		&models.TaskHistory{},
		&models.ReportAttachment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:       db,
		taskRepo: repository.NewTaskRepository(db),
		userRepo: repository.NewUserRepository(db),
		notifier: &recordingNotifier{},
	}
}

func (e serviceTestEnv) createVolunteer(t *testing.T, email string, approved, blocked bool) *models.User {
	t.Helper()

	status := models.ApprovalPending
	if approved {
		status = models.ApprovalApproved
	}
	user := &models.User{
		Name:           "Test Volunteer",
		Email:          email,
		PasswordHash:   "not-a-real-hash",
		Role:           models.RoleVolunteer,
		Approved:       approved,
		ApprovalStatus: status,
		Blocked:        blocked,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e serviceTestEnv) createTask(t *testing.T, volunteerID uint64, status models.TaskStatus, deadline *time.Time, warned bool) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       "Distribute water supplies",
		Priority:    models.TaskPriorityMedium,
		Status:      status,
		VolunteerID: volunteerID,
		Deadline:    deadline,
		Warned:      warned,
	}
	require.NoError(t, e.db.Create(task).Error)
	return task
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// recordedWarning captures one grouped overdue notification.
type recordedWarning struct {
	email string
	tasks int
}

// recordingNotifier captures notifications instead of delivering them.
type recordingNotifier struct {
	assignments []uint64
	warnings    []recordedWarning
	reports     []string
	approvals   int
	rejections  int
	blocks      int
	unblocks    int
	resets      []string
	custom      []string
}

func (n *recordingNotifier) NotifyAssignment(volunteer *models.User, task *models.Task) error {
	n.assignments = append(n.assignments, task.ID)
	return nil
}

func (n *recordingNotifier) NotifyOverdueWarning(volunteer *models.User, tasks []models.Task) error {
	n.warnings = append(n.warnings, recordedWarning{email: volunteer.Email, tasks: len(tasks)})
	return nil
}

func (n *recordingNotifier) NotifyReportSubmitted(adminEmail string, volunteer *models.User, task *models.Task) error {
	n.reports = append(n.reports, adminEmail)
	return nil
}

func (n *recordingNotifier) NotifyApproval(volunteer *models.User) error {
	n.approvals++
	return nil
}

func (n *recordingNotifier) NotifyRejection(volunteer *models.User) error {
	n.rejections++
	return nil
}

func (n *recordingNotifier) NotifyBlocked(volunteer *models.User) error {
	n.blocks++
	return nil
}

func (n *recordingNotifier) NotifyUnblocked(volunteer *models.User) error {
	n.unblocks++
	return nil
}

func (n *recordingNotifier) NotifyPasswordReset(volunteer *models.User, tempPassword string) error {
	n.resets = append(n.resets, tempPassword)
	return nil
}

func (n *recordingNotifier) SendCustom(to, subject, body string) error {
	n.custom = append(n.custom, to)
	return nil
}
