package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func newVolunteerService(env serviceTestEnv) *VolunteerService {
	return NewVolunteerService(env.userRepo, env.taskRepo, env.notifier)
}

func TestApprove_ActivatesVolunteer(t *testing.T) {
	env := setupServiceTest(t)
	svc := newVolunteerService(env)

	volunteer := env.createVolunteer(t, "pending@example.com", false, false)

	approved, err := svc.Approve(volunteer.ID, volunteer.ID+1)
	require.NoError(t, err)
	require.True(t, approved.Approved)
	require.Equal(t, models.ApprovalApproved, approved.ApprovalStatus)
	require.False(t, approved.Blocked)
	require.Equal(t, 1, env.notifier.approvals)
}

func TestApprove_SelfActionRejected(t *testing.T) {
	env := setupServiceTest(t)
	svc := newVolunteerService(env)

	volunteer := env.createVolunteer(t, "v@example.com", false, false)

	_, err := svc.Approve(volunteer.ID, volunteer.ID)
	require.ErrorIs(t, err, ErrSelfAction)
}

func TestReject_MarksVolunteerRejected(t *testing.T) {
	env := setupServiceTest(t)
	svc := newVolunteerService(env)

	volunteer := env.createVolunteer(t, "v@example.com", false, false)

	rejected, err := svc.Reject(volunteer.ID, volunteer.ID+1)
	require.NoError(t, err)
	require.False(t, rejected.Approved)
	require.Equal(t, models.ApprovalRejected, rejected.ApprovalStatus)
	require.Equal(t, 1, env.notifier.rejections)
}

func TestSetBlocked_Toggles(t *testing.T) {
	env := setupServiceTest(t)
	svc := newVolunteerService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)

	blocked, err := svc.SetBlocked(volunteer.ID, true)
	require.NoError(t, err)
	require.True(t, blocked.Blocked)
	require.Equal(t, 1, env.notifier.blocks)

	unblocked, err := svc.SetBlocked(volunteer.ID, false)
	require.NoError(t, err)
	require.False(t, unblocked.Blocked)
	require.Equal(t, 1, env.notifier.unblocks)
}

func TestDelete_CascadesTasks(t *testing.T) {
	env := setupServiceTest(t)
	svc := newVolunteerService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)
	task := env.createTask(t, volunteer.ID, models.TaskStatusAssigned, timePtr(time.Now().Add(time.Hour)), false)
	require.NoError(t, env.db.Create(&models.TaskHistory{TaskID: task.ID, Status: task.Status, At: time.Now()}).Error)

	require.NoError(t, svc.Delete(volunteer.ID, volunteer.ID+1))

	var userCount, taskCount, historyCount int64
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", volunteer.ID).Count(&userCount).Error)
	require.NoError(t, env.db.Model(&models.Task{}).Where("volunteer_id = ?", volunteer.ID).Count(&taskCount).Error)
	require.NoError(t, env.db.Model(&models.TaskHistory{}).Where("task_id = ?", task.ID).Count(&historyCount).Error)
	require.Zero(t, userCount)
	require.Zero(t, taskCount)
	require.Zero(t, historyCount)
}

func TestResetPassword_StoresUsableTempPassword(t *testing.T) {
	env := setupServiceTest(t)
	svc := newVolunteerService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)

	require.NoError(t, svc.ResetPassword(volunteer.ID))
	require.Len(t, env.notifier.resets, 1)
	tempPassword := env.notifier.resets[0]
	require.NotEmpty(t, tempPassword)

	var stored models.User
	require.NoError(t, env.db.First(&stored, volunteer.ID).Error)
	require.True(t, stored.ForcePasswordReset)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(tempPassword)))
}

func TestEmailVolunteer_RequiresSubjectAndBody(t *testing.T) {
	env := setupServiceTest(t)
	svc := newVolunteerService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)

	err := svc.EmailVolunteer(volunteer.ID, "  ", "hello")
	require.ErrorIs(t, err, ErrSubjectRequired)

	require.NoError(t, svc.EmailVolunteer(volunteer.ID, "Supply run", "Please confirm availability"))
	require.Equal(t, []string{"v@example.com"}, env.notifier.custom)
}

func TestListVolunteers_FiltersByApprovalState(t *testing.T) {
	env := setupServiceTest(t)
	svc := newVolunteerService(env)

	env.createVolunteer(t, "approved@example.com", true, false)
	env.createVolunteer(t, "pending@example.com", false, false)

	status := models.ApprovalPending
	volunteers, total, err := svc.ListVolunteers(repository.VolunteerFilter{Status: &status})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, volunteers, 1)
	require.Equal(t, "pending@example.com", volunteers[0].Email)
}
