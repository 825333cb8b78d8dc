package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yashika222/ReliefNet/internal/models"
)

const testAdminEmail = "ops@reliefnet.example"

func newTaskService(env serviceTestEnv) *TaskService {
	return NewTaskService(env.taskRepo, env.userRepo, env.notifier, nil, testAdminEmail)
}

func TestAssignTask_RequiresActiveVolunteer(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	pending := env.createVolunteer(t, "pending@example.com", false, false)
	blocked := env.createVolunteer(t, "blocked@example.com", true, true)

	_, err := svc.AssignTask(AssignTaskInput{VolunteerID: pending.ID, Title: "Sort donations"})
	require.ErrorIs(t, err, ErrVolunteerNotFound)

	_, err = svc.AssignTask(AssignTaskInput{VolunteerID: blocked.ID, Title: "Sort donations"})
	require.ErrorIs(t, err, ErrVolunteerNotFound)

	_, err = svc.AssignTask(AssignTaskInput{VolunteerID: 9999, Title: "Sort donations"})
	require.ErrorIs(t, err, ErrVolunteerNotFound)
}

func TestAssignTask_CreatesTaskAndRefreshesCounters(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	volunteer := env.createVolunteer(t, "active@example.com", true, false)

	task, err := svc.AssignTask(AssignTaskInput{
		VolunteerID: volunteer.ID,
		Title:       "  Deliver medical kits  ",
		Priority:    models.TaskPriority("urgent-ish"),
	})
	require.NoError(t, err)
	require.Equal(t, "Deliver medical kits", task.Title)
	require.Equal(t, models.TaskStatusAssigned, task.Status)
	// Unknown priorities are coerced rather than rejected.
	require.Equal(t, models.TaskPriorityMedium, task.Priority)

	var stored models.User
	require.NoError(t, env.db.First(&stored, volunteer.ID).Error)
	require.EqualValues(t, 1, stored.TotalTasksAssigned)
	require.EqualValues(t, 0, stored.TotalTasksCompleted)
	require.NotNil(t, stored.LastAssignmentAt)

	require.Equal(t, []uint64{task.ID}, env.notifier.assignments)
}

func TestAssignTask_RequiresTitle(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	volunteer := env.createVolunteer(t, "active@example.com", true, false)

	_, err := svc.AssignTask(AssignTaskInput{VolunteerID: volunteer.ID, Title: "   "})
	require.ErrorIs(t, err, ErrTitleRequired)
}

func TestTransitionStatus_AcceptedAtSetOnce(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)
	task := env.createTask(t, volunteer.ID, models.TaskStatusAssigned, nil, false)

	first, err := svc.TransitionStatus(TransitionInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Status:      models.TaskStatusInProgress,
	})
	require.NoError(t, err)
	require.NotNil(t, first.AcceptedAt)
	acceptedAt := *first.AcceptedAt

	second, err := svc.TransitionStatus(TransitionInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Status:      models.TaskStatusInProgress,
	})
	require.NoError(t, err)
	require.NotNil(t, second.AcceptedAt)
	require.True(t, second.AcceptedAt.Equal(acceptedAt), "acceptance timestamp must survive repeat transitions")
}

func TestTransitionStatus_CompletedIsTerminal(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)
	task := env.createTask(t, volunteer.ID, models.TaskStatusAssigned, nil, false)

	_, err := svc.TransitionStatus(TransitionInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Status:      models.TaskStatusCompleted,
	})
	require.NoError(t, err)

	_, err = svc.TransitionStatus(TransitionInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Status:      models.TaskStatusInProgress,
	})
	require.ErrorIs(t, err, ErrTaskCompleted)
}

func TestTransitionStatus_CompletionRefreshesTimestampAndCounters(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)
	task := env.createTask(t, volunteer.ID, models.TaskStatusInProgress, nil, false)

	first, err := svc.TransitionStatus(TransitionInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Status:      models.TaskStatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)
	firstCompletion := *first.CompletedAt

	second, err := svc.TransitionStatus(TransitionInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Status:      models.TaskStatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, second.CompletedAt)
	require.False(t, second.CompletedAt.Before(firstCompletion))

	var stored models.User
	require.NoError(t, env.db.First(&stored, volunteer.ID).Error)
	require.EqualValues(t, 1, stored.TotalTasksCompleted)
}

func TestTransitionStatus_AppendsHistoryEveryCall(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)
	task := env.createTask(t, volunteer.ID, models.TaskStatusAssigned, nil, false)

	transitions := []models.TaskStatus{
		models.TaskStatusInProgress,
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
	}
	for _, status := range transitions {
		_, err := svc.TransitionStatus(TransitionInput{
			TaskID:      task.ID,
			VolunteerID: volunteer.ID,
			Status:      status,
			Note:        "field update",
		})
		require.NoError(t, err)
	}

	var entries []models.TaskHistory
	require.NoError(t, env.db.Where("task_id = ?", task.ID).Order("id ASC").Find(&entries).Error)
	require.Len(t, entries, len(transitions))
	for i, entry := range entries {
		require.Equal(t, transitions[i], entry.Status)
		require.Equal(t, "field update", entry.Note)
	}
}

func TestTransitionStatus_OtherVolunteersTaskLooksMissing(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	owner := env.createVolunteer(t, "owner@example.com", true, false)
	intruder := env.createVolunteer(t, "intruder@example.com", true, false)
	task := env.createTask(t, owner.ID, models.TaskStatusAssigned, nil, false)

	_, err := svc.TransitionStatus(TransitionInput{
		TaskID:      task.ID,
		VolunteerID: intruder.ID,
		Status:      models.TaskStatusInProgress,
	})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTransitionStatus_RejectsUnknownStatus(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)
	task := env.createTask(t, volunteer.ID, models.TaskStatusAssigned, nil, false)

	_, err := svc.TransitionStatus(TransitionInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Status:      models.TaskStatus("cancelled"),
	})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSubmitReport_Validation(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)
	task := env.createTask(t, volunteer.ID, models.TaskStatusInProgress, nil, false)

	_, err := svc.SubmitReport(SubmitReportInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Description: "  short  ",
	})
	require.ErrorIs(t, err, ErrReportTooShort)

	tooMany := make([]AttachmentInput, 5)
	for i := range tooMany {
		tooMany[i] = AttachmentInput{ContentType: "image/png", Size: 100}
	}
	_, err = svc.SubmitReport(SubmitReportInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Description: "Delivered all supplies to the shelter",
		Attachments: tooMany,
	})
	require.ErrorIs(t, err, ErrTooManyAttachments)

	_, err = svc.SubmitReport(SubmitReportInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Description: "Delivered all supplies to the shelter",
		Attachments: []AttachmentInput{{ContentType: "video/mp4", Size: 100}},
	})
	require.ErrorIs(t, err, ErrAttachmentType)

	_, err = svc.SubmitReport(SubmitReportInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Description: "Delivered all supplies to the shelter",
		Attachments: []AttachmentInput{{ContentType: "image/png", Size: 9 << 20}},
	})
	require.ErrorIs(t, err, ErrAttachmentTooLarge)
}

func TestSubmitReport_ResubmissionReplacesAttachments(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	volunteer := env.createVolunteer(t, "v@example.com", true, false)
	task := env.createTask(t, volunteer.ID, models.TaskStatusInProgress, nil, false)

	_, err := svc.SubmitReport(SubmitReportInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Description: "First report with photos of the distribution",
		Attachments: []AttachmentInput{
			{Filename: "a.png", ContentType: "image/png", Size: 100},
			{Filename: "b.jpg", ContentType: "image/jpeg", Size: 200},
		},
	})
	require.NoError(t, err)

	updated, err := svc.SubmitReport(SubmitReportInput{
		TaskID:      task.ID,
		VolunteerID: volunteer.ID,
		Description: "Corrected report, one photo was wrong",
		Attachments: []AttachmentInput{
			{Filename: "c.pdf", ContentType: "application/pdf", Size: 300},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Corrected report, one photo was wrong", updated.ReportDescription)

	var attachments []models.ReportAttachment
	require.NoError(t, env.db.Where("task_id = ?", task.ID).Find(&attachments).Error)
	require.Len(t, attachments, 1)
	require.Equal(t, "c.pdf", attachments[0].Filename)

	// Each submission leaves its own history entry even though the stored
	// report is overwritten.
	var entries []models.TaskHistory
	require.NoError(t, env.db.Where("task_id = ?", task.ID).Find(&entries).Error)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.True(t, strings.Contains(entry.Note, "Report submitted"))
	}

	require.Equal(t, []string{testAdminEmail, testAdminEmail}, env.notifier.reports)
}

func TestGetOwnedTask_ScopedToOwner(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTaskService(env)

	owner := env.createVolunteer(t, "owner@example.com", true, false)
	other := env.createVolunteer(t, "other@example.com", true, false)
	task := env.createTask(t, owner.ID, models.TaskStatusAssigned, timePtr(time.Now().Add(24*time.Hour)), false)

	found, err := svc.GetOwnedTask(task.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, found.ID)

	_, err = svc.GetOwnedTask(task.ID, other.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}
