package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yashika222/ReliefNet/internal/models"
)

func newAuthService(env serviceTestEnv) *AuthService {
	return NewAuthService(env.userRepo)
}

func TestRegisterVolunteer_StartsPending(t *testing.T) {
	env := setupServiceTest(t)
	svc := newAuthService(env)

	user, err := svc.RegisterVolunteer(RegisterVolunteerInput{
		Name:     "Asha",
		Email:    "Asha@Example.COM",
		Password: "secret123",
		Phone:    "555-0100",
	})
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", user.Email)
	require.Equal(t, models.RoleVolunteer, user.Role)
	require.False(t, user.Approved)
	require.Equal(t, models.ApprovalPending, user.ApprovalStatus)
}

func TestRegisterVolunteer_DuplicateEmail(t *testing.T) {
	env := setupServiceTest(t)
	svc := newAuthService(env)

	input := RegisterVolunteerInput{Name: "Asha", Email: "asha@example.com", Password: "secret123"}
	_, err := svc.RegisterVolunteer(input)
	require.NoError(t, err)

	_, err = svc.RegisterVolunteer(input)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterVolunteer_ShortPassword(t *testing.T) {
	env := setupServiceTest(t)
	svc := newAuthService(env)

	_, err := svc.RegisterVolunteer(RegisterVolunteerInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLogin_VerifiesCredentials(t *testing.T) {
	env := setupServiceTest(t)
	svc := newAuthService(env)

	_, err := svc.RegisterVolunteer(RegisterVolunteerInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, err := svc.Login(LoginInput{Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", user.Email)

	_, err = svc.Login(LoginInput{Email: "asha@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginInput{Email: "nobody@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BlockedAccount(t *testing.T) {
	env := setupServiceTest(t)
	svc := newAuthService(env)

	user, err := svc.RegisterVolunteer(RegisterVolunteerInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user.Blocked = true
	require.NoError(t, env.db.Save(user).Error)

	_, err = svc.Login(LoginInput{Email: "asha@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrAccountBlocked)
}
