package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yashika222/ReliefNet/internal/constants"
	"github.com/yashika222/ReliefNet/internal/dto"
	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/repository"
	"github.com/yashika222/ReliefNet/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func registerBody() map[string]string {
	return map[string]string{
		"name":         "Asha Rao",
		"email":        "asha@example.com",
		"password":     "supersecret",
		"phone":        "555-0100",
		"city":         "Chennai",
		"state":        "Tamil Nadu",
		"availability": "weekends",
	}
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/register", env.handler.Register)

	body, err := json.Marshal(registerBody())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.User
	require.NoError(t, env.db.Where("email = ?", "asha@example.com").First(&stored).Error)
	require.False(t, stored.Approved)
	require.Equal(t, models.ApprovalPending, stored.ApprovalStatus)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.RegisterVolunteer(services.RegisterVolunteerInput{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "asha@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "asha@example.com", response.Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.RegisterVolunteer(services.RegisterVolunteerInput{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/login", env.handler.Login)

	body, err := json.Marshal(map[string]string{
		"email":    "asha@example.com",
		"password": "wrong-password",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.RegisterVolunteer(services.RegisterVolunteerInput{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.Email)
}
