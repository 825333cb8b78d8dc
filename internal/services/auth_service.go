package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yashika222/ReliefNet/internal/constants"
	"github.com/yashika222/ReliefNet/internal/models"
	"github.com/yashika222/ReliefNet/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrAccountBlocked       = errors.New("account is blocked")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterVolunteerInput represents a volunteer registration.
type RegisterVolunteerInput struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	City         string
	State        string
	Availability string
	Skills       string
	IDProofName  string
	IDProofURL   string
}

// RegisterVolunteer creates a volunteer account pending admin approval.
func (s *AuthService) RegisterVolunteer(input RegisterVolunteerInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		PasswordHash:   string(hashedPassword),
		Role:           models.RoleVolunteer,
		Approved:       false,
		ApprovalStatus: models.ApprovalPending,
		Phone:          input.Phone,
		City:           input.City,
		State:          input.State,
		Availability:   input.Availability,
		Skills:         input.Skills,
		IDProofName:    input.IDProofName,
		IDProofURL:     input.IDProofURL,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. Blocked
// accounts cannot log in.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Blocked {
		return nil, ErrAccountBlocked
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
