package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/repository"
	"hr-portal-svc/pkg/logger"
)

var (
	// ErrInvalidCredentials is returned on a failed login attempt
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserBlocked is returned when a blocked user tries to log in
	ErrUserBlocked = errors.New("user account is blocked")
)

// AccountService defines the interface for user account operations
type AccountService interface {
	Register(username, email, password string, role models.UserRole) (*models.User, error)
	Login(email, password string) (string, *models.User, error)
	GetUser(id uint) (*models.User, error)
}

// accountService implements AccountService
type accountService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	logger    *logger.Logger
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(userRepo repository.UserRepository, jwtSecret string, logger *logger.Logger) AccountService {
	return &accountService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register creates a new user with a bcrypt-hashed password
func (s *accountService) Register(username, email, password string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		DocumentID: uuid.New().String(),
		Username:   username,
		Email:      email,
		Password:   string(hash),
		Role:       role,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a signed JWT valid for 24 hours
func (s *accountService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Blocked != nil && *user.Blocked {
		return "", nil, ErrUserBlocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, user, nil
}

// GetUser retrieves a user by ID
func (s *accountService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.GetUserByID(id)
}
