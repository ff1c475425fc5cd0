package service

import (
	"fmt"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/repository"
	"hr-portal-svc/pkg/logger"
)

// ProfileService defines the interface for client and employee profile
// operations
type ProfileService interface {
	CreateEmployerProfile(profile *models.EmployerProfile) error
	GetEmployerProfile(id uint) (*models.EmployerProfile, error)
	ListEmployers() ([]*models.EmployerProfile, error)

	CreateEmployeeProfile(profile *models.EmployeeProfile) error
	GetEmployeeProfile(id uint) (*models.EmployeeProfile, error)

	CreateEORClientProfile(profile *models.EORClientProfile) error
	GetEORClientProfile(id uint) (*models.EORClientProfile, error)
	ListEORClients() ([]*models.EORClientProfile, error)
}

// profileService implements ProfileService
type profileService struct {
	employerRepo repository.EmployerRepository
	employeeRepo repository.EmployeeRepository
	eorRepo      repository.EORRepository
	userRepo     repository.UserRepository
	logger       *logger.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(
	employerRepo repository.EmployerRepository,
	employeeRepo repository.EmployeeRepository,
	eorRepo repository.EORRepository,
	userRepo repository.UserRepository,
	logger *logger.Logger,
) ProfileService {
	return &profileService{
		employerRepo: employerRepo,
		employeeRepo: employeeRepo,
		eorRepo:      eorRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// requireUser checks the referenced user exists and has the expected role
func (s *profileService) requireUser(userID uint, role models.UserRole) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("user %d not found: %w", userID, err)
	}
	if user.Role != role {
		return fmt.Errorf("user %d has role %s, expected %s", userID, user.Role, role)
	}
	return nil
}

func (s *profileService) CreateEmployerProfile(profile *models.EmployerProfile) error {
	if err := s.requireUser(profile.UserID, models.RoleEmployer); err != nil {
		return err
	}
	if profile.VerificationStatus == "" {
		profile.VerificationStatus = models.VerificationPending
	}
	return s.employerRepo.CreateEmployer(profile)
}

func (s *profileService) GetEmployerProfile(id uint) (*models.EmployerProfile, error) {
	return s.employerRepo.GetEmployerByID(id)
}

func (s *profileService) ListEmployers() ([]*models.EmployerProfile, error) {
	return s.employerRepo.ListEmployers()
}

func (s *profileService) CreateEmployeeProfile(profile *models.EmployeeProfile) error {
	if err := s.requireUser(profile.UserID, models.RoleEmployee); err != nil {
		return err
	}
	if profile.Status == "" {
		profile.Status = models.EmployeeAvailable
	}
	return s.employeeRepo.CreateEmployee(profile)
}

func (s *profileService) GetEmployeeProfile(id uint) (*models.EmployeeProfile, error) {
	return s.employeeRepo.GetEmployeeByID(id)
}

func (s *profileService) CreateEORClientProfile(profile *models.EORClientProfile) error {
	if err := s.requireUser(profile.UserID, models.RoleEORClient); err != nil {
		return err
	}
	return s.eorRepo.CreateEORClient(profile)
}

func (s *profileService) GetEORClientProfile(id uint) (*models.EORClientProfile, error) {
	return s.eorRepo.GetEORClientByID(id)
}

func (s *profileService) ListEORClients() ([]*models.EORClientProfile, error) {
	return s.eorRepo.ListEORClients()
}
