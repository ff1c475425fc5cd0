package service

import (
	"errors"
	"fmt"
	"time"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/repository"
	"hr-portal-svc/pkg/logger"
)

var (
	// ErrAgreementNotActive is returned when placing an employee under an
	// agreement that is not in force
	ErrAgreementNotActive = errors.New("EOR agreement is not active")

	// ErrPlacementNotActive is returned when terminating a placement that
	// already ended
	ErrPlacementNotActive = errors.New("placement is not active")
)

// EORService defines the interface for EOR agreement and placement
// operations
type EORService interface {
	CreateAgreement(agreement *models.EORAgreement) (*models.EORAgreement, error)
	ActivateAgreement(id uint) (*models.EORAgreement, error)
	ListAgreements(clientID uint) ([]*models.EORAgreement, error)

	CreatePlacement(placement *models.EORPlacement) (*models.EORPlacement, error)
	TerminatePlacement(id uint, endDate time.Time) (*models.EORPlacement, error)
	ListActivePlacements(clientID uint) ([]*models.EORPlacement, error)
}

// eorService implements EORService
type eorService struct {
	eorRepo      repository.EORRepository
	employeeRepo repository.EmployeeRepository
	logger       *logger.Logger
}

// NewEORService creates a new instance of EORService
func NewEORService(
	eorRepo repository.EORRepository,
	employeeRepo repository.EmployeeRepository,
	logger *logger.Logger,
) EORService {
	return &eorService{
		eorRepo:      eorRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// CreateAgreement records a new agreement in DRAFT state
func (s *eorService) CreateAgreement(agreement *models.EORAgreement) (*models.EORAgreement, error) {
	if _, err := s.eorRepo.GetEORClientByID(agreement.EORClientID); err != nil {
		return nil, fmt.Errorf("EOR client %d not found: %w", agreement.EORClientID, err)
	}

	agreement.Status = models.AgreementDraft
	if err := s.eorRepo.CreateAgreement(agreement); err != nil {
		return nil, fmt.Errorf("failed to create agreement: %w", err)
	}

	return agreement, nil
}

// ActivateAgreement puts a draft or signed agreement in force
func (s *eorService) ActivateAgreement(id uint) (*models.EORAgreement, error) {
	agreement, err := s.eorRepo.GetAgreementByID(id)
	if err != nil {
		return nil, err
	}
	if agreement.Status == models.AgreementActive || agreement.Status == models.AgreementExpired {
		return nil, ErrInvalidStatusChange
	}

	agreement.Status = models.AgreementActive
	if err := s.eorRepo.UpdateAgreement(agreement); err != nil {
		return nil, fmt.Errorf("failed to activate agreement: %w", err)
	}

	return agreement, nil
}

// ListAgreements retrieves all agreements for an EOR client
func (s *eorService) ListAgreements(clientID uint) ([]*models.EORAgreement, error) {
	return s.eorRepo.ListAgreementsByClient(clientID)
}

// CreatePlacement places an employee with an EOR client under an active
// agreement
func (s *eorService) CreatePlacement(placement *models.EORPlacement) (*models.EORPlacement, error) {
	agreement, err := s.eorRepo.GetAgreementByID(placement.EORAgreementID)
	if err != nil {
		return nil, fmt.Errorf("agreement %d not found: %w", placement.EORAgreementID, err)
	}
	if agreement.Status != models.AgreementActive {
		return nil, ErrAgreementNotActive
	}
	if agreement.EORClientID != placement.EORClientID {
		return nil, fmt.Errorf("agreement %d does not belong to EOR client %d", agreement.ID, placement.EORClientID)
	}
	if _, err := s.employeeRepo.GetEmployeeByID(placement.EmployeeID); err != nil {
		return nil, fmt.Errorf("employee %d not found: %w", placement.EmployeeID, err)
	}

	placement.Status = models.PlacementActive
	if err := s.eorRepo.CreatePlacement(placement); err != nil {
		return nil, fmt.Errorf("failed to create placement: %w", err)
	}

	return placement, nil
}

// TerminatePlacement ends an active placement on the given date
func (s *eorService) TerminatePlacement(id uint, endDate time.Time) (*models.EORPlacement, error) {
	placement, err := s.eorRepo.GetPlacementByID(id)
	if err != nil {
		return nil, err
	}
	if placement.Status != models.PlacementActive {
		return nil, ErrPlacementNotActive
	}

	placement.Status = models.PlacementTerminated
	placement.EndDate = &endDate
	if err := s.eorRepo.UpdatePlacement(placement); err != nil {
		return nil, fmt.Errorf("failed to terminate placement: %w", err)
	}

	return placement, nil
}

// ListActivePlacements retrieves the active placements for an EOR client
func (s *eorService) ListActivePlacements(clientID uint) ([]*models.EORPlacement, error) {
	return s.eorRepo.GetActivePlacements(clientID)
}
