package repository

import (
	"time"

	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
)

// EORRepository defines the interface for EOR-side data operations
type EORRepository interface {
	CreateEORClient(profile *models.EORClientProfile) error
	GetEORClientByID(id uint) (*models.EORClientProfile, error)
	GetEORClientByUserID(userID uint) (*models.EORClientProfile, error)
	ListEORClients() ([]*models.EORClientProfile, error)

	CreateAgreement(agreement *models.EORAgreement) error
	GetAgreementByID(id uint) (*models.EORAgreement, error)
	ListAgreementsByClient(clientID uint) ([]*models.EORAgreement, error)
	UpdateAgreement(agreement *models.EORAgreement) error

	CreatePlacement(placement *models.EORPlacement) error
	GetPlacementByID(id uint) (*models.EORPlacement, error)
	GetActivePlacements(clientID uint) ([]*models.EORPlacement, error)
	UpdatePlacement(placement *models.EORPlacement) error

	CreatePayrollRun(tx *gorm.DB, run *models.PayrollRun) error
	GetPayrollRunByID(id uint) (*models.PayrollRun, error)
	GetPayrollRunForPeriod(clientID uint, periodStart, periodEnd time.Time) (*models.PayrollRun, error)
	UpdatePayrollRun(run *models.PayrollRun) error
}

// eorRepository implements EORRepository
type eorRepository struct {
	db *gorm.DB
}

// NewEORRepository creates a new instance of EORRepository
func NewEORRepository(db *gorm.DB) EORRepository {
	return &eorRepository{
		db: db,
	}
}

func (r *eorRepository) CreateEORClient(profile *models.EORClientProfile) error {
	return r.db.Create(profile).Error
}

func (r *eorRepository) GetEORClientByID(id uint) (*models.EORClientProfile, error) {
	var profile models.EORClientProfile

	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *eorRepository) GetEORClientByUserID(userID uint) (*models.EORClientProfile, error) {
	var profile models.EORClientProfile

	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *eorRepository) ListEORClients() ([]*models.EORClientProfile, error) {
	var profiles []*models.EORClientProfile

	err := r.db.Order("id").Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *eorRepository) CreateAgreement(agreement *models.EORAgreement) error {
	return r.db.Create(agreement).Error
}

func (r *eorRepository) GetAgreementByID(id uint) (*models.EORAgreement, error) {
	var agreement models.EORAgreement

	err := r.db.Where("id = ?", id).First(&agreement).Error
	if err != nil {
		return nil, err
	}

	return &agreement, nil
}

func (r *eorRepository) ListAgreementsByClient(clientID uint) ([]*models.EORAgreement, error) {
	var agreements []*models.EORAgreement

	err := r.db.Where("eor_client_id = ?", clientID).
		Order("id").
		Find(&agreements).Error
	if err != nil {
		return nil, err
	}

	return agreements, nil
}

func (r *eorRepository) UpdateAgreement(agreement *models.EORAgreement) error {
	return r.db.Save(agreement).Error
}

func (r *eorRepository) CreatePlacement(placement *models.EORPlacement) error {
	return r.db.Create(placement).Error
}

func (r *eorRepository) GetPlacementByID(id uint) (*models.EORPlacement, error) {
	var placement models.EORPlacement

	err := r.db.Where("id = ?", id).First(&placement).Error
	if err != nil {
		return nil, err
	}

	return &placement, nil
}

// GetActivePlacements retrieves all active placements for an EOR client
func (r *eorRepository) GetActivePlacements(clientID uint) ([]*models.EORPlacement, error) {
	var placements []*models.EORPlacement

	err := r.db.Where("eor_client_id = ? AND status = ?", clientID, models.PlacementActive).
		Order("id").
		Find(&placements).Error
	if err != nil {
		return nil, err
	}

	return placements, nil
}

func (r *eorRepository) UpdatePlacement(placement *models.EORPlacement) error {
	return r.db.Save(placement).Error
}

func (r *eorRepository) CreatePayrollRun(tx *gorm.DB, run *models.PayrollRun) error {
	return tx.Create(run).Error
}

func (r *eorRepository) GetPayrollRunByID(id uint) (*models.PayrollRun, error) {
	var run models.PayrollRun

	err := r.db.Where("id = ?", id).First(&run).Error
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func (r *eorRepository) GetPayrollRunForPeriod(clientID uint, periodStart, periodEnd time.Time) (*models.PayrollRun, error) {
	var run models.PayrollRun

	err := r.db.Where("eor_client_id = ? AND period_start_date = ? AND period_end_date = ?",
		clientID, periodStart, periodEnd).First(&run).Error
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func (r *eorRepository) UpdatePayrollRun(run *models.PayrollRun) error {
	return r.db.Save(run).Error
}
