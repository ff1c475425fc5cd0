package repository

import (
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
)

// EmployeeRepository defines the interface for employee data operations
type EmployeeRepository interface {
	CreateEmployee(profile *models.EmployeeProfile) error
	GetEmployeeByID(id uint) (*models.EmployeeProfile, error)
	GetEmployeeByUserID(userID uint) (*models.EmployeeProfile, error)

	CreateWorkSchedule(schedule *models.WorkSchedule) error
	ListWorkSchedulesByEmployee(employeeID uint) ([]*models.WorkSchedule, error)
	UpdateWorkSchedule(schedule *models.WorkSchedule) error

	CreatePayslip(tx *gorm.DB, payslip *models.Payslip) error
	GetPayslipByID(id uint) (*models.Payslip, error)
	ListPayslipsByEmployee(employeeID uint) ([]*models.Payslip, error)
	UpdatePayslipFilePath(id uint, path string) error
}

// employeeRepository implements EmployeeRepository
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{
		db: db,
	}
}

func (r *employeeRepository) CreateEmployee(profile *models.EmployeeProfile) error {
	return r.db.Create(profile).Error
}

func (r *employeeRepository) GetEmployeeByID(id uint) (*models.EmployeeProfile, error) {
	var profile models.EmployeeProfile

	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *employeeRepository) GetEmployeeByUserID(userID uint) (*models.EmployeeProfile, error) {
	var profile models.EmployeeProfile

	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *employeeRepository) CreateWorkSchedule(schedule *models.WorkSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *employeeRepository) ListWorkSchedulesByEmployee(employeeID uint) ([]*models.WorkSchedule, error) {
	var schedules []*models.WorkSchedule

	err := r.db.Where("employee_id = ?", employeeID).
		Order("date, start_time").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *employeeRepository) UpdateWorkSchedule(schedule *models.WorkSchedule) error {
	return r.db.Save(schedule).Error
}

func (r *employeeRepository) CreatePayslip(tx *gorm.DB, payslip *models.Payslip) error {
	return tx.Create(payslip).Error
}

func (r *employeeRepository) GetPayslipByID(id uint) (*models.Payslip, error) {
	var payslip models.Payslip

	err := r.db.Where("id = ?", id).First(&payslip).Error
	if err != nil {
		return nil, err
	}

	return &payslip, nil
}

func (r *employeeRepository) ListPayslipsByEmployee(employeeID uint) ([]*models.Payslip, error) {
	var payslips []*models.Payslip

	err := r.db.Where("employee_id = ?", employeeID).
		Order("period_start_date DESC").
		Find(&payslips).Error
	if err != nil {
		return nil, err
	}

	return payslips, nil
}

func (r *employeeRepository) UpdatePayslipFilePath(id uint, path string) error {
	return r.db.Model(&models.Payslip{}).
		Where("id = ?", id).
		Update("file_path", path).Error
}
