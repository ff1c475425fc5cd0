package repository

import (
	"time"

	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
)

// TimesheetRepository defines the interface for timesheet data operations
type TimesheetRepository interface {
	CreateTimesheet(timesheet *models.Timesheet) error
	GetTimesheetByID(id uint) (*models.Timesheet, error)
	ListTimesheetsByEmployee(employeeID uint, status *models.TimesheetStatus, page, limit int) ([]*models.Timesheet, int64, error)
	UpdateTimesheet(timesheet *models.Timesheet) error
	GetBillableTimesheets(employerID uint, periodStart, periodEnd time.Time) ([]*models.Timesheet, error)
	MarkInvoiced(tx *gorm.DB, ids []uint) error
	GetApprovedTimesheets(employeeID uint, periodStart, periodEnd time.Time) ([]*models.Timesheet, error)
}

// timesheetRepository implements TimesheetRepository
type timesheetRepository struct {
	db *gorm.DB
}

// NewTimesheetRepository creates a new instance of TimesheetRepository
func NewTimesheetRepository(db *gorm.DB) TimesheetRepository {
	return &timesheetRepository{
		db: db,
	}
}

// CreateTimesheet inserts a new timesheet
func (r *timesheetRepository) CreateTimesheet(timesheet *models.Timesheet) error {
	return r.db.Create(timesheet).Error
}

// GetTimesheetByID retrieves a timesheet by ID
func (r *timesheetRepository) GetTimesheetByID(id uint) (*models.Timesheet, error) {
	var timesheet models.Timesheet

	err := r.db.Where("id = ?", id).First(&timesheet).Error
	if err != nil {
		return nil, err
	}

	return &timesheet, nil
}

// ListTimesheetsByEmployee retrieves timesheets for an employee with an
// optional status filter
func (r *timesheetRepository) ListTimesheetsByEmployee(employeeID uint, status *models.TimesheetStatus, page, limit int) ([]*models.Timesheet, int64, error) {
	var timesheets []*models.Timesheet

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	query := r.db.Model(&models.Timesheet{}).Where("employee_id = ?", employeeID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("date DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&timesheets).Error
	if err != nil {
		return nil, 0, err
	}

	return timesheets, total, nil
}

// UpdateTimesheet saves changes to a timesheet
func (r *timesheetRepository) UpdateTimesheet(timesheet *models.Timesheet) error {
	return r.db.Save(timesheet).Error
}

// GetBillableTimesheets retrieves approved, not yet invoiced timesheets for
// an employer's assignments within the inclusive billing period
func (r *timesheetRepository) GetBillableTimesheets(employerID uint, periodStart, periodEnd time.Time) ([]*models.Timesheet, error) {
	var timesheets []*models.Timesheet

	err := r.db.
		Joins("JOIN assignments a ON timesheets.assignment_id = a.id").
		Where("a.employer_id = ?", employerID).
		Where("timesheets.status = ?", models.TimesheetApproved).
		Where("timesheets.invoiced = ?", false).
		Where("timesheets.date BETWEEN ? AND ?", periodStart, periodEnd).
		Order("timesheets.employee_id, timesheets.date").
		Find(&timesheets).Error
	if err != nil {
		return nil, err
	}

	return timesheets, nil
}

// MarkInvoiced flags the given timesheets as consumed by billing. Runs in
// the caller's transaction so it commits or rolls back together with the
// invoice that billed them.
func (r *timesheetRepository) MarkInvoiced(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&models.Timesheet{}).
		Where("id IN ?", ids).
		Update("invoiced", true).Error
}

// GetApprovedTimesheets retrieves an employee's approved timesheets within
// the inclusive period, regardless of invoicing state
func (r *timesheetRepository) GetApprovedTimesheets(employeeID uint, periodStart, periodEnd time.Time) ([]*models.Timesheet, error) {
	var timesheets []*models.Timesheet

	err := r.db.
		Where("employee_id = ?", employeeID).
		Where("status = ?", models.TimesheetApproved).
		Where("date BETWEEN ? AND ?", periodStart, periodEnd).
		Order("date").
		Find(&timesheets).Error
	if err != nil {
		return nil, err
	}

	return timesheets, nil
}
