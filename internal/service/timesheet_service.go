package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/repository"
	"hr-portal-svc/pkg/logger"
)

var (
	// ErrTimesheetNotPending is returned when approving or rejecting a
	// timesheet that already left the PENDING state
	ErrTimesheetNotPending = errors.New("timesheet is not pending review")

	// ErrNegativeHours is returned when a timesheet is submitted with
	// negative worked or overtime hours
	ErrNegativeHours = errors.New("hours must not be negative")
)

// TimesheetService defines the interface for timesheet and work schedule
// operations
type TimesheetService interface {
	SubmitTimesheet(employeeID uint, assignmentID *uint, date time.Time, hoursWorked, overtimeHours decimal.Decimal) (*models.Timesheet, error)
	ReviewTimesheet(id, reviewerID uint, approve bool) (*models.Timesheet, error)
	ListTimesheets(employeeID uint, status *models.TimesheetStatus, page, limit int) ([]*models.Timesheet, int64, error)
	CreateWorkSchedule(schedule *models.WorkSchedule) (*models.WorkSchedule, error)
	ListWorkSchedules(employeeID uint) ([]*models.WorkSchedule, error)
}

// timesheetService implements TimesheetService
type timesheetService struct {
	timesheetRepo repository.TimesheetRepository
	employeeRepo  repository.EmployeeRepository
	logger        *logger.Logger
}

// NewTimesheetService creates a new instance of TimesheetService
func NewTimesheetService(
	timesheetRepo repository.TimesheetRepository,
	employeeRepo repository.EmployeeRepository,
	logger *logger.Logger,
) TimesheetService {
	return &timesheetService{
		timesheetRepo: timesheetRepo,
		employeeRepo:  employeeRepo,
		logger:        logger,
	}
}

// SubmitTimesheet records a pending timesheet for an employee. One
// timesheet per employee per date is enforced by the schema.
func (s *timesheetService) SubmitTimesheet(employeeID uint, assignmentID *uint, date time.Time, hoursWorked, overtimeHours decimal.Decimal) (*models.Timesheet, error) {
	if hoursWorked.IsNegative() || overtimeHours.IsNegative() {
		return nil, ErrNegativeHours
	}
	if _, err := s.employeeRepo.GetEmployeeByID(employeeID); err != nil {
		return nil, fmt.Errorf("employee %d not found: %w", employeeID, err)
	}

	timesheet := &models.Timesheet{
		EmployeeID:    employeeID,
		AssignmentID:  assignmentID,
		Date:          date,
		HoursWorked:   hoursWorked,
		OvertimeHours: overtimeHours,
		Status:        models.TimesheetPending,
	}
	if err := s.timesheetRepo.CreateTimesheet(timesheet); err != nil {
		return nil, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return timesheet, nil
}

// ReviewTimesheet approves or rejects a pending timesheet
func (s *timesheetService) ReviewTimesheet(id, reviewerID uint, approve bool) (*models.Timesheet, error) {
	timesheet, err := s.timesheetRepo.GetTimesheetByID(id)
	if err != nil {
		return nil, err
	}
	if timesheet.Status != models.TimesheetPending {
		return nil, ErrTimesheetNotPending
	}

	now := time.Now()
	if approve {
		timesheet.Status = models.TimesheetApproved
	} else {
		timesheet.Status = models.TimesheetRejected
	}
	timesheet.ApprovedByID = &reviewerID
	timesheet.ApprovalDate = &now

	if err := s.timesheetRepo.UpdateTimesheet(timesheet); err != nil {
		return nil, fmt.Errorf("failed to update timesheet: %w", err)
	}

	return timesheet, nil
}

// ListTimesheets retrieves an employee's timesheets with an optional status
// filter
func (s *timesheetService) ListTimesheets(employeeID uint, status *models.TimesheetStatus, page, limit int) ([]*models.Timesheet, int64, error) {
	return s.timesheetRepo.ListTimesheetsByEmployee(employeeID, status, page, limit)
}

// CreateWorkSchedule plans a work slot for an employee. Start and end must
// parse as wall-clock times and end after start.
func (s *timesheetService) CreateWorkSchedule(schedule *models.WorkSchedule) (*models.WorkSchedule, error) {
	if _, err := s.employeeRepo.GetEmployeeByID(schedule.EmployeeID); err != nil {
		return nil, fmt.Errorf("employee %d not found: %w", schedule.EmployeeID, err)
	}

	hours, err := schedule.TotalHours()
	if err != nil {
		return nil, err
	}
	if hours <= 0 {
		return nil, fmt.Errorf("schedule must cover a positive working duration")
	}

	if schedule.Status == "" {
		schedule.Status = models.SchedulePlanned
	}
	if err := s.employeeRepo.CreateWorkSchedule(schedule); err != nil {
		return nil, fmt.Errorf("failed to create work schedule: %w", err)
	}

	return schedule, nil
}

// ListWorkSchedules retrieves all schedules for an employee
func (s *timesheetService) ListWorkSchedules(employeeID uint) ([]*models.WorkSchedule, error) {
	return s.employeeRepo.ListWorkSchedulesByEmployee(employeeID)
}
