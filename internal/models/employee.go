package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeStatus is the availability state of an employee profile
type EmployeeStatus string

const (
	EmployeeAvailable EmployeeStatus = "AVAILABLE"
	EmployeeEmployed  EmployeeStatus = "EMPLOYED"
	EmployeeOnHold    EmployeeStatus = "ON_HOLD"
)

// EmployeeProfile represents the employee_profiles table
type EmployeeProfile struct {
	ID                uint             `json:"id" gorm:"primarykey"`
	UserID            uint             `json:"user_id" gorm:"column:user_id;uniqueIndex"`
	FirstName         string           `json:"first_name" gorm:"column:first_name"`
	LastName          string           `json:"last_name" gorm:"column:last_name"`
	DateOfBirth       time.Time        `json:"date_of_birth" gorm:"column:date_of_birth;type:date"`
	Phone             string           `json:"phone" gorm:"column:phone"`
	Nationality       string           `json:"nationality" gorm:"column:nationality"`
	ExperienceSummary *string          `json:"experience_summary" gorm:"column:experience_summary;type:text"`
	ExpectedSalary    *decimal.Decimal `json:"expected_salary" gorm:"column:expected_salary;type:decimal(10,2)"`
	Status            EmployeeStatus   `json:"status" gorm:"column:status;default:AVAILABLE"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TableName sets the insert table name for EmployeeProfile
func (EmployeeProfile) TableName() string {
	return "employee_profiles"
}

// FullName returns the display name of the employee
func (e *EmployeeProfile) FullName() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

// ScheduleStatus is the state of a planned work schedule entry
type ScheduleStatus string

const (
	SchedulePlanned   ScheduleStatus = "PLANNED"
	ScheduleCompleted ScheduleStatus = "COMPLETED"
	ScheduleCanceled  ScheduleStatus = "CANCELED"
)

// WorkSchedule represents the work_schedules table. Start and end times are
// stored as "HH:MM" wall-clock strings on the schedule date.
type WorkSchedule struct {
	ID                   uint           `json:"id" gorm:"primarykey"`
	EmployeeID           uint           `json:"employee_id" gorm:"column:employee_id;uniqueIndex:idx_schedule_slot"`
	AssignmentID         *uint          `json:"assignment_id" gorm:"column:assignment_id"`
	Date                 time.Time      `json:"date" gorm:"column:date;type:date;uniqueIndex:idx_schedule_slot"`
	StartTime            string         `json:"start_time" gorm:"column:start_time;uniqueIndex:idx_schedule_slot"`
	EndTime              string         `json:"end_time" gorm:"column:end_time"`
	BreakDurationMinutes int            `json:"break_duration_minutes" gorm:"column:break_duration_minutes;default:0"`
	Status               ScheduleStatus `json:"status" gorm:"column:status;default:PLANNED"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// TableName sets the insert table name for WorkSchedule
func (WorkSchedule) TableName() string {
	return "work_schedules"
}

// TotalHours returns scheduled hours net of the break
func (w *WorkSchedule) TotalHours() (float64, error) {
	start, err := time.Parse("15:04", w.StartTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", w.StartTime, err)
	}
	end, err := time.Parse("15:04", w.EndTime)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", w.EndTime, err)
	}
	worked := end.Sub(start) - time.Duration(w.BreakDurationMinutes)*time.Minute
	return worked.Hours(), nil
}

// TimesheetStatus is the approval state of a submitted timesheet
type TimesheetStatus string

const (
	TimesheetPending  TimesheetStatus = "PENDING"
	TimesheetApproved TimesheetStatus = "APPROVED"
	TimesheetRejected TimesheetStatus = "REJECTED"
)

// Timesheet represents the timesheets table. One timesheet per employee per
// date. Invoiced marks that the hours were consumed by employer billing.
type Timesheet struct {
	ID             uint            `json:"id" gorm:"primarykey"`
	EmployeeID     uint            `json:"employee_id" gorm:"column:employee_id;uniqueIndex:idx_timesheet_day"`
	AssignmentID   *uint           `json:"assignment_id" gorm:"column:assignment_id;index"`
	WorkScheduleID *uint           `json:"work_schedule_id" gorm:"column:work_schedule_id"`
	Date           time.Time       `json:"date" gorm:"column:date;type:date;uniqueIndex:idx_timesheet_day"`
	HoursWorked    decimal.Decimal `json:"hours_worked" gorm:"column:hours_worked;type:decimal(5,2)"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours" gorm:"column:overtime_hours;type:decimal(5,2);default:0"`
	Status         TimesheetStatus `json:"status" gorm:"column:status;default:PENDING"`
	Invoiced       bool            `json:"invoiced" gorm:"column:invoiced;default:false;index"`
	ApprovedByID   *uint           `json:"approved_by_id" gorm:"column:approved_by_id"`
	ApprovalDate   *time.Time      `json:"approval_date" gorm:"column:approval_date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for Timesheet
func (Timesheet) TableName() string {
	return "timesheets"
}

// TotalHours returns worked plus overtime hours
func (t *Timesheet) TotalHours() decimal.Decimal {
	return t.HoursWorked.Add(t.OvertimeHours)
}

// Payslip represents the payslips table. One payslip per employee per period.
type Payslip struct {
	ID              uint            `json:"id" gorm:"primarykey"`
	EmployeeID      uint            `json:"employee_id" gorm:"column:employee_id;uniqueIndex:idx_payslip_period"`
	AssignmentID    *uint           `json:"assignment_id" gorm:"column:assignment_id"`
	PayrollRunID    *uint           `json:"payroll_run_id" gorm:"column:payroll_run_id;index"`
	PeriodStartDate time.Time       `json:"period_start_date" gorm:"column:period_start_date;type:date;uniqueIndex:idx_payslip_period"`
	PeriodEndDate   time.Time       `json:"period_end_date" gorm:"column:period_end_date;type:date;uniqueIndex:idx_payslip_period"`
	IssueDate       time.Time       `json:"issue_date" gorm:"column:issue_date;type:date"`
	GrossSalary     decimal.Decimal `json:"gross_salary" gorm:"column:gross_salary;type:decimal(10,2)"`
	NetSalary       decimal.Decimal `json:"net_salary" gorm:"column:net_salary;type:decimal(10,2)"`
	TaxAmount       decimal.Decimal `json:"tax_amount" gorm:"column:tax_amount;type:decimal(10,2)"`
	DeductionsJSON  string          `json:"deductions_json" gorm:"column:deductions_json;type:jsonb;default:'{}'"`
	FilePath        *string         `json:"file_path" gorm:"column:file_path"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for Payslip
func (Payslip) TableName() string {
	return "payslips"
}
