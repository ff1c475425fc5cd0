package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EORClientProfile represents the eor_client_profiles table
type EORClientProfile struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	UserID             uint      `json:"user_id" gorm:"column:user_id;uniqueIndex"`
	CompanyName        string    `json:"company_name" gorm:"column:company_name"`
	RegistrationCode   string    `json:"registration_code" gorm:"column:registration_code"`
	ContactPersonName  string    `json:"contact_person_name" gorm:"column:contact_person_name"`
	ContactPersonEmail string    `json:"contact_person_email" gorm:"column:contact_person_email"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName sets the insert table name for EORClientProfile
func (EORClientProfile) TableName() string {
	return "eor_client_profiles"
}

// AgreementStatus is the lifecycle state of an EOR agreement
type AgreementStatus string

const (
	AgreementDraft            AgreementStatus = "DRAFT"
	AgreementPendingSignature AgreementStatus = "PENDING_SIGNATURE"
	AgreementActive           AgreementStatus = "ACTIVE"
	AgreementExpired          AgreementStatus = "EXPIRED"
)

// EORAgreement represents the eor_agreements table
type EORAgreement struct {
	ID                 uint            `json:"id" gorm:"primarykey"`
	EORClientID        uint            `json:"eor_client_id" gorm:"column:eor_client_id;index"`
	AgreementType      string          `json:"agreement_type" gorm:"column:agreement_type"`
	TermsAndConditions string          `json:"terms_and_conditions" gorm:"column:terms_and_conditions;type:text"`
	StartDate          time.Time       `json:"start_date" gorm:"column:start_date;type:date"`
	EndDate            *time.Time      `json:"end_date" gorm:"column:end_date;type:date"`
	Status             AgreementStatus `json:"status" gorm:"column:status;default:DRAFT"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for EORAgreement
func (EORAgreement) TableName() string {
	return "eor_agreements"
}

// PlacementStatus is the lifecycle state of an EOR placement
type PlacementStatus string

const (
	PlacementActive     PlacementStatus = "ACTIVE"
	PlacementCompleted  PlacementStatus = "COMPLETED"
	PlacementTerminated PlacementStatus = "TERMINATED"
)

// EORPlacement represents the eor_placements table. GrossSalary is the
// monthly salary passed through to the client invoice.
type EORPlacement struct {
	ID             uint            `json:"id" gorm:"primarykey"`
	EORClientID    uint            `json:"eor_client_id" gorm:"column:eor_client_id;index"`
	EmployeeID     uint            `json:"employee_id" gorm:"column:employee_id;index"`
	EORAgreementID uint            `json:"eor_agreement_id" gorm:"column:eor_agreement_id"`
	JobTitle       string          `json:"job_title" gorm:"column:job_title"`
	GrossSalary    decimal.Decimal `json:"gross_salary" gorm:"column:gross_salary;type:decimal(10,2)"`
	StartDate      time.Time       `json:"start_date" gorm:"column:start_date;type:date"`
	EndDate        *time.Time      `json:"end_date" gorm:"column:end_date;type:date"`
	Status         PlacementStatus `json:"status" gorm:"column:status;default:ACTIVE"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for EORPlacement
func (EORPlacement) TableName() string {
	return "eor_placements"
}

// PayrollRunStatus is the processing state of a payroll run
type PayrollRunStatus string

const (
	PayrollRunDraft     PayrollRunStatus = "DRAFT"
	PayrollRunProcessed PayrollRunStatus = "PROCESSED"
	PayrollRunPaid      PayrollRunStatus = "PAID"
	PayrollRunFailed    PayrollRunStatus = "FAILED"
)

// PayrollRun represents the payroll_runs table. One run per EOR client per
// period; generated payslips reference the run via Payslip.PayrollRunID.
type PayrollRun struct {
	ID              uint             `json:"id" gorm:"primarykey"`
	EORClientID     uint             `json:"eor_client_id" gorm:"column:eor_client_id;uniqueIndex:idx_payroll_period"`
	PeriodStartDate time.Time        `json:"period_start_date" gorm:"column:period_start_date;type:date;uniqueIndex:idx_payroll_period"`
	PeriodEndDate   time.Time        `json:"period_end_date" gorm:"column:period_end_date;type:date;uniqueIndex:idx_payroll_period"`
	TotalGrossPayout decimal.Decimal `json:"total_gross_payout" gorm:"column:total_gross_payout;type:decimal(12,2)"`
	TotalNetPayout  decimal.Decimal  `json:"total_net_payout" gorm:"column:total_net_payout;type:decimal(12,2)"`
	TotalTaxes      decimal.Decimal  `json:"total_taxes" gorm:"column:total_taxes;type:decimal(12,2)"`
	Status          PayrollRunStatus `json:"status" gorm:"column:status;default:DRAFT"`
	XMLExportPath   *string          `json:"xml_export_path" gorm:"column:xml_export_path"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName sets the insert table name for PayrollRun
func (PayrollRun) TableName() string {
	return "payroll_runs"
}
