package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationStatus is the internal vetting state of an employer profile
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// EmployerProfile represents the employer_profiles table
type EmployerProfile struct {
	ID                 uint               `json:"id" gorm:"primarykey"`
	UserID             uint               `json:"user_id" gorm:"column:user_id;uniqueIndex"`
	CompanyName        string             `json:"company_name" gorm:"column:company_name"`
	RegistrationCode   string             `json:"registration_code" gorm:"column:registration_code"`
	ContactPersonName  string             `json:"contact_person_name" gorm:"column:contact_person_name"`
	ContactPersonEmail string             `json:"contact_person_email" gorm:"column:contact_person_email"`
	Phone              string             `json:"phone" gorm:"column:phone"`
	Website            *string            `json:"website" gorm:"column:website"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"column:verification_status;default:PENDING"`
	VerificationNotes  *string            `json:"verification_notes" gorm:"column:verification_notes"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// TableName sets the insert table name for EmployerProfile
func (EmployerProfile) TableName() string {
	return "employer_profiles"
}

// JobStatus is the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusDraft  JobStatus = "DRAFT"
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
	JobStatusFilled JobStatus = "FILLED"
)

// JobPosting represents the job_postings table
type JobPosting struct {
	ID                 uint             `json:"id" gorm:"primarykey"`
	EmployerID         uint             `json:"employer_id" gorm:"column:employer_id;index"`
	Title              string           `json:"title" gorm:"column:title"`
	Description        string           `json:"description" gorm:"column:description;type:text"`
	Location           string           `json:"location" gorm:"column:location"`
	NumEmployees       int              `json:"num_employees" gorm:"column:num_employees;default:1"`
	EstimatedSalaryMin *decimal.Decimal `json:"estimated_salary_min" gorm:"column:estimated_salary_min;type:decimal(10,2)"`
	EstimatedSalaryMax *decimal.Decimal `json:"estimated_salary_max" gorm:"column:estimated_salary_max;type:decimal(10,2)"`
	ClosingDate        *time.Time       `json:"closing_date" gorm:"column:closing_date;type:date"`
	Status             JobStatus        `json:"status" gorm:"column:status;default:DRAFT"`
	JobType            string           `json:"job_type" gorm:"column:job_type;default:FULL_TIME"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// TableName sets the insert table name for JobPosting
func (JobPosting) TableName() string {
	return "job_postings"
}

// IsActive reports whether the posting accepts applications
func (j *JobPosting) IsActive() bool {
	return j.Status == JobStatusOpen
}

// ApplicationStatus is the review state of a job application
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationReviewed  ApplicationStatus = "REVIEWED"
	ApplicationInvited   ApplicationStatus = "INVITED"
	ApplicationHired     ApplicationStatus = "HIRED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
)

// Application represents the applications table. One application per
// applicant per posting.
type Application struct {
	ID           uint              `json:"id" gorm:"primarykey"`
	JobPostingID uint              `json:"job_posting_id" gorm:"column:job_posting_id;uniqueIndex:idx_posting_applicant"`
	ApplicantID  uint              `json:"applicant_id" gorm:"column:applicant_id;uniqueIndex:idx_posting_applicant"`
	Status       ApplicationStatus `json:"status" gorm:"column:status;default:SUBMITTED"`
	Notes        *string           `json:"notes" gorm:"column:notes;type:text"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TableName sets the insert table name for Application
func (Application) TableName() string {
	return "applications"
}

// AssignmentStatus is the lifecycle state of a work assignment
type AssignmentStatus string

const (
	AssignmentPendingStart AssignmentStatus = "PENDING_START"
	AssignmentActive       AssignmentStatus = "ACTIVE"
	AssignmentCompleted    AssignmentStatus = "COMPLETED"
	AssignmentTerminated   AssignmentStatus = "TERMINATED"
)

// Assignment represents the assignments table, linking an employee to an
// employer. HourlyRate is the contracted billing rate; when null the
// configured default rate applies.
type Assignment struct {
	ID           uint             `json:"id" gorm:"primarykey"`
	EmployerID   uint             `json:"employer_id" gorm:"column:employer_id;index"`
	EmployeeID   uint             `json:"employee_id" gorm:"column:employee_id;index"`
	JobPostingID *uint            `json:"job_posting_id" gorm:"column:job_posting_id"`
	StartDate    time.Time        `json:"start_date" gorm:"column:start_date;type:date"`
	EndDate      *time.Time       `json:"end_date" gorm:"column:end_date;type:date"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate" gorm:"column:hourly_rate;type:decimal(10,2)"`
	Status       AssignmentStatus `json:"status" gorm:"column:status;default:PENDING_START"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName sets the insert table name for Assignment
func (Assignment) TableName() string {
	return "assignments"
}
