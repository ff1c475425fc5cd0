package repository

import (
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
)

// EmployerRepository defines the interface for employer-side data operations
type EmployerRepository interface {
	CreateEmployer(profile *models.EmployerProfile) error
	GetEmployerByID(id uint) (*models.EmployerProfile, error)
	GetEmployerByUserID(userID uint) (*models.EmployerProfile, error)
	ListEmployers() ([]*models.EmployerProfile, error)

	CreateJobPosting(posting *models.JobPosting) error
	GetJobPostingByID(id uint) (*models.JobPosting, error)
	ListJobPostings(employerID *uint, status *models.JobStatus, page, limit int) ([]*models.JobPosting, int64, error)
	UpdateJobPosting(posting *models.JobPosting) error

	CreateApplication(application *models.Application) error
	GetApplicationByID(id uint) (*models.Application, error)
	ListApplicationsByPosting(postingID uint) ([]*models.Application, error)
	UpdateApplication(application *models.Application) error

	CreateAssignment(assignment *models.Assignment) error
	GetAssignmentByID(id uint) (*models.Assignment, error)
	ListAssignmentsByEmployer(employerID uint) ([]*models.Assignment, error)
}

// employerRepository implements EmployerRepository
type employerRepository struct {
	db *gorm.DB
}

// NewEmployerRepository creates a new instance of EmployerRepository
func NewEmployerRepository(db *gorm.DB) EmployerRepository {
	return &employerRepository{
		db: db,
	}
}

func (r *employerRepository) CreateEmployer(profile *models.EmployerProfile) error {
	return r.db.Create(profile).Error
}

func (r *employerRepository) GetEmployerByID(id uint) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile

	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *employerRepository) GetEmployerByUserID(userID uint) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile

	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *employerRepository) ListEmployers() ([]*models.EmployerProfile, error) {
	var profiles []*models.EmployerProfile

	err := r.db.Order("id").Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *employerRepository) CreateJobPosting(posting *models.JobPosting) error {
	return r.db.Create(posting).Error
}

func (r *employerRepository) GetJobPostingByID(id uint) (*models.JobPosting, error) {
	var posting models.JobPosting

	err := r.db.Where("id = ?", id).First(&posting).Error
	if err != nil {
		return nil, err
	}

	return &posting, nil
}

// ListJobPostings retrieves postings with optional employer and status filters
func (r *employerRepository) ListJobPostings(employerID *uint, status *models.JobStatus, page, limit int) ([]*models.JobPosting, int64, error) {
	var postings []*models.JobPosting

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	query := r.db.Model(&models.JobPosting{})
	if employerID != nil {
		query = query.Where("employer_id = ?", *employerID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&postings).Error
	if err != nil {
		return nil, 0, err
	}

	return postings, total, nil
}

func (r *employerRepository) UpdateJobPosting(posting *models.JobPosting) error {
	return r.db.Save(posting).Error
}

func (r *employerRepository) CreateApplication(application *models.Application) error {
	return r.db.Create(application).Error
}

func (r *employerRepository) GetApplicationByID(id uint) (*models.Application, error) {
	var application models.Application

	err := r.db.Where("id = ?", id).First(&application).Error
	if err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *employerRepository) ListApplicationsByPosting(postingID uint) ([]*models.Application, error) {
	var applications []*models.Application

	err := r.db.Where("job_posting_id = ?", postingID).
		Order("id").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *employerRepository) UpdateApplication(application *models.Application) error {
	return r.db.Save(application).Error
}

func (r *employerRepository) CreateAssignment(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *employerRepository) GetAssignmentByID(id uint) (*models.Assignment, error) {
	var assignment models.Assignment

	err := r.db.Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *employerRepository) ListAssignmentsByEmployer(employerID uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment

	err := r.db.Where("employer_id = ?", employerID).
		Order("id").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}
