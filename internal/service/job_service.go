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
	// ErrPostingNotOpen is returned when applying to a posting that does not
	// accept applications
	ErrPostingNotOpen = errors.New("job posting is not open for applications")

	// ErrInvalidStatusChange is returned on a disallowed posting or
	// application transition
	ErrInvalidStatusChange = errors.New("invalid status transition")
)

// JobService defines the interface for job posting, application and
// assignment operations
type JobService interface {
	CreateJobPosting(posting *models.JobPosting) (*models.JobPosting, error)
	PublishJobPosting(id uint) (*models.JobPosting, error)
	CloseJobPosting(id uint, filled bool) (*models.JobPosting, error)
	GetJobPosting(id uint) (*models.JobPosting, error)
	ListJobPostings(employerID *uint, status *models.JobStatus, page, limit int) ([]*models.JobPosting, int64, error)

	Apply(postingID, applicantID uint, notes *string) (*models.Application, error)
	ReviewApplication(id uint, status models.ApplicationStatus, notes *string) (*models.Application, error)
	ListApplications(postingID uint) ([]*models.Application, error)

	ListAssignments(employerID uint) ([]*models.Assignment, error)
}

// jobService implements JobService
type jobService struct {
	employerRepo     repository.EmployerRepository
	employeeRepo     repository.EmployeeRepository
	notificationRepo repository.NotificationRepository
	logger           *logger.Logger
}

// NewJobService creates a new instance of JobService
func NewJobService(
	employerRepo repository.EmployerRepository,
	employeeRepo repository.EmployeeRepository,
	notificationRepo repository.NotificationRepository,
	logger *logger.Logger,
) JobService {
	return &jobService{
		employerRepo:     employerRepo,
		employeeRepo:     employeeRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// CreateJobPosting records a new posting in DRAFT state
func (s *jobService) CreateJobPosting(posting *models.JobPosting) (*models.JobPosting, error) {
	if _, err := s.employerRepo.GetEmployerByID(posting.EmployerID); err != nil {
		return nil, fmt.Errorf("employer %d not found: %w", posting.EmployerID, err)
	}

	posting.Status = models.JobStatusDraft
	if err := s.employerRepo.CreateJobPosting(posting); err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}

	return posting, nil
}

// PublishJobPosting moves a draft posting to OPEN
func (s *jobService) PublishJobPosting(id uint) (*models.JobPosting, error) {
	posting, err := s.employerRepo.GetJobPostingByID(id)
	if err != nil {
		return nil, err
	}
	if posting.Status != models.JobStatusDraft {
		return nil, ErrInvalidStatusChange
	}

	posting.Status = models.JobStatusOpen
	if err := s.employerRepo.UpdateJobPosting(posting); err != nil {
		return nil, fmt.Errorf("failed to publish job posting: %w", err)
	}

	return posting, nil
}

// CloseJobPosting moves an open posting to CLOSED, or FILLED when all
// positions were staffed
func (s *jobService) CloseJobPosting(id uint, filled bool) (*models.JobPosting, error) {
	posting, err := s.employerRepo.GetJobPostingByID(id)
	if err != nil {
		return nil, err
	}
	if posting.Status != models.JobStatusOpen {
		return nil, ErrInvalidStatusChange
	}

	if filled {
		posting.Status = models.JobStatusFilled
	} else {
		posting.Status = models.JobStatusClosed
	}
	if err := s.employerRepo.UpdateJobPosting(posting); err != nil {
		return nil, fmt.Errorf("failed to close job posting: %w", err)
	}

	return posting, nil
}

// GetJobPosting retrieves a posting by ID
func (s *jobService) GetJobPosting(id uint) (*models.JobPosting, error) {
	return s.employerRepo.GetJobPostingByID(id)
}

// ListJobPostings retrieves postings with optional employer and status filters
func (s *jobService) ListJobPostings(employerID *uint, status *models.JobStatus, page, limit int) ([]*models.JobPosting, int64, error) {
	return s.employerRepo.ListJobPostings(employerID, status, page, limit)
}

// Apply submits an application to an open posting. One application per
// applicant per posting is enforced by the schema.
func (s *jobService) Apply(postingID, applicantID uint, notes *string) (*models.Application, error) {
	posting, err := s.employerRepo.GetJobPostingByID(postingID)
	if err != nil {
		return nil, err
	}
	if !posting.IsActive() {
		return nil, ErrPostingNotOpen
	}
	if _, err := s.employeeRepo.GetEmployeeByID(applicantID); err != nil {
		return nil, fmt.Errorf("employee %d not found: %w", applicantID, err)
	}

	application := &models.Application{
		JobPostingID: postingID,
		ApplicantID:  applicantID,
		Status:       models.ApplicationSubmitted,
		Notes:        notes,
	}
	if err := s.employerRepo.CreateApplication(application); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return application, nil
}

// ReviewApplication updates an application's status. Hiring creates an
// assignment starting today at the posting's employer, rate to be
// contracted later.
func (s *jobService) ReviewApplication(id uint, status models.ApplicationStatus, notes *string) (*models.Application, error) {
	application, err := s.employerRepo.GetApplicationByID(id)
	if err != nil {
		return nil, err
	}
	if application.Status == models.ApplicationHired || application.Status == models.ApplicationRejected {
		return nil, ErrInvalidStatusChange
	}

	application.Status = status
	if notes != nil {
		application.Notes = notes
	}
	if err := s.employerRepo.UpdateApplication(application); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	if status == models.ApplicationHired {
		if err := s.createAssignmentForHire(application); err != nil {
			return nil, err
		}
	}

	s.notifyApplicant(application)

	return application, nil
}

func (s *jobService) createAssignmentForHire(application *models.Application) error {
	posting, err := s.employerRepo.GetJobPostingByID(application.JobPostingID)
	if err != nil {
		return err
	}

	assignment := &models.Assignment{
		EmployerID:   posting.EmployerID,
		EmployeeID:   application.ApplicantID,
		JobPostingID: &posting.ID,
		StartDate:    time.Now(),
		Status:       models.AssignmentActive,
	}
	if err := s.employerRepo.CreateAssignment(assignment); err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

func (s *jobService) notifyApplicant(application *models.Application) {
	employee, err := s.employeeRepo.GetEmployeeByID(application.ApplicantID)
	if err != nil {
		s.logger.WithError(err).WithField("application_id", application.ID).Error("Failed to load applicant for notification")
		return
	}

	notification := &models.Notification{
		RecipientID: employee.UserID,
		Message:     fmt.Sprintf("Your application #%d is now %s", application.ID, application.Status),
		Type:        models.NotificationApplicationUpdate,
	}
	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		s.logger.WithError(err).Error("Failed to create application notification")
	}
}

// ListApplications retrieves all applications for a posting
func (s *jobService) ListApplications(postingID uint) ([]*models.Application, error) {
	return s.employerRepo.ListApplicationsByPosting(postingID)
}

// ListAssignments retrieves all assignments for an employer
func (s *jobService) ListAssignments(employerID uint) ([]*models.Assignment, error) {
	return s.employerRepo.ListAssignmentsByEmployer(employerID)
}
