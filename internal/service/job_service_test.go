package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-portal-svc/internal/models"
)

func newTestJobService() (JobService, *mockEmployerRepository, *mockEmployeeRepository, *mockNotificationRepository) {
	employerRepo := newMockEmployerRepository()
	employeeRepo := newMockEmployeeRepository()
	notificationRepo := &mockNotificationRepository{}
	svc := NewJobService(employerRepo, employeeRepo, notificationRepo, testLogger())
	return svc, employerRepo, employeeRepo, notificationRepo
}

func TestCreateJobPostingStartsDraft(t *testing.T) {
	svc, employerRepo, _, _ := newTestJobService()
	employerRepo.Employers[1] = &models.EmployerProfile{ID: 1, CompanyName: "Acme OÜ"}

	posting, err := svc.CreateJobPosting(&models.JobPosting{
		EmployerID: 1,
		Title:      "Backend Engineer",
		Status:     models.JobStatusOpen, // caller-supplied status is ignored
	})

	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusDraft, posting.Status)
}

func TestPublishJobPosting(t *testing.T) {
	svc, employerRepo, _, _ := newTestJobService()
	employerRepo.Postings[1] = &models.JobPosting{ID: 1, EmployerID: 1, Status: models.JobStatusDraft}

	posting, err := svc.PublishJobPosting(1)

	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusOpen, posting.Status)
}

func TestPublishJobPostingNotDraft(t *testing.T) {
	svc, employerRepo, _, _ := newTestJobService()
	employerRepo.Postings[1] = &models.JobPosting{ID: 1, EmployerID: 1, Status: models.JobStatusClosed}

	_, err := svc.PublishJobPosting(1)

	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestCloseJobPosting(t *testing.T) {
	svc, employerRepo, _, _ := newTestJobService()
	employerRepo.Postings[1] = &models.JobPosting{ID: 1, EmployerID: 1, Status: models.JobStatusOpen}
	employerRepo.Postings[2] = &models.JobPosting{ID: 2, EmployerID: 1, Status: models.JobStatusOpen}

	closed, err := svc.CloseJobPosting(1, false)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, closed.Status)

	filled, err := svc.CloseJobPosting(2, true)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusFilled, filled.Status)
}

func TestApply(t *testing.T) {
	svc, employerRepo, employeeRepo, _ := newTestJobService()
	employerRepo.Postings[1] = &models.JobPosting{ID: 1, EmployerID: 1, Status: models.JobStatusOpen}
	employeeRepo.Employees[2] = &models.EmployeeProfile{ID: 2, UserID: 20}

	application, err := svc.Apply(1, 2, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationSubmitted, application.Status)
	assert.Equal(t, uint(1), application.JobPostingID)
	assert.Equal(t, uint(2), application.ApplicantID)
}

func TestApplyPostingNotOpen(t *testing.T) {
	svc, employerRepo, employeeRepo, _ := newTestJobService()
	employerRepo.Postings[1] = &models.JobPosting{ID: 1, EmployerID: 1, Status: models.JobStatusDraft}
	employeeRepo.Employees[2] = &models.EmployeeProfile{ID: 2}

	_, err := svc.Apply(1, 2, nil)

	assert.ErrorIs(t, err, ErrPostingNotOpen)
	assert.Empty(t, employerRepo.Applications)
}

func TestReviewApplicationHireCreatesAssignment(t *testing.T) {
	svc, employerRepo, employeeRepo, notificationRepo := newTestJobService()
	employerRepo.Postings[1] = &models.JobPosting{ID: 1, EmployerID: 5, Status: models.JobStatusOpen}
	employeeRepo.Employees[2] = &models.EmployeeProfile{ID: 2, UserID: 20, FirstName: "Mari", LastName: "Tamm"}
	employerRepo.Applications[1] = &models.Application{ID: 1, JobPostingID: 1, ApplicantID: 2, Status: models.ApplicationSubmitted}

	application, err := svc.ReviewApplication(1, models.ApplicationHired, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationHired, application.Status)

	assert.Len(t, employerRepo.Assignments, 1)
	for _, assignment := range employerRepo.Assignments {
		assert.Equal(t, uint(5), assignment.EmployerID)
		assert.Equal(t, uint(2), assignment.EmployeeID)
		assert.Equal(t, models.AssignmentActive, assignment.Status)
	}

	assert.Len(t, notificationRepo.Created, 1)
	assert.Equal(t, uint(20), notificationRepo.Created[0].RecipientID)
	assert.Equal(t, models.NotificationApplicationUpdate, notificationRepo.Created[0].Type)
}

func TestReviewApplicationRejectedIsTerminal(t *testing.T) {
	svc, employerRepo, _, _ := newTestJobService()
	employerRepo.Applications[1] = &models.Application{ID: 1, JobPostingID: 1, ApplicantID: 2, Status: models.ApplicationRejected}

	_, err := svc.ReviewApplication(1, models.ApplicationInvited, nil)

	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestReviewApplicationNonHireDoesNotAssign(t *testing.T) {
	svc, employerRepo, employeeRepo, _ := newTestJobService()
	employeeRepo.Employees[2] = &models.EmployeeProfile{ID: 2, UserID: 20}
	employerRepo.Applications[1] = &models.Application{ID: 1, JobPostingID: 1, ApplicantID: 2, Status: models.ApplicationSubmitted}

	application, err := svc.ReviewApplication(1, models.ApplicationReviewed, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationReviewed, application.Status)
	assert.Empty(t, employerRepo.Assignments)
}
