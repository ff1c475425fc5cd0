package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/service"
	"hr-portal-svc/pkg/logger"
	"hr-portal-svc/pkg/utils"
)

// ApplyRequest represents the request for submitting a job application
type ApplyRequest struct {
	ApplicantID uint    `json:"applicant_id" binding:"required"`
	Notes       *string `json:"notes,omitempty"`
}

// ReviewApplicationRequest represents the request for reviewing an application
type ReviewApplicationRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=REVIEWED INVITED HIRED REJECTED"`
	Notes  *string                  `json:"notes,omitempty"`
}

// CloseJobRequest represents the request for closing a job posting
type CloseJobRequest struct {
	Filled bool `json:"filled"`
}

// JobHandler handles job posting, application and assignment HTTP requests
type JobHandler struct {
	jobService service.JobService
	logger     *logger.Logger
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(jobService service.JobService, logger *logger.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// CreateJobPosting creates a draft job posting
// @Summary Create job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body models.JobPosting true "Job posting"
// @Success 201 {object} utils.APIResponse{data=models.JobPosting} "Posting created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/jobs [post]
func (h *JobHandler) CreateJobPosting(c *gin.Context) {
	var posting models.JobPosting
	if err := c.ShouldBindJSON(&posting); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	created, err := h.jobService.CreateJobPosting(&posting)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create job posting")
		utils.BadRequestResponse(c, "Failed to create job posting", err)
		return
	}

	utils.CreatedResponse(c, "Job posting created successfully", created)
}

// PublishJobPosting opens a draft posting for applications
// @Summary Publish job posting
// @Tags jobs
// @Produce json
// @Param id path int true "Job posting ID"
// @Success 200 {object} utils.APIResponse{data=models.JobPosting} "Posting published"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 404 {object} utils.APIResponse "Posting not found"
// @Router /api/v1/jobs/{id}/publish [post]
func (h *JobHandler) PublishJobPosting(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid job posting ID", err)
		return
	}

	posting, err := h.jobService.PublishJobPosting(id)
	if err != nil {
		h.respondJobError(c, err, "Failed to publish job posting")
		return
	}

	utils.SuccessResponse(c, "Job posting published successfully", posting)
}

// CloseJobPosting closes an open posting
// @Summary Close job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path int true "Job posting ID"
// @Param request body CloseJobRequest true "Close request"
// @Success 200 {object} utils.APIResponse{data=models.JobPosting} "Posting closed"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 404 {object} utils.APIResponse "Posting not found"
// @Router /api/v1/jobs/{id}/close [post]
func (h *JobHandler) CloseJobPosting(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid job posting ID", err)
		return
	}

	var req CloseJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	posting, err := h.jobService.CloseJobPosting(id, req.Filled)
	if err != nil {
		h.respondJobError(c, err, "Failed to close job posting")
		return
	}

	utils.SuccessResponse(c, "Job posting closed successfully", posting)
}

// GetJobPosting retrieves a posting by ID
// @Summary Get job posting
// @Tags jobs
// @Produce json
// @Param id path int true "Job posting ID"
// @Success 200 {object} utils.APIResponse{data=models.JobPosting} "Posting retrieved"
// @Failure 404 {object} utils.APIResponse "Posting not found"
// @Router /api/v1/jobs/{id} [get]
func (h *JobHandler) GetJobPosting(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid job posting ID", err)
		return
	}

	posting, err := h.jobService.GetJobPosting(id)
	if err != nil {
		h.respondJobError(c, err, "Failed to get job posting")
		return
	}

	utils.SuccessResponse(c, "Job posting retrieved successfully", posting)
}

// ListJobPostings retrieves postings with optional filters
// @Summary List job postings
// @Tags jobs
// @Produce json
// @Param employer_id query int false "Filter by employer"
// @Param status query string false "Filter by status" Enums(DRAFT,OPEN,CLOSED,FILLED)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.JobPosting} "Postings retrieved"
// @Router /api/v1/jobs [get]
func (h *JobHandler) ListJobPostings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	var employerID *uint
	if raw := c.Query("employer_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid employer_id", err)
			return
		}
		id := uint(value)
		employerID = &id
	}

	var status *models.JobStatus
	if raw := c.Query("status"); raw != "" {
		s := models.JobStatus(raw)
		status = &s
	}

	postings, total, err := h.jobService.ListJobPostings(employerID, status, page, perPage)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list job postings", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Job postings retrieved successfully", postings, page, perPage, total)
}

// Apply submits an application to an open posting
// @Summary Apply to job posting
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Job posting ID"
// @Param request body ApplyRequest true "Application request"
// @Success 201 {object} utils.APIResponse{data=models.Application} "Application submitted"
// @Failure 400 {object} utils.APIResponse "Posting not open or duplicate application"
// @Failure 404 {object} utils.APIResponse "Posting not found"
// @Router /api/v1/jobs/{id}/applications [post]
func (h *JobHandler) Apply(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid job posting ID", err)
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	application, err := h.jobService.Apply(id, req.ApplicantID, req.Notes)
	if err != nil {
		h.respondJobError(c, err, "Failed to submit application")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"job_posting_id": id,
		"applicant_id":   req.ApplicantID,
	}).Info("Application submitted")

	utils.CreatedResponse(c, "Application submitted successfully", application)
}

// ReviewApplication updates an application's status
// @Summary Review application
// @Description Update the application status. Moving to HIRED creates an assignment.
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body ReviewApplicationRequest true "Review request"
// @Success 200 {object} utils.APIResponse{data=models.Application} "Application updated"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 404 {object} utils.APIResponse "Application not found"
// @Router /api/v1/applications/{id}/review [post]
func (h *JobHandler) ReviewApplication(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid application ID", err)
		return
	}

	var req ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	application, err := h.jobService.ReviewApplication(id, req.Status, req.Notes)
	if err != nil {
		h.respondJobError(c, err, "Failed to review application")
		return
	}

	utils.SuccessResponse(c, "Application updated successfully", application)
}

// ListApplications retrieves all applications for a posting
// @Summary List applications for a posting
// @Tags applications
// @Produce json
// @Param id path int true "Job posting ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Application} "Applications retrieved"
// @Router /api/v1/jobs/{id}/applications [get]
func (h *JobHandler) ListApplications(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid job posting ID", err)
		return
	}

	applications, err := h.jobService.ListApplications(id)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list applications", err)
		return
	}

	utils.SuccessResponse(c, "Applications retrieved successfully", applications)
}

// ListAssignments retrieves all assignments for an employer
// @Summary List assignments for an employer
// @Tags assignments
// @Produce json
// @Param employer_id path int true "Employer profile ID"
// @Success 200 {object} utils.APIResponse{data=[]models.Assignment} "Assignments retrieved"
// @Router /api/v1/employers/{employer_id}/assignments [get]
func (h *JobHandler) ListAssignments(c *gin.Context) {
	employerID, err := parseIDParam(c, "employer_id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid employer ID", err)
		return
	}

	assignments, err := h.jobService.ListAssignments(employerID)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list assignments", err)
		return
	}

	utils.SuccessResponse(c, "Assignments retrieved successfully", assignments)
}

func (h *JobHandler) respondJobError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, service.ErrPostingNotOpen), errors.Is(err, service.ErrInvalidStatusChange):
		utils.BadRequestResponse(c, message, err)
	default:
		h.logger.WithError(err).Error(message)
		utils.InternalServerErrorResponse(c, message, err)
	}
}
