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

// ProfileHandler handles employer, employee and EOR client profile requests
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(profileService service.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// CreateEmployerProfile creates an employer company profile
// @Summary Create employer profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body models.EmployerProfile true "Employer profile"
// @Success 201 {object} utils.APIResponse{data=models.EmployerProfile} "Profile created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/employers [post]
func (h *ProfileHandler) CreateEmployerProfile(c *gin.Context) {
	var profile models.EmployerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	if err := h.profileService.CreateEmployerProfile(&profile); err != nil {
		h.logger.WithError(err).Error("Failed to create employer profile")
		utils.BadRequestResponse(c, "Failed to create employer profile", err)
		return
	}

	utils.CreatedResponse(c, "Employer profile created successfully", profile)
}

// GetEmployerProfile retrieves an employer profile by ID
// @Summary Get employer profile
// @Tags profiles
// @Produce json
// @Param id path int true "Employer profile ID"
// @Success 200 {object} utils.APIResponse{data=models.EmployerProfile} "Profile retrieved"
// @Failure 404 {object} utils.APIResponse "Profile not found"
// @Router /api/v1/employers/{id} [get]
func (h *ProfileHandler) GetEmployerProfile(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid employer ID", err)
		return
	}

	profile, err := h.profileService.GetEmployerProfile(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Employer profile not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to get employer profile", err)
		return
	}

	utils.SuccessResponse(c, "Employer profile retrieved successfully", profile)
}

// ListEmployers retrieves all employer profiles
// @Summary List employers
// @Tags profiles
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.EmployerProfile} "Employers retrieved"
// @Router /api/v1/employers [get]
func (h *ProfileHandler) ListEmployers(c *gin.Context) {
	employers, err := h.profileService.ListEmployers()
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list employers", err)
		return
	}

	utils.SuccessResponse(c, "Employers retrieved successfully", employers)
}

// CreateEmployeeProfile creates an employee profile
// @Summary Create employee profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body models.EmployeeProfile true "Employee profile"
// @Success 201 {object} utils.APIResponse{data=models.EmployeeProfile} "Profile created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/employees [post]
func (h *ProfileHandler) CreateEmployeeProfile(c *gin.Context) {
	var profile models.EmployeeProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	if err := h.profileService.CreateEmployeeProfile(&profile); err != nil {
		h.logger.WithError(err).Error("Failed to create employee profile")
		utils.BadRequestResponse(c, "Failed to create employee profile", err)
		return
	}

	utils.CreatedResponse(c, "Employee profile created successfully", profile)
}

// GetEmployeeProfile retrieves an employee profile by ID
// @Summary Get employee profile
// @Tags profiles
// @Produce json
// @Param id path int true "Employee profile ID"
// @Success 200 {object} utils.APIResponse{data=models.EmployeeProfile} "Profile retrieved"
// @Failure 404 {object} utils.APIResponse "Profile not found"
// @Router /api/v1/employees/{id} [get]
func (h *ProfileHandler) GetEmployeeProfile(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid employee ID", err)
		return
	}

	profile, err := h.profileService.GetEmployeeProfile(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "Employee profile not found")
			return
		}
		utils.InternalServerErrorResponse(c, "Failed to get employee profile", err)
		return
	}

	utils.SuccessResponse(c, "Employee profile retrieved successfully", profile)
}

// CreateEORClientProfile creates an EOR client profile
// @Summary Create EOR client profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body models.EORClientProfile true "EOR client profile"
// @Success 201 {object} utils.APIResponse{data=models.EORClientProfile} "Profile created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/eor/clients [post]
func (h *ProfileHandler) CreateEORClientProfile(c *gin.Context) {
	var profile models.EORClientProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	if err := h.profileService.CreateEORClientProfile(&profile); err != nil {
		h.logger.WithError(err).Error("Failed to create EOR client profile")
		utils.BadRequestResponse(c, "Failed to create EOR client profile", err)
		return
	}

	utils.CreatedResponse(c, "EOR client profile created successfully", profile)
}

// ListEORClients retrieves all EOR client profiles
// @Summary List EOR clients
// @Tags profiles
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.EORClientProfile} "EOR clients retrieved"
// @Router /api/v1/eor/clients [get]
func (h *ProfileHandler) ListEORClients(c *gin.Context) {
	clients, err := h.profileService.ListEORClients()
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list EOR clients", err)
		return
	}

	utils.SuccessResponse(c, "EOR clients retrieved successfully", clients)
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
