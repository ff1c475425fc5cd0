package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/service"
	"hr-portal-svc/pkg/logger"
	"hr-portal-svc/pkg/utils"
)

// TerminatePlacementRequest represents the request for ending a placement
type TerminatePlacementRequest struct {
	EndDate string `json:"end_date" binding:"required"` // YYYY-MM-DD
}

// EORHandler handles EOR agreement and placement HTTP requests
type EORHandler struct {
	eorService service.EORService
	logger     *logger.Logger
}

// NewEORHandler creates a new EORHandler instance
func NewEORHandler(eorService service.EORService, logger *logger.Logger) *EORHandler {
	return &EORHandler{
		eorService: eorService,
		logger:     logger,
	}
}

// CreateAgreement creates a draft EOR agreement
// @Summary Create EOR agreement
// @Tags eor
// @Accept json
// @Produce json
// @Param request body models.EORAgreement true "Agreement"
// @Success 201 {object} utils.APIResponse{data=models.EORAgreement} "Agreement created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/eor/agreements [post]
func (h *EORHandler) CreateAgreement(c *gin.Context) {
	var agreement models.EORAgreement
	if err := c.ShouldBindJSON(&agreement); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	created, err := h.eorService.CreateAgreement(&agreement)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create agreement")
		utils.BadRequestResponse(c, "Failed to create agreement", err)
		return
	}

	utils.CreatedResponse(c, "Agreement created successfully", created)
}

// ActivateAgreement puts an agreement in force
// @Summary Activate EOR agreement
// @Tags eor
// @Produce json
// @Param id path int true "Agreement ID"
// @Success 200 {object} utils.APIResponse{data=models.EORAgreement} "Agreement activated"
// @Failure 400 {object} utils.APIResponse "Invalid transition"
// @Failure 404 {object} utils.APIResponse "Agreement not found"
// @Router /api/v1/eor/agreements/{id}/activate [post]
func (h *EORHandler) ActivateAgreement(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid agreement ID", err)
		return
	}

	agreement, err := h.eorService.ActivateAgreement(id)
	if err != nil {
		h.respondEORError(c, err, "Failed to activate agreement")
		return
	}

	utils.SuccessResponse(c, "Agreement activated successfully", agreement)
}

// ListAgreements retrieves all agreements for an EOR client
// @Summary List EOR agreements
// @Tags eor
// @Produce json
// @Param client_id path int true "EOR client profile ID"
// @Success 200 {object} utils.APIResponse{data=[]models.EORAgreement} "Agreements retrieved"
// @Router /api/v1/eor/clients/{client_id}/agreements [get]
func (h *EORHandler) ListAgreements(c *gin.Context) {
	clientID, err := parseIDParam(c, "client_id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid EOR client ID", err)
		return
	}

	agreements, err := h.eorService.ListAgreements(clientID)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list agreements", err)
		return
	}

	utils.SuccessResponse(c, "Agreements retrieved successfully", agreements)
}

// CreatePlacement places an employee with an EOR client
// @Summary Create EOR placement
// @Tags eor
// @Accept json
// @Produce json
// @Param request body models.EORPlacement true "Placement"
// @Success 201 {object} utils.APIResponse{data=models.EORPlacement} "Placement created"
// @Failure 400 {object} utils.APIResponse "Agreement not active or invalid request"
// @Router /api/v1/eor/placements [post]
func (h *EORHandler) CreatePlacement(c *gin.Context) {
	var placement models.EORPlacement
	if err := c.ShouldBindJSON(&placement); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	created, err := h.eorService.CreatePlacement(&placement)
	if err != nil {
		h.respondEORError(c, err, "Failed to create placement")
		return
	}

	utils.CreatedResponse(c, "Placement created successfully", created)
}

// TerminatePlacement ends an active placement
// @Summary Terminate EOR placement
// @Tags eor
// @Accept json
// @Produce json
// @Param id path int true "Placement ID"
// @Param request body TerminatePlacementRequest true "Termination request"
// @Success 200 {object} utils.APIResponse{data=models.EORPlacement} "Placement terminated"
// @Failure 400 {object} utils.APIResponse "Placement not active"
// @Failure 404 {object} utils.APIResponse "Placement not found"
// @Router /api/v1/eor/placements/{id}/terminate [post]
func (h *EORHandler) TerminatePlacement(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid placement ID", err)
		return
	}

	var req TerminatePlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		utils.BadRequestResponse(c, "end_date must be in YYYY-MM-DD format", err)
		return
	}

	placement, err := h.eorService.TerminatePlacement(id, endDate)
	if err != nil {
		h.respondEORError(c, err, "Failed to terminate placement")
		return
	}

	utils.SuccessResponse(c, "Placement terminated successfully", placement)
}

// ListActivePlacements retrieves active placements for an EOR client
// @Summary List active EOR placements
// @Tags eor
// @Produce json
// @Param client_id path int true "EOR client profile ID"
// @Success 200 {object} utils.APIResponse{data=[]models.EORPlacement} "Placements retrieved"
// @Router /api/v1/eor/clients/{client_id}/placements [get]
func (h *EORHandler) ListActivePlacements(c *gin.Context) {
	clientID, err := parseIDParam(c, "client_id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid EOR client ID", err)
		return
	}

	placements, err := h.eorService.ListActivePlacements(clientID)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list placements", err)
		return
	}

	utils.SuccessResponse(c, "Placements retrieved successfully", placements)
}

func (h *EORHandler) respondEORError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, service.ErrAgreementNotActive),
		errors.Is(err, service.ErrPlacementNotActive),
		errors.Is(err, service.ErrInvalidStatusChange):
		utils.BadRequestResponse(c, message, err)
	default:
		h.logger.WithError(err).Error(message)
		utils.InternalServerErrorResponse(c, message, err)
	}
}
