package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/service"
	"hr-portal-svc/pkg/logger"
	"hr-portal-svc/pkg/utils"
)

// RegisterRequest represents the request for user registration
type RegisterRequest struct {
	Username string          `json:"username" binding:"required,min=3,max=50"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"required,oneof=ADMIN EMPLOYER EMPLOYEE EOR_CLIENT"`
}

// LoginRequest represents the request for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the user it belongs to
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	accountService service.AccountService
	logger         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(accountService service.AccountService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Register creates a new user account
// @Summary Register a new user
// @Description Create a user account with one of the platform roles
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} utils.APIResponse{data=models.User} "User created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Username or email already taken"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	user, err := h.accountService.Register(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		h.logger.WithError(err).Error("Failed to register user")
		utils.ConflictResponse(c, "Failed to register user", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered successfully")

	utils.CreatedResponse(c, "User registered successfully", user)
}

// Login authenticates a user and issues a JWT
// @Summary Log in
// @Description Verify credentials and issue a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} utils.APIResponse{data=LoginResponse} "Login successful"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	token, user, err := h.accountService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserBlocked) {
			utils.ForbiddenResponse(c, "User account is blocked")
			return
		}
		utils.UnauthorizedResponse(c, "Invalid email or password")
		return
	}

	h.logger.WithField("user_id", user.ID).Info("User logged in")

	utils.SuccessResponse(c, "Login successful", LoginResponse{
		Token: token,
		User:  user,
	})
}
