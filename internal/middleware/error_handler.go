package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-portal-svc/pkg/utils"
)

// ErrorHandler recovers from panics and converts them to 500 responses
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				utils.InternalServerErrorResponse(c, "Internal server error", fmt.Errorf("%v", r))
				c.Abort()
			}
		}()
		c.Next()
	}
}

// NoRouteHandler handles requests to unknown routes
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.NotFoundResponse(c, fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path))
	}
}

// NoMethodHandler handles requests with unsupported methods
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, utils.APIResponse{
			Success: false,
			Message: fmt.Sprintf("Method %s not allowed on %s", c.Request.Method, c.Request.URL.Path),
		})
	}
}
