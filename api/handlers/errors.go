package handlers

import (
	"net/http"

	"tourneyhub/api/middleware"
	"tourneyhub/pkg/apperrors"
	"tourneyhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Write the user facing message of a error, the detail only goes to the logs.
func respondError(c *gin.Context, logger *logger.NewLogger, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError || status == http.StatusBadGateway {
		logger.Errorf("request %s %s (%s) failed: %v", c.Request.Method, c.FullPath(), middleware.GetRequestId(c), err)
	}

	c.JSON(status, gin.H{"error": apperrors.UserMessage(err)})
}

// Binding errors are returned as is.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
