package middleware

import (
	"net/http"
	"strconv"

	"tourneyhub/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	// UserIdHeader is set by the upstream authentication layer.
	UserIdHeader = "X-User-ID"
	userIdKey    = "userId"
)

// RequireUser rejects requests without a valid user id.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.ParseUint(c.GetHeader(UserIdHeader), 10, 64)
		if err != nil || userId == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.UserMessage(apperrors.ErrUnauthorized)})
			return
		}

		c.Set(userIdKey, uint(userId))
		c.Next()
	}
}

// UserId returns the user set by RequireUser.
func UserId(c *gin.Context) uint {
	return c.GetUint(userIdKey)
}
