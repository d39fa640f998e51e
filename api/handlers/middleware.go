package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ranayash24/formbricks/pkg/service"
)

const environmentIDKey = "environmentID"

// EnvironmentAuth authenticates the x-api-key header and stores the key's
// environment id in the request context.
func (h *Handler) EnvironmentAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := h.APIKeys.Authenticate(c.Request.Context(), c.GetHeader("x-api-key"))
		if err != nil {
			if errors.Is(err, service.ErrInvalidAPIKey) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
			return
		}
		c.Set(environmentIDKey, key.EnvironmentID)
		c.Next()
	}
}

// environmentID returns the environment the authenticated key belongs to.
func environmentID(c *gin.Context) uuid.UUID {
	return c.MustGet(environmentIDKey).(uuid.UUID)
}
