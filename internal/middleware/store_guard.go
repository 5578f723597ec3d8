package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/studio-api/pkg/errors"
	"github.com/noah-isme/studio-api/pkg/response"
)

// RequireStore rejects data routes before any store call when no database is configured.
func RequireStore(configured bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !configured {
			response.Error(c, appErrors.ErrStoreNotConfigured)
			return
		}
		c.Next()
	}
}
