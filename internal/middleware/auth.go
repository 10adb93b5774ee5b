package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"voice-notes-api-server/internal/config"
	"voice-notes-api-server/internal/utils"
)

// APIKeyAuth creates a middleware validating the X-API-Key header against
// the configured key set. Rotation and per-key scoping are not handled here;
// a key is either known or it is not.
func APIKeyAuth(cfg *config.Config) gin.HandlerFunc {
	keys := make(map[string]struct{}, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		keys[key] = struct{}{}
	}

	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			log.Warn().Str("requestId", GetRequestID(c)).Msg("Missing API key")
			utils.Unauthorized(c, "API key is required")
			c.Abort()
			return
		}

		if _, ok := keys[apiKey]; !ok {
			log.Warn().Str("requestId", GetRequestID(c)).Msg("Invalid API key")
			utils.Unauthorized(c, "Invalid API key")
			c.Abort()
			return
		}

		c.Next()
	}
}
