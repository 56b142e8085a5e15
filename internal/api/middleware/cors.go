package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/torneohub/torneo-api/internal/config"
)

// ConfigCORS evaluates the allow-list against the live config on every
// request, so a reloaded allowed_cors_domains value takes effect without a
// restart.
func ConfigCORS(conf *config.APIConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		AllowOriginFunc: func(origin string) bool {
			domains := conf.AllowedCORSDomains
			if domains == "*" {
				return true
			}

			for _, allowed := range strings.Split(domains, ",") {
				if strings.TrimSpace(allowed) == origin {
					return true
				}
			}

			return false
		},
	})
}
