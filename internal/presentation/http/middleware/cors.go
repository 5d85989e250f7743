package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/config"
)

// requiredHeaders are accepted whatever CORS_ALLOWED_HEADERS says
var requiredHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", IdempotencyKeyHeader}

// exposedHeaders are readable by browser scripts
var exposedHeaders = []string{
	"Content-Disposition",
	"Content-Length",
	"Content-Type",
	"Retry-After",
	"X-Request-ID",
	IdempotencyReplayedHeader,
}

// CORSMiddleware allows the admin panel and the public site to call the API
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     withRequiredHeaders(cfg.AllowedHeaders),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func withRequiredHeaders(configured []string) []string {
	headers := slices.Clone(configured)
	for _, h := range requiredHeaders {
		if !slices.ContainsFunc(headers, func(c string) bool { return strings.EqualFold(c, h) }) {
			headers = append(headers, h)
		}
	}
	return headers
}
