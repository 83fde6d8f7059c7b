package middleware

import (
	"net/http"
	"strings"

	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/logger"
	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store context keys
const (
	StoreIDKey     = "store_id"
	StoreHeaderKey = "X-Store-ID"
)

// StoreMiddlewareConfig holds configuration for store scoping
type StoreMiddlewareConfig struct {
	// HeaderEnabled accepts X-Store-ID when the request carries no token
	HeaderEnabled bool
	// SkipPaths are paths served without a store
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultStoreConfig returns default store middleware configuration
func DefaultStoreConfig(headerEnabled bool) StoreMiddlewareConfig {
	return StoreMiddlewareConfig{
		HeaderEnabled: headerEnabled,
		SkipPaths:     []string{"/health", "/api/v1/system/ping", "/swagger"},
	}
}

// StoreMiddleware resolves the acting store. The token claim wins; the
// header is only read for anonymous requests.
func StoreMiddleware(cfg StoreMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		storeID := GetJWTStoreID(c)
		method := "jwt"
		if storeID == "" && cfg.HeaderEnabled && GetJWTClaims(c) == nil {
			storeID = c.GetHeader(StoreHeaderKey)
			method = "header"
		}

		if storeID == "" {
			respondStoreError(c, "Store identification required")
			return
		}
		if _, err := uuid.Parse(storeID); err != nil {
			respondStoreError(c, "Invalid store ID format")
			return
		}

		c.Set(StoreIDKey, storeID)
		c.Request = c.Request.WithContext(logger.WithStoreID(c.Request.Context(), storeID))

		if cfg.Logger != nil {
			cfg.Logger.Debug("Store identified",
				zap.String("store_id", storeID),
				zap.String("method", method),
			)
		}

		c.Next()
	}
}

func respondStoreError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeMissingStore, message, GetRequestID(c)))
}

// GetStoreUUID returns the store resolved by StoreMiddleware
func GetStoreUUID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(StoreIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
