package middleware

import (
	"net/http"

	"github.com/ceodigitcare/fastflow01-sub002/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role checks
type RoleConfig struct {
	// AllowAnonymous lets requests without token claims through. It is set
	// when tokens are optional, so local setups keep full access.
	AllowAnonymous bool
	Logger         *zap.Logger
}

// RequireAnyRole creates middleware that requires one of roles in the token
func RequireAnyRole(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			if cfg.AllowAnonymous {
				c.Next()
				return
			}
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		for _, role := range roles {
			if claims.HasRole(role) {
				c.Next()
				return
			}
		}
		handleRoleDenied(c, cfg, roles, "User lacks required role")
	}
}

func handleRoleDenied(c *gin.Context, cfg RoleConfig, required []string, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Role check failed",
			zap.String("reason", reason),
			zap.String("user_id", GetJWTUserID(c)),
			zap.Strings("required_roles", required),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeForbidden,
		"Access denied: insufficient role",
		GetRequestID(c),
	))
}
