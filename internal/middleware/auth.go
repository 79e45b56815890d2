package middleware

import (
	"context"
	"strings"

	"health_edu_backend/internal/model"
	"health_edu_backend/internal/util"
	"health_edu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionResolver turns a bearer token into a session; an empty token is
// anonymous and yields (nil, nil).
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// TryAuth attaches the session when a valid token is present. Requests
// without a token continue anonymously in demo mode; a bad token is rejected.
func TryAuth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := resolver.CurrentSession(c.Request.Context(), token)
		if err != nil {
			logger.Log.Debug("rejected bearer token", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if session != nil {
			c.Set(util.ContextSessionKey, session)
		}
		c.Next()
	}
}

// RequireAuth must run after TryAuth.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetSessionFromContext(c) == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
