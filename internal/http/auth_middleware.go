package http

import (
	"log/slog"
	"strings"

	"github.com/allisson/go-pwdhash"
	"github.com/gin-gonic/gin"

	"github.com/allisson/kms/internal/httputil"
	kmsDomain "github.com/allisson/kms/internal/kms/domain"
)

// AuthenticationMiddleware validates a Bearer token in the Authorization
// header against a stored Argon2id hash. Every failure maps to the access
// denied wire error.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
func AuthenticationMiddleware(tokenHash string, logger *slog.Logger) gin.HandlerFunc {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			abortAccessDenied(c, logger)
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			abortAccessDenied(c, logger)
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			abortAccessDenied(c, logger)
			return
		}

		ok, err := hasher.Verify([]byte(plainToken), tokenHash)
		if err != nil || !ok {
			logger.Debug("authentication failed: invalid token")
			abortAccessDenied(c, logger)
			return
		}

		c.Next()
	}
}

func abortAccessDenied(c *gin.Context, logger *slog.Logger) {
	httputil.HandleErrorGin(c, kmsDomain.NewAccessDenied("access denied"), logger)
	c.Abort()
}
