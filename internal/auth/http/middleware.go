package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/credseal/internal/auth/service"
	authUseCase "github.com/allisson/credseal/internal/auth/usecase"
	apperrors "github.com/allisson/credseal/internal/errors"
	"github.com/allisson/credseal/internal/httputil"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware authenticates requests carrying
// "Authorization: Bearer <token>" (the scheme is case-insensitive).
//
// The plaintext token is hashed with tokenService and resolved through
// tokenUseCase; on success the Token is stored in the request context and
// can be read with GetToken. Missing, malformed, unknown and revoked tokens
// all answer 401. The token itself is never logged.
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token, err := tokenUseCase.Authenticate(c.Request.Context(), tokenService.Hash(plainToken))
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithToken(c.Request.Context(), token))

		logger.Debug("authentication successful",
			slog.String("token_id", token.ID.String()),
			slog.String("token_name", token.Name))

		c.Next()
	}
}
