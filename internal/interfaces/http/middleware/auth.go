package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/upkeep-inc/upkeep/internal/infrastructure/auth"
	"github.com/upkeep-inc/upkeep/internal/shared/constants"
	"github.com/upkeep-inc/upkeep/internal/shared/errors"
	"github.com/upkeep-inc/upkeep/internal/shared/logger"
	"github.com/upkeep-inc/upkeep/internal/shared/utils"
)

// tokenQueryParam carries the access token for clients that cannot set
// headers, such as browser WebSocket connections.
const tokenQueryParam = "token"

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing or malformed authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			if stderrors.Is(err, jwt.ErrTokenExpired) {
				utils.ErrorResponseWithError(c, errors.NewTokenExpiredError("access token"))
			} else {
				m.logger.Warnw("rejected access token", "path", c.FullPath(), "error", err)
				utils.ErrorResponseWithError(c, errors.NewTokenInvalidError("access token"))
			}
			c.Abort()
			return
		}

		// Sliding session: hand out a fresh token shortly before expiry.
		if m.jwtService.ShouldRefresh(claims) {
			if refreshed, err := m.jwtService.Refresh(claims); err == nil {
				c.Header(constants.HeaderXRefreshedToken, refreshed.AccessToken)
			} else {
				m.logger.Warnw("failed to refresh token", "username", claims.Username, "error", err)
			}
		}

		c.Set(constants.ContextKeyUsername, claims.Username)
		c.Set(constants.ContextKeyUserRole, claims.Role.String())

		c.Next()
	}
}

// bearerToken reads the token from the query string or the Authorization
// header. The query wins when both are present.
func bearerToken(c *gin.Context) (string, bool) {
	if token := c.Query(tokenQueryParam); token != "" {
		return token, true
	}
	scheme, token, found := strings.Cut(c.GetHeader(constants.HeaderAuthorization), " ")
	if !found || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

// CurrentUsername returns the authenticated username, or "" outside
// RequireAuth.
func CurrentUsername(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUsername)
}
