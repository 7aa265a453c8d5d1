package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/stocker/backend/internal/application/identity"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	UserIDKey    = "auth_user_id"
	UserEmailKey = "auth_user_email"
	TokenIDKey   = "auth_token_id"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// Auth validates the bearer access token and resolves the tenant context.
// Every authenticated route is scoped to the acting user's own data, so
// the user ID doubles as the tenant ID downstream.
func Auth(tokens appidentity.TokenService, blacklist appidentity.TokenBlacklist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(header, bearerPrefix)
		claims, err := tokens.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		if blacklist != nil && claims.TokenID != "" {
			revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.TokenID)
			if err != nil {
				// Fail open: a blacklist outage must not take auth down
				logger.Error("token blacklist check failed",
					zap.String("token_id", claims.TokenID), zap.Error(err))
			} else if revoked {
				abortUnauthorized(c, "Token has been revoked")
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(TokenIDKey, claims.TokenID)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the gin context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(shared.CodeAuthentication, message))
}
