package middleware

import (
	"errors"
	"strings"

	"github.com/EkeneDeProgram/909ineFoods/apperrors"
	"github.com/EkeneDeProgram/909ineFoods/logger"
	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/repository"
	"github.com/EkeneDeProgram/909ineFoods/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// SessionCookie is the http-only cookie carrying the session token.
	SessionCookie = "jwt"

	AccountContextKey = "accountID"
	ClaimsContextKey  = "sessionClaims"
)

// SessionAuth accepts a session token of the given kind from the jwt
// cookie or a Bearer Authorization header. store may be nil, in which case
// revocation is not checked.
func SessionAuth(tokens services.TokenService, store repository.SessionStore, kind models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			abortWith(c, apperrors.Unauthenticated("Unauthenticated!"))
			return
		}

		claims, err := tokens.Parse(raw, kind)
		if err != nil {
			abortWith(c, apperrors.Unauthenticated("Invalid token"))
			return
		}

		if store != nil {
			revoked, err := store.IsRevoked(c.Request.Context(), claims.TokenID)
			if err != nil {
				logger.Error(c, "session revocation check failed", err, zap.String("jti", claims.TokenID))
				abortWith(c, apperrors.Internal(err))
				return
			}
			if revoked {
				abortWith(c, apperrors.Unauthenticated("Invalid token"))
				return
			}
		}

		c.Set(AccountContextKey, claims.AccountID)
		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

func abortWith(c *gin.Context, err *apperrors.Error) {
	c.AbortWithStatusJSON(err.Code, gin.H{"detail": err.Message})
}

// GetAccountID returns the id of the authenticated account.
func GetAccountID(c *gin.Context) (uuid.UUID, error) {
	if val, ok := c.Get(AccountContextKey); ok {
		if id, ok := val.(uuid.UUID); ok && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, errors.New("account ID not found in context")
}

// GetClaims returns the claims of the current session, or nil.
func GetClaims(c *gin.Context) *services.SessionClaims {
	if val, ok := c.Get(ClaimsContextKey); ok {
		if claims, ok := val.(*services.SessionClaims); ok {
			return claims
		}
	}
	return nil
}
