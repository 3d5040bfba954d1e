package middleware

import (
	"net/http"
	"strings"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/service"
	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Gin keys set by RequireAuth.
const (
	KeyUserID  = "user_id"
	KeyEmail   = "email"
	KeyIsAdmin = "is_admin"
)

// TokenValidator verifies access tokens.
type TokenValidator interface {
	ValidateToken(token string) (*service.Claims, error)
}

type JWTMiddleware struct {
	tokens TokenValidator
}

func NewJWTMiddleware(tokens TokenValidator) *JWTMiddleware {
	return &JWTMiddleware{tokens: tokens}
}

// RequireAuth validates the bearer token and puts the user into the request context.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithFunction(c.Request.Context(), "middleware", "RequireAuth")

		token, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			logger.WarnWithContext(ctx, "Missing or malformed Authorization header").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Log()
			unauthorized(c)
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			logger.WarnWithContext(ctx, "Invalid or expired token").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Err(err).
				Log()
			unauthorized(c)
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyIsAdmin, claims.IsAdmin)

		reqCtx := ctxutil.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(reqCtx)

		logger.DebugWithContext(reqCtx, "User authenticated").
			String("email", claims.Email).
			Path(c.Request.URL.Path).
			Log()

		c.Next()
	}
}

// RequireAdmin rejects authenticated users without the admin flag. It must run after RequireAuth.
func (m *JWTMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(KeyIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": constants.MsgForbidden})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": constants.MsgUnauthorized})
}
