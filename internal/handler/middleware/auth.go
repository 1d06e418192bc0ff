package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/pkg/cookie"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrTokenRequired     = errs.Unauthorized("access token required")
	ErrTokenInvalid      = errs.Unauthorized("invalid or expired token")
	ErrInsufficientRole  = errs.Forbidden("insufficient permissions")
	errMissingAuthorizer = errs.New("role check used without RequireAuth")
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth accepts a Bearer header first, then the role cookie slots.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token, _ = cookie.FirstToken(c)
		}

		if token == "" {
			httperr.Abort(c, ErrTokenRequired)
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed", "error", err.Error(), "request_id", GetRequestID(c))
			httperr.Abort(c, ErrTokenInvalid)
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUserRoleKey, claims.Role)
		c.Set("jwt_claims", map[string]any{
			"user_id": claims.UserID.String(),
			"role":    string(claims.Role),
		})
		c.Next()
	}
}

// RequireRoles admits only the listed roles. There is no hierarchy: a
// SUPER_ADMIN must be listed explicitly.
func (m *AuthMiddleware) RequireRoles(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthorizer, "Internal server error", nil)
			return
		}

		if !slices.Contains(roles, role) {
			httperr.Abort(c, ErrInsufficientRole)
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetActor bundles the authenticated identity for domain calls.
func GetActor(c *gin.Context) (order.Actor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return order.Actor{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return order.Actor{}, false
	}
	return order.Actor{UserID: id, Role: role}, true
}
