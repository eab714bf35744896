package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/handler/httperr"
	"condo-reservations/internal/pkg/errs"
	"condo-reservations/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errMissingToken  = errs.New("access token required")
	errNotAdminRoute = errs.New("administrator role required")
)

// TokenVerifier resolves a bearer token into the acting user.
type TokenVerifier interface {
	Actor(token string) (user.Actor, error)
}

var _ TokenVerifier = (*jwt.Service)(nil)

type AuthMiddleware struct {
	verifier TokenVerifier
}

const (
	ctxActorKey    = "actor"
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		actor, err := m.verifier.Actor(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

// RequireAdministrator must run after RequireAuth.
func (m *AuthMiddleware) RequireAdministrator() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Unauthorized", nil)
			return
		}
		if !actor.IsAdministrator() {
			httperr.AbortWithError(c, http.StatusForbidden, errNotAdminRoute, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

// SetActor stores the authenticated caller. Tests use it to stub authentication.
func SetActor(c *gin.Context, actor user.Actor) {
	c.Set(ctxActorKey, actor)
	c.Set(ctxUserIDKey, actor.ID())
	c.Set(ctxUserRoleKey, actor.Role())
	c.Set("jwt_claims", map[string]any{
		"user_id": actor.ID().String(),
		"role":    actor.Role().String(),
	})
}

func GetActor(c *gin.Context) (user.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return user.Actor{}, false
	}
	actor, ok := v.(user.Actor)
	return actor, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}
