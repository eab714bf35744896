//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/pkg/config"
	"condo-reservations/internal/pkg/jwt"
	"condo-reservations/tests/common/builder"

	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens with the same secret the application under test verifies.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, actor user.Actor) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(actor)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, actor user.Actor) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, -time.Minute).GenerateToken(actor)
	require.NoError(t, err)
	return token
}

// Resident returns a fresh resident and a token for it.
func (h *JWTHelper) Resident(t *testing.T) (user.Actor, string) {
	t.Helper()
	actor := builder.NewResident()
	return actor, h.GenerateToken(t, actor)
}

// Administrator returns a fresh administrator and a token for it.
func (h *JWTHelper) Administrator(t *testing.T) (user.Actor, string) {
	t.Helper()
	actor := builder.NewAdministrator()
	return actor, h.GenerateToken(t, actor)
}
