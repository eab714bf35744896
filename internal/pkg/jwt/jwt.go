package jwt

import (
	"time"

	"condo-reservations/internal/domain/user"
	"condo-reservations/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errs.New("invalid token")
	ErrExpiredToken = errs.New("token expired")
)

// Claims are issued by the condominium's identity provider; this service only verifies them.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
}

func NewService(secretKey string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// GenerateToken signs a token for actor. Used by tests and local tooling.
func (s *Service) GenerateToken(actor user.Actor) (string, error) {
	return s.generate(actor, time.Now())
}

func (s *Service) generate(actor user.Actor, now time.Time) (string, error) {
	claims := Claims{
		UserID: actor.ID(),
		Role:   actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errs.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, errs.Wrap(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Actor validates the token and resolves its claims into an acting user.
func (s *Service) Actor(tokenString string) (user.Actor, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return user.Actor{}, err
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Actor{}, errs.Wrap(ErrInvalidToken, err.Error())
	}
	actor, err := user.NewActor(claims.UserID, role)
	if err != nil {
		return user.Actor{}, errs.Wrap(ErrInvalidToken, err.Error())
	}
	return actor, nil
}
