// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/financaspro/backend/internal/application/adapter"
	domainerror "github.com/financaspro/backend/internal/domain/error"
)

const sessionIssuer = "financaspro"

// sessionClaims represents the custom claims carried by session tokens.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// sessionService implements the adapter.SessionService interface with
// HS256-signed JWTs. Sessions are stateless: no store lookup happens on
// Verify, expiry is enforced by the token itself.
type sessionService struct {
	secret []byte
}

// NewSessionService creates a new session service instance.
func NewSessionService(secret string) adapter.SessionService {
	return &sessionService{
		secret: []byte(secret),
	}
}

// Issue creates a signed session token for the given owner.
func (s *sessionService) Issue(ctx context.Context, ownerID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   ownerID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", domainerror.NewSessionError(
			domainerror.ErrCodeInvalidToken,
			"failed to sign session token",
			err,
		)
	}
	return signed, nil
}

// Verify validates a session token and returns the typed Session. Every
// failure maps to a session error so the entrypoint can answer 401 without
// inspecting jwt internals.
func (s *sessionService) Verify(ctx context.Context, token string) (*adapter.Session, error) {
	if token == "" {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeMissingToken,
			"session token is required",
			domainerror.ErrMissingToken,
		)
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domainerror.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.NewSessionError(
				domainerror.ErrCodeExpiredToken,
				"session token has expired",
				domainerror.ErrExpiredToken,
			)
		}
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeInvalidToken,
			"failed to parse session token",
			err,
		)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeInvalidToken,
			"invalid session token claims",
			domainerror.ErrInvalidToken,
		)
	}

	ownerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeInvalidToken,
			"invalid owner ID in session token",
			err,
		)
	}

	return &adapter.Session{
		OwnerID:   ownerID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
