package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
)

// SessionTTL is the fixed lifetime of a session token.
const SessionTTL = time.Hour

type sessionClaims struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. Tokens are not
// persisted and cannot be revoked; each stays valid until its exp claim.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for user carrying its ID and nickname.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now()
	claims := sessionClaims{
		UserID:   user.ID,
		Nickname: user.Nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. Any failure is reported as
// domain.ErrForbidden.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrForbidden, err)
	}
	if !tkn.Valid || claims.UserID == "" {
		return nil, domain.ErrForbidden
	}

	return &domain.Claims{
		UserID:    claims.UserID,
		Nickname:  claims.Nickname,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
