package gateway

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenAudience = "route-gateway"

// tokenSigner issues short-lived HS256 service tokens scoped to one route.
type tokenSigner struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func newTokenSigner(key, issuer string, ttl time.Duration) *tokenSigner {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &tokenSigner{key: []byte(key), issuer: issuer, ttl: ttl, now: time.Now}
}

func (s *tokenSigner) Sign(routeUUID uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   routeUUID.String(),
		Audience:  jwt.ClaimStrings{tokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}
