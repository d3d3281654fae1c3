package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkform/blog-backend/internal/auth/domain"
	"github.com/inkform/blog-backend/internal/common/clock"
	commoncrypto "github.com/inkform/blog-backend/internal/common/crypto"
	"github.com/inkform/blog-backend/internal/common/jwtverify"
	"github.com/inkform/blog-backend/internal/observability/metrics"
)

type TokenIssuer struct {
	jwtSecret   []byte
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	tokenTTL    time.Duration
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	tokenTTL time.Duration,
	clock clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:   []byte(jwtSecret),
		idGenerator: idGenerator,
		clock:       clock,
		tokenTTL:    tokenTTL,
	}
}

// IssueToken signs an access token bound to the user id, valid for the
// configured window (7 days by default).
func (ti *TokenIssuer) IssueToken(user domain.User) (string, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub": string(user.ID),
		"usr": user.Username,
		"jti": jti,
		"exp": now.Add(ti.tokenTTL).Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.AccessTokensIssued.Inc()
	return tokenString, nil
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret)
}
