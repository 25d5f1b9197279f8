package service

import (
	"errors"
	"fmt"
	"time"

	"payment-router/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// merchantClaims is the JWT body issued to merchants. The subject is the merchant id.
type merchantClaims struct {
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService using HS256 JWT.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
	}
}

// Generate signs a bearer token for merchantID.
func (s *JWTTokenService) Generate(merchantID string) (string, time.Time, error) {
	if merchantID == "" {
		return "", time.Time{}, errors.New("merchant id is required")
	}
	now := s.now()
	expiresAt := now.Add(s.expiry)

	claims := merchantClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   merchantID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate verifies signature, issuer and expiry and returns the merchant id.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	claims := &merchantClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("missing subject claim")
	}
	return &ports.TokenClaims{MerchantID: claims.Subject}, nil
}
