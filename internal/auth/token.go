// Package auth issues and verifies the bearer tokens that authenticate
// board users. Tokens are self-contained: possession implies
// authentication and expiry is the only deauthentication mechanism.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = time.Hour

// Verification failures form a closed set. Callers branch on these with
// errors.Is, never on error strings.
var (
	// ErrExpiredToken means the token was well-formed and correctly signed
	// but its lifetime window has passed.
	ErrExpiredToken = errors.New("token has expired")
	// ErrMalformedToken means the token is unparsable, uses the wrong
	// signing method, or its signature does not match.
	ErrMalformedToken = errors.New("token is malformed or forged")
)

// TokenService issues and verifies signed, time-limited bearer tokens
// embedding a user ID. It is stateless; verification has no side effects.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with the given secret.
// The secret must come from configuration; an empty secret is a
// programming error caught at startup by config validation.
func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue produces a signed token for the given user ID, valid for TokenTTL.
func (s *TokenService) Issue(userID uint) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("token secret not configured")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded user ID.
// It fails with ErrExpiredToken or ErrMalformedToken; no other failures
// escape.
func (s *TokenService) Verify(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrMalformedToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, ErrMalformedToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrMalformedToken
	}

	return uint(userID), nil
}
