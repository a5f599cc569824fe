// Package auth provides JWT session tokens and the middleware that turns
// them into a per-request session context.
//
// SESSION FLOW:
//  1. Register or login issues a signed JWT carrying the account id
//  2. The handler stores it in an HttpOnly cookie
//  3. On every API call the middleware reads the cookie, validates the
//     token and puts the account id into the request context
//  4. Logout clears the cookie; the token is never stored server-side
//
// Because the token is the whole session, "stay logged in" is just a
// longer expiry plus a persistent cookie. Until that expiry, or an
// explicit logout, the session survives restarts of the client.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "kebapp"

// TokenService signs and verifies session tokens with an HMAC secret.
// The same secret must be used for both operations.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims; the account identifier travels in
// the standard "sub" (Subject) claim.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates a signed session token for accountID that expires
// after ttl. The caller picks the ttl: the short session lifetime, or the
// long stay-logged-in lifetime.
func (s *TokenService) Generate(accountID string, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the account id
// it encodes.
//
// The jwt library checks the signature, the expiry and the issuer.
// jwt.WithValidMethods pins HS256 so a token claiming another algorithm
// is rejected outright.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
