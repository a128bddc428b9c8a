// internal/auth/auth.go
//
// Admin bearer tokens for the solver API.
// Responsibilities:
//   - Sign HS256 JWTs carrying a subject and expiry.
//   - Verify tokens and expose the subject to handlers via request context.
//
// Only the expensive/mutating endpoints (POST /bench) require a token;
// read-only routes stay open.

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers missing, malformed, expired, or mis-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Signer signs and verifies tokens with one shared secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner returns a Signer. A non-positive ttl defaults to 14 days.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Sign creates a token for subject and returns it with its expiry.
func (s *Signer) Sign(subject string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// Verify parses tokenStr and returns its subject.
func (s *Signer) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// ctxSubjectKey is the context key type for the verified subject.
type ctxSubjectKey struct{}

// Subject returns the verified subject stored by RequireToken.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(ctxSubjectKey{}).(string)
	return s, ok && s != ""
}

// RequireToken enforces a valid bearer token and stores its subject in the
// request context.
func (s *Signer) RequireToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			sub, err := s.Verify(tokenStr)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSubjectKey{}, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
