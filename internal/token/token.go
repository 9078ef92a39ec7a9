// Package token issues and verifies signed, time-limited identity tokens.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of an issued token.
const DefaultTTL = 24 * time.Hour

// Verification failures. ErrMissing maps to 401, the rest to 403.
var (
	ErrMissing        = errors.New("token missing")
	ErrInvalid        = errors.New("token invalid")
	ErrExpired        = errors.New("token expired")
	ErrMissingSubject = errors.New("token has no user id")
)

// ErrNoSigningKey is returned by New when the signing key is empty.
var ErrNoSigningKey = errors.New("token: empty signing key")

// Claims is the payload of an access token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 tokens.
type Service struct {
	key    []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

// New constructs a Service. ttl <= 0 falls back to DefaultTTL.
func New(key []byte, ttl time.Duration) (*Service, error) {
	if len(key) == 0 {
		return nil, ErrNoSigningKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{key: key, ttl: ttl, leeway: 30 * time.Second, now: time.Now}, nil
}

// Issue creates a signed token for userID and returns it with its expiry.
func (s *Service) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	return signed, exp, err
}

// Verify checks signature and expiry and returns the embedded user id.
func (s *Service) Verify(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, ErrMissing
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return uuid.Nil, ErrExpired
	case err != nil:
		return uuid.Nil, ErrInvalid
	}

	sub := claims.UserID
	if sub == "" {
		sub = claims.Subject
	}
	if sub == "" {
		return uuid.Nil, ErrMissingSubject
	}
	id, err := uuid.FromString(sub)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalid
	}
	return id, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) (string, error) {
	v := strings.TrimSpace(header)
	if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
		if t := strings.TrimSpace(v[7:]); t != "" {
			return t, nil
		}
	}
	return "", ErrMissing
}
