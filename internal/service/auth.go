// Package service contains application services: credentials, ownership,
// inventory and the owner-gated profile and medication operations.
package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	pkgcrypto "github.com/and161185/medtrack/internal/crypto"
	"github.com/and161185/medtrack/internal/errs"
	"github.com/and161185/medtrack/internal/model"
	"github.com/and161185/medtrack/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// TokenIssuer signs access tokens for a user.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

// AuthService defines registration and login.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, email, password string, name *string) (model.User, error)
	// VerifyCredentials returns the user when email and password match.
	VerifyCredentials(ctx context.Context, email, password string) (model.User, error)
	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, email, password string) (model.Token, model.User, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates input and stores a user with a salted Argon2id hash.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string, name *string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, errs.Invalid("email and password are required")
	}
	if !strings.Contains(email, "@") {
		return model.User{}, errs.Invalid("email is not valid")
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return model.User{}, errs.Invalid("password must be at least 6 characters")
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return model.User{}, err
	}
	hash, salt, err := pkgcrypto.NewPasswordHash([]byte(password))
	if err != nil {
		return model.User{}, err
	}

	u := &model.User{
		ID:      uid,
		Email:   email,
		PwdHash: hash,
		PwdSalt: salt,
		Name:    trimOptional(name),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return model.User{}, err
	}
	return *u, nil
}

// VerifyCredentials never tells a missing account from a wrong password.
func (s *AuthServiceImpl) VerifyCredentials(ctx context.Context, email, password string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.User{}, errs.Invalid("email and password are required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		pkgcrypto.BurnVerify([]byte(password))
		return model.User{}, errs.ErrUnauthorized
	case err != nil:
		return model.User{}, err
	}
	if !pkgcrypto.VerifyPassword([]byte(password), u.PwdSalt, u.PwdHash) {
		return model.User{}, errs.ErrUnauthorized
	}
	return *u, nil
}

// Login authenticates and issues a token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (model.Token, model.User, error) {
	u, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return model.Token{}, model.User{}, err
	}
	access, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return model.Token{}, model.User{}, err
	}
	return model.Token{AccessToken: access, ExpiresAt: exp}, u, nil
}

// trimOptional trims v and maps blank to nil.
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
