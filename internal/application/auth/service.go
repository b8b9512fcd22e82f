package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ceidigital/backoffice/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult mirrors the login response contract: bearer token, its
// remaining lifetime in seconds and the caller's role names.
type LoginResult struct {
	TokenType   string   `json:"tokenType"`
	AccessToken string   `json:"accessToken"`
	ExpiresIn   int64    `json:"expiresIn"`
	Roles       []string `json:"roles"`
}

// UserDirectory is the slice of the identity collaborator the login flow
// needs.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenIssuer issues bearer tokens and reads back their expiry.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	ExtractExpiry(token string) (time.Time, error)
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type service struct {
	users  UserDirectory
	signer TokenIssuer
	now    func() time.Time
}

func NewService(users UserDirectory, signer TokenIssuer) Service {
	return &service{users: users, signer: signer, now: time.Now}
}

// Login checks the password against the stored bcrypt hash and issues a
// token bound to the normalized email. An unknown email keeps its distinct
// not-found outcome (the front end redirects to sign-up on it); every other
// failure collapses to unauthorized.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("usuario.nao.cadastrado: %w", domain.ErrNotFound)
	}
	if !u.Active {
		return nil, fmt.Errorf("user inactive: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.signer.Issue(u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	expiry, err := s.signer.ExtractExpiry(token)
	if err != nil {
		return nil, fmt.Errorf("extract expiry: %w", err)
	}

	roles := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		roles = append(roles, role.Name)
	}
	return &LoginResult{
		TokenType:   "Bearer",
		AccessToken: token,
		ExpiresIn:   int64(expiry.Sub(s.now()).Seconds()),
		Roles:       roles,
	}, nil
}
