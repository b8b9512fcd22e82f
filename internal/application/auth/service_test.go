package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ceidigital/backoffice/internal/domain"
	jwtinfra "github.com/ceidigital/backoffice/internal/infrastructure/jwt"
)

// --- mocks ---

type mockUserDirectory struct{ mock.Mock }

func (m *mockUserDirectory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           1,
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []domain.Role{{Name: domain.RoleUser}, {Name: domain.RoleMaster}},
	}
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserDirectory)
	signer := jwtinfra.NewSigner("0123456789abcdef0123456789abcdef", time.Hour)
	svc := NewService(users, signer)

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(activeUser(t, "s3cr3t-pass"), nil)

	res, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  User@Example.com ",
		Password: "s3cr3t-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.ElementsMatch(t, []string{domain.RoleUser, domain.RoleMaster}, res.Roles)
	assert.InDelta(t, 3600, res.ExpiresIn, 5)
	assert.True(t, signer.Verify(res.AccessToken, "user@example.com"))
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(mockUserDirectory)
	svc := NewService(users, jwtinfra.NewSigner("0123456789abcdef0123456789abcdef", time.Hour))

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "usuario.nao.cadastrado")
}

func TestLogin_InactiveUser(t *testing.T) {
	users := new(mockUserDirectory)
	svc := NewService(users, jwtinfra.NewSigner("0123456789abcdef0123456789abcdef", time.Hour))

	u := activeUser(t, "s3cr3t-pass")
	u.Active = false
	users.On("GetByEmail", mock.Anything, "user@example.com").Return(u, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "s3cr3t-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserDirectory)
	svc := NewService(users, jwtinfra.NewSigner("0123456789abcdef0123456789abcdef", time.Hour))

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(activeUser(t, "s3cr3t-pass"), nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
