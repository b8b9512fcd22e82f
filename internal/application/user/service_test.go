package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ceidigital/backoffice/internal/domain"
)

// --- mocks ---

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *mockRepo) Create(ctx context.Context, u *domain.User, roleNames []string) error {
	u.ID = 10
	return m.Called(ctx, u, roleNames).Error(0)
}
func (m *mockRepo) Update(ctx context.Context, id int64, name *string, active *bool, roleNames []string) error {
	return m.Called(ctx, id, name, active, roleNames).Error(0)
}

func TestCreate_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		if u.Email != "novo@example.com" || !u.Active {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cr3t-pass")) == nil
	}), []string{domain.RoleUser}).Return(nil)
	repo.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10, Email: "novo@example.com"}, nil)

	u, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Name:     " Novo ",
		Email:    " Novo@Example.com ",
		Password: "s3cr3t-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), u.ID)
	repo.AssertExpectations(t)
}

func TestCreate_ExplicitRoles(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything, []string{domain.RoleMaster}).Return(nil)
	repo.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10}, nil)

	_, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "s3cr3t-pass",
		Roles:    []string{domain.RoleMaster},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreate_ConflictPropagates(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrConflict)

	_, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Name:     "Novo",
		Email:    "ja@example.com",
		Password: "s3cr3t-pass",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_RefetchesAfterWrite(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	name := "Renomeado"
	repo.On("Update", mock.Anything, int64(3), &name, (*bool)(nil), []string(nil)).Return(nil)
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Name: name}, nil)

	u, err := svc.Update(context.Background(), 3, domain.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renomeado", u.Name)
}
