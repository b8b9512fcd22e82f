package user

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ceidigital/backoffice/internal/domain"
)

// Repository is the persistence contract the user service needs.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User, roleNames []string) error
	Update(ctx context.Context, id int64, name *string, active *bool, roleNames []string) error
}

type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	Update(ctx context.Context, id int64, req domain.UpdateUserRequest) (*domain.User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Create hashes the password and stores a new active user. Role names
// default to USER when omitted.
func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}
	u := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Active:       true,
		CompanyID:    req.CompanyID,
	}
	if err := s.repo.Create(ctx, u, roles); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, u.ID)
}

func (s *service) Update(ctx context.Context, id int64, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := s.repo.Update(ctx, id, req.Name, req.Active, req.Roles); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
