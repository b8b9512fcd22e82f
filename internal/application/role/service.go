package role

import (
	"context"

	"github.com/ceidigital/backoffice/internal/domain"
)

// Repository is the persistence contract the role service needs.
type Repository interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	EnsureRole(ctx context.Context, name, description string) (*domain.Role, error)
	EnsurePermission(ctx context.Context, name, description, route string) (int64, error)
	AttachPermission(ctx context.Context, roleName, permName string) error
	ListPermissions(ctx context.Context) ([]domain.Permission, error)
}

type Service interface {
	List(ctx context.Context) ([]domain.Role, error)
	Get(ctx context.Context, name string) (*domain.Role, error)
	ListPermissions(ctx context.Context) ([]domain.Permission, error)
	Grant(ctx context.Context, roleName, permName string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Role, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, name string) (*domain.Role, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *service) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	return s.repo.ListPermissions(ctx)
}

// Grant attaches an existing permission to an existing role.
func (s *service) Grant(ctx context.Context, roleName, permName string) error {
	if _, err := s.repo.GetByName(ctx, roleName); err != nil {
		return err
	}
	return s.repo.AttachPermission(ctx, roleName, permName)
}
