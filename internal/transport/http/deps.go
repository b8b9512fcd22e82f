package http

import (
	"context"

	"github.com/ceidigital/backoffice/internal/domain"
)

// UserRepository is the full user persistence surface the router requires:
// the CRUD the user service needs plus the email lookup the authentication
// gate, login and registration flows share.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User, roleNames []string) error
	Update(ctx context.Context, id int64, name *string, active *bool, roleNames []string) error
}

// RoleRepository is the role and permission persistence surface.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	EnsureRole(ctx context.Context, name, description string) (*domain.Role, error)
	EnsurePermission(ctx context.Context, name, description, route string) (int64, error)
	AttachPermission(ctx context.Context, roleName, permName string) error
	ListPermissions(ctx context.Context) ([]domain.Permission, error)
}

// CompanyRepository is the tenant persistence surface.
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	GetByDoc(ctx context.Context, docType, docNumber string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
	Update(ctx context.Context, id int64, req domain.UpdateCompanyRequest) error
}

// ProductRepository is the catalog persistence surface.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id int64, req domain.UpdateProductRequest) error
	SetImageKey(ctx context.Context, id int64, imageKey string) error
	Delete(ctx context.Context, id int64) error
}
