package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ceidigital/backoffice/internal/config"
	"github.com/ceidigital/backoffice/internal/domain"
)

// --- mocks ---

type mockUsers struct{ mock.Mock }

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUsers) Create(ctx context.Context, u *domain.User, roleNames []string) error {
	return m.Called(ctx, u, roleNames).Error(0)
}
func (m *mockUsers) AssignRole(ctx context.Context, userID int64, roleName string) error {
	return m.Called(ctx, userID, roleName).Error(0)
}
func (m *mockUsers) SetCompany(ctx context.Context, userID, companyID int64) error {
	return m.Called(ctx, userID, companyID).Error(0)
}

type mockRoles struct{ mock.Mock }

func (m *mockRoles) EnsureRole(ctx context.Context, name, description string) (*domain.Role, error) {
	args := m.Called(ctx, name, description)
	return &domain.Role{Name: name}, args.Error(1)
}
func (m *mockRoles) EnsurePermission(ctx context.Context, name, description, route string) (int64, error) {
	args := m.Called(ctx, name, description, route)
	return int64(args.Int(0)), args.Error(1)
}
func (m *mockRoles) AttachPermission(ctx context.Context, roleName, permName string) error {
	return m.Called(ctx, roleName, permName).Error(0)
}

type mockCompanies struct{ mock.Mock }

func (m *mockCompanies) GetByDoc(ctx context.Context, docType, docNumber string) (*domain.Company, error) {
	args := m.Called(ctx, docType, docNumber)
	if c, _ := args.Get(0).(*domain.Company); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCompanies) Create(ctx context.Context, c *domain.Company) error {
	c.ID = 1
	return m.Called(ctx, c).Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		AdminEmail:          "admin@example.com",
		AdminPassword:       "admin-pass-123",
		AdminCompanyDocType: "CNPJ",
		AdminCompanyDocNum:  "00000000000000",
		AdminCompanyName:    "Empresa Admin",
	}
}

func expectBaseline(roles *mockRoles) {
	roles.On("EnsureRole", mock.Anything, domain.RoleMaster, mock.Anything).Return(nil, nil)
	roles.On("EnsureRole", mock.Anything, domain.RoleUser, mock.Anything).Return(nil, nil)
	roles.On("EnsureRole", mock.Anything, domain.RoleAdminMain, mock.Anything).Return(nil, nil)
	roles.On("EnsurePermission", mock.Anything, "CADASTRAR_EMPRESA", mock.Anything, "/empresas").Return(1, nil)
	roles.On("AttachPermission", mock.Anything, domain.RoleMaster, "CADASTRAR_EMPRESA").Return(nil)
}

func TestRun_FreshDatabase(t *testing.T) {
	users := new(mockUsers)
	roles := new(mockRoles)
	companies := new(mockCompanies)
	expectBaseline(roles)

	companies.On("GetByDoc", mock.Anything, "CNPJ", "00000000000000").Return(nil, domain.ErrNotFound)
	companies.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Company) bool {
		return c.Blocked && c.LegalName == "Empresa Admin"
	})).Return(nil)
	users.On("GetByEmail", mock.Anything, "admin@example.com").Return(nil, domain.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		if !u.Active || u.CompanyID == nil {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin-pass-123")) == nil
	}), []string{domain.RoleMaster}).Return(nil)

	require.NoError(t, Run(context.Background(), testConfig(), users, roles, companies))
	users.AssertExpectations(t)
	roles.AssertExpectations(t)
	companies.AssertExpectations(t)
}

func TestRun_Idempotent(t *testing.T) {
	users := new(mockUsers)
	roles := new(mockRoles)
	companies := new(mockCompanies)
	expectBaseline(roles)

	companyID := int64(1)
	companies.On("GetByDoc", mock.Anything, "CNPJ", "00000000000000").
		Return(&domain.Company{ID: companyID, Blocked: true}, nil)
	users.On("GetByEmail", mock.Anything, "admin@example.com").Return(&domain.User{
		ID:        9,
		Active:    true,
		CompanyID: &companyID,
		Roles:     []domain.Role{{Name: domain.RoleMaster}},
	}, nil)

	require.NoError(t, Run(context.Background(), testConfig(), users, roles, companies))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	companies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_ExistingAdminMissingMasterRole(t *testing.T) {
	users := new(mockUsers)
	roles := new(mockRoles)
	companies := new(mockCompanies)
	expectBaseline(roles)

	companyID := int64(1)
	companies.On("GetByDoc", mock.Anything, "CNPJ", "00000000000000").
		Return(&domain.Company{ID: companyID}, nil)
	users.On("GetByEmail", mock.Anything, "admin@example.com").Return(&domain.User{
		ID:        9,
		Active:    true,
		CompanyID: &companyID,
		Roles:     []domain.Role{{Name: domain.RoleUser}},
	}, nil)
	users.On("AssignRole", mock.Anything, int64(9), domain.RoleMaster).Return(nil)

	require.NoError(t, Run(context.Background(), testConfig(), users, roles, companies))
	users.AssertExpectations(t)
}
