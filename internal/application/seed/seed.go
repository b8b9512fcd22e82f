// Package seed guarantees the baseline records the back office needs to
// be usable: the well-known roles, the CADASTRAR_EMPRESA permission, an
// admin identity with the MASTER role and its default company.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ceidigital/backoffice/internal/config"
	"github.com/ceidigital/backoffice/internal/domain"
)

type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User, roleNames []string) error
	AssignRole(ctx context.Context, userID int64, roleName string) error
	SetCompany(ctx context.Context, userID, companyID int64) error
}

type RoleDirectory interface {
	EnsureRole(ctx context.Context, name, description string) (*domain.Role, error)
	EnsurePermission(ctx context.Context, name, description, route string) (int64, error)
	AttachPermission(ctx context.Context, roleName, permName string) error
}

type CompanyDirectory interface {
	GetByDoc(ctx context.Context, docType, docNumber string) (*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
}

// Run is idempotent; it is executed on every startup.
func Run(ctx context.Context, cfg *config.Config, users UserDirectory, roles RoleDirectory, companies CompanyDirectory) error {
	if _, err := roles.EnsureRole(ctx, domain.RoleMaster, "Perfil master (dono) com acesso total à aplicação"); err != nil {
		return fmt.Errorf("seed: ensure MASTER: %w", err)
	}
	if _, err := roles.EnsureRole(ctx, domain.RoleUser, "Perfil de usuário padrão"); err != nil {
		return fmt.Errorf("seed: ensure USER: %w", err)
	}
	if _, err := roles.EnsureRole(ctx, domain.RoleAdminMain, "Perfil admin legado com acesso total (compatibilidade)"); err != nil {
		return fmt.Errorf("seed: ensure ADMIN_MAIN: %w", err)
	}

	if _, err := roles.EnsurePermission(ctx, "CADASTRAR_EMPRESA", "Cadastrar novas empresas", "/empresas"); err != nil {
		return fmt.Errorf("seed: ensure permission: %w", err)
	}
	if err := roles.AttachPermission(ctx, domain.RoleMaster, "CADASTRAR_EMPRESA"); err != nil {
		return fmt.Errorf("seed: attach permission: %w", err)
	}

	company, err := ensureAdminCompany(ctx, cfg, companies)
	if err != nil {
		return err
	}
	return ensureAdminUser(ctx, cfg, users, company)
}

func ensureAdminCompany(ctx context.Context, cfg *config.Config, companies CompanyDirectory) (*domain.Company, error) {
	docType := strings.ToUpper(strings.TrimSpace(cfg.AdminCompanyDocType))
	if docType == "" {
		docType = domain.DocTypeCNPJ
	}
	docNumber := digitsOnly(cfg.AdminCompanyDocNum)
	if docNumber == "" {
		docNumber = "00000000000000"
	}

	company, err := companies.GetByDoc(ctx, docType, docNumber)
	if err == nil {
		return company, nil
	}
	company = &domain.Company{
		DocType:   docType,
		DocNumber: docNumber,
		LegalName: cfg.AdminCompanyName,
		Blocked:   true,
	}
	if company.LegalName == "" {
		company.LegalName = "Empresa Admin"
	}
	if err := companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("seed: create admin company: %w", err)
	}
	slog.Info("admin company created", "doc_type", docType, "doc_number", docNumber)
	return company, nil
}

func ensureAdminUser(ctx context.Context, cfg *config.Config, users UserDirectory, company *domain.Company) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if u, err := users.GetByEmail(ctx, email); err == nil {
		if !hasRole(u, domain.RoleMaster) {
			if err := users.AssignRole(ctx, u.ID, domain.RoleMaster); err != nil {
				return fmt.Errorf("seed: assign MASTER: %w", err)
			}
			slog.Info("MASTER role added to admin user", "email", email)
		}
		if u.CompanyID == nil {
			if err := users.SetCompany(ctx, u.ID, company.ID); err != nil {
				return fmt.Errorf("seed: link admin company: %w", err)
			}
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash admin password: %w", err)
	}
	u := &domain.User{
		Name:         "Administrador",
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
		CompanyID:    &company.ID,
	}
	if err := users.Create(ctx, u, []string{domain.RoleMaster}); err != nil {
		return fmt.Errorf("seed: create admin user: %w", err)
	}
	slog.Warn("admin (MASTER) user created, change the password in production", "email", email)
	return nil
}

func hasRole(u *domain.User, name string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
