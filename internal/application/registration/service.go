// Package registration orchestrates self-service sign-up: a verification
// code is issued and delivered, and on confirmation the identity plus its
// default tenant membership are created.
package registration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ceidigital/backoffice/internal/domain"
	"github.com/ceidigital/backoffice/internal/verification"
)

type RequestCodeRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	DocType   string `json:"doc_type" validate:"omitempty,oneof=CNPJ CPF cnpj cpf"`
	DocNumber string `json:"doc_number"`
}

type ConfirmRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Code      string `json:"code" validate:"required"`
	DocType   string `json:"doc_type"`
	DocNumber string `json:"doc_number"`
}

// UserDirectory is the slice of the identity collaborator registration needs.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User, roleNames []string) error
}

// CompanyDirectory looks up and creates tenants by document pair.
type CompanyDirectory interface {
	GetByDoc(ctx context.Context, docType, docNumber string) (*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
}

// Notifier is the outbound-message surface registration uses; all sends
// are best-effort.
type Notifier interface {
	SendEmail(to, subject, body string)
	SendSMS(ctx context.Context, to, body string)
	SendWhatsapp(ctx context.Context, to, body string)
	WhatsappEnabled() bool
}

type Service interface {
	RequestCode(ctx context.Context, req RequestCodeRequest) error
	Confirm(ctx context.Context, req ConfirmRequest) error
}

type Deps struct {
	Codes     *verification.Store
	Users     UserDirectory
	Companies CompanyDirectory
	Notifier  Notifier
	CodeTTL   time.Duration
}

type service struct {
	codes     *verification.Store
	users     UserDirectory
	companies CompanyDirectory
	notifier  Notifier
	codeTTL   time.Duration
}

func NewService(d Deps) Service {
	ttl := d.CodeTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &service{
		codes:     d.Codes,
		users:     d.Users,
		companies: d.Companies,
		notifier:  d.Notifier,
		codeTTL:   ttl,
	}
}

// RequestCode issues a fresh verification code for the email and delivers
// it over email and, when a phone was given, SMS (plus WhatsApp when the
// channel is enabled). Registered emails are rejected up front.
func (s *service) RequestCode(ctx context.Context, req RequestCodeRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("usuario.ja.existe: %w", domain.ErrConflict)
	}

	code := s.codes.Issue(email, req.Phone, req.DocType, req.DocNumber, s.codeTTL)
	slog.Info("verification code issued", "email", email)

	s.notifier.SendEmail(email, "Código de confirmação CEI", "Seu código: "+code)
	if strings.TrimSpace(req.Phone) != "" {
		msg := "CEI: seu código é " + code
		s.notifier.SendSMS(ctx, req.Phone, msg)
		if s.notifier.WhatsappEnabled() {
			s.notifier.SendWhatsapp(ctx, req.Phone, msg)
		}
	}
	return nil
}

// Confirm consumes the code and creates the identity with the default USER
// role, finding or creating its blocked company when a document pair is
// known. Stored registration metadata is read before Verify, which deletes
// the entry on success.
//
// The duplicate check and the final insert are not serialized against a
// concurrent confirm for the same email; the unique constraint on the
// email column resolves that race in the directory.
func (s *service) Confirm(ctx context.Context, req ConfirmRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("usuario.ja.existe: %w", domain.ErrConflict)
	}

	storedType, _ := s.codes.PeekDocType(email)
	storedDigits, _ := s.codes.PeekDocDigits(email)
	if !s.codes.Verify(email, req.Code) {
		return fmt.Errorf("token.invalido.ou.expirado: %w", domain.ErrBadRequest)
	}

	docType := strings.ToUpper(strings.TrimSpace(req.DocType))
	if docType == "" {
		docType = storedType
	}
	docDigits := digitsOnly(req.DocNumber)
	if docDigits == "" {
		docDigits = storedDigits
	}

	var company *domain.Company
	if docType != "" && docDigits != "" {
		var err error
		company, err = s.ensureCompany(ctx, docType, docDigits, req.Name, email)
		if err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
	}
	if company != nil {
		u.CompanyID = &company.ID
	}
	if err := s.users.Create(ctx, u, []string{domain.RoleUser}); err != nil {
		return err
	}
	slog.Info("user registered", "email", email, "company_linked", company != nil)
	return nil
}

// ensureCompany finds the tenant by document pair or creates it blocked,
// pending back-office review.
func (s *service) ensureCompany(ctx context.Context, docType, docDigits, name, email string) (*domain.Company, error) {
	company, err := s.companies.GetByDoc(ctx, docType, docDigits)
	if err == nil {
		return company, nil
	}
	legalName := strings.TrimSpace(name)
	if legalName == "" {
		legalName = email
	}
	company = &domain.Company{
		DocType:      docType,
		DocNumber:    docDigits,
		LegalName:    legalName,
		Status:       "Ativa",
		ContactEmail: email,
		Blocked:      true,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
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
