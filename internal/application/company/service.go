package company

import (
	"context"
	"fmt"
	"strings"

	"github.com/ceidigital/backoffice/internal/domain"
)

// Repository is the persistence contract the company service needs.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	GetByDoc(ctx context.Context, docType, docNumber string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
	Update(ctx context.Context, id int64, req domain.UpdateCompanyRequest) error
}

type Service interface {
	List(ctx context.Context) ([]domain.Company, error)
	Get(ctx context.Context, id int64) (*domain.Company, error)
	GetByDoc(ctx context.Context, docType, docNumber string) (*domain.Company, error)
	Create(ctx context.Context, req domain.CreateCompanyRequest) (*domain.Company, error)
	Update(ctx context.Context, id int64, req domain.UpdateCompanyRequest) (*domain.Company, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Company, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByDoc(ctx context.Context, docType, docNumber string) (*domain.Company, error) {
	digits := digitsOnly(docNumber)
	if digits == "" {
		return nil, fmt.Errorf("empty document number: %w", domain.ErrBadRequest)
	}
	return s.repo.GetByDoc(ctx, strings.ToUpper(strings.TrimSpace(docType)), digits)
}

// Create stores a new company; the document number is reduced to digits
// before persisting, so masked input is accepted.
func (s *service) Create(ctx context.Context, req domain.CreateCompanyRequest) (*domain.Company, error) {
	digits := digitsOnly(req.DocNumber)
	if err := validateDocument(req.DocType, digits); err != nil {
		return nil, err
	}
	c := &domain.Company{
		DocType:      strings.ToUpper(strings.TrimSpace(req.DocType)),
		DocNumber:    digits,
		LegalName:    strings.TrimSpace(req.LegalName),
		TradeName:    strings.TrimSpace(req.TradeName),
		Status:       req.Status,
		Phone:        req.Phone,
		ContactEmail: strings.ToLower(strings.TrimSpace(req.ContactEmail)),
	}
	if c.Status == "" {
		c.Status = "Ativa"
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id int64, req domain.UpdateCompanyRequest) (*domain.Company, error) {
	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// validateDocument checks only digit counts, not check digits.
func validateDocument(docType, digits string) error {
	switch strings.ToUpper(strings.TrimSpace(docType)) {
	case domain.DocTypeCNPJ:
		if len(digits) != 14 {
			return fmt.Errorf("CNPJ must have 14 digits: %w", domain.ErrBadRequest)
		}
	case domain.DocTypeCPF:
		if len(digits) != 11 {
			return fmt.Errorf("CPF must have 11 digits: %w", domain.ErrBadRequest)
		}
	default:
		return fmt.Errorf("unknown document type %q: %w", docType, domain.ErrBadRequest)
	}
	return nil
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
