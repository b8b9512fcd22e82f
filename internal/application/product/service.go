package product

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ceidigital/backoffice/internal/domain"
	"github.com/ceidigital/backoffice/internal/pkg/id"
)

// Repository is the persistence contract the product service needs.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id int64, req domain.UpdateProductRequest) error
	SetImageKey(ctx context.Context, id int64, imageKey string) error
	Delete(ctx context.Context, id int64) error
}

// ImageStore holds product images outside the database.
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

type Service interface {
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	Update(ctx context.Context, id int64, req domain.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	AttachImage(ctx context.Context, productID int64, filename string, r io.Reader, contentType string) (string, error)
	Image(ctx context.Context, productID int64) (io.ReadCloser, string, error)
}

type service struct {
	repo   Repository
	images ImageStore
}

func NewService(repo Repository, images ImageStore) Service {
	return &service{repo: repo, images: images}
}

func (s *service) ListByCompany(ctx context.Context, companyID int64) ([]domain.Product, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		CompanyID:          req.CompanyID,
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		UnitPriceCents:     req.UnitPriceCents,
		PurchasePriceCents: req.PurchasePriceCents,
		Consigned:          req.Consigned,
		StockQty:           req.StockQty,
		Active:             true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, id int64, req domain.UpdateProductRequest) (*domain.Product, error) {
	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, productID int64) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}
	if p.ImageKey != nil {
		// Image cleanup is best-effort; an orphaned object is harmless.
		_ = s.images.Delete(ctx, *p.ImageKey)
	}
	return nil
}

// AttachImage stores the image under a fresh ULID key (extension preserved)
// and links it to the product, returning the key.
func (s *service) AttachImage(ctx context.Context, productID int64, filename string, r io.Reader, contentType string) (string, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return "", err
	}
	key := id.New() + extension(filename)
	if err := s.images.Put(ctx, key, r, contentType); err != nil {
		return "", err
	}
	if err := s.repo.SetImageKey(ctx, productID, key); err != nil {
		return "", err
	}
	return key, nil
}

// Image streams the product's stored image.
func (s *service) Image(ctx context.Context, productID int64) (io.ReadCloser, string, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, "", err
	}
	if p.ImageKey == nil {
		return nil, "", fmt.Errorf("product %d has no image: %w", productID, domain.ErrNotFound)
	}
	return s.images.Get(ctx, *p.ImageKey)
}

func extension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return strings.ToLower(filename[i:])
	}
	return ""
}
