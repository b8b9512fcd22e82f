package product

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ceidigital/backoffice/internal/domain"
)

// --- mocks ---

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRepo) ListByCompany(ctx context.Context, companyID int64) ([]domain.Product, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *mockRepo) Create(ctx context.Context, p *domain.Product) error {
	p.ID = 5
	return m.Called(ctx, p).Error(0)
}
func (m *mockRepo) Update(ctx context.Context, id int64, req domain.UpdateProductRequest) error {
	return m.Called(ctx, id, req).Error(0)
}
func (m *mockRepo) SetImageKey(ctx context.Context, id int64, imageKey string) error {
	return m.Called(ctx, id, imageKey).Error(0)
}
func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockImages struct{ mock.Mock }

func (m *mockImages) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	return m.Called(ctx, key, r, contentType).Error(0)
}
func (m *mockImages) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	if rc, _ := args.Get(0).(io.ReadCloser); rc != nil {
		return rc, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}
func (m *mockImages) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestCreate_DefaultsActive(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockImages))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Active && p.Name == "Caneca" && p.CompanyID == 2
	})).Return(nil)

	p, err := svc.Create(context.Background(), domain.CreateProductRequest{
		CompanyID:      2,
		Name:           " Caneca ",
		UnitPriceCents: 1990,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
}

func TestAttachImage_KeepsExtensionAndLinksKey(t *testing.T) {
	repo := new(mockRepo)
	images := new(mockImages)
	svc := NewService(repo, images)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Product{ID: 5}, nil)
	images.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, ".png")
	}), mock.Anything, "image/png").Return(nil)
	repo.On("SetImageKey", mock.Anything, int64(5), mock.Anything).Return(nil)

	key, err := svc.AttachImage(context.Background(), 5, "Foto.PNG", strings.NewReader("img"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))
	repo.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestAttachImage_UnknownProduct(t *testing.T) {
	repo := new(mockRepo)
	images := new(mockImages)
	svc := NewService(repo, images)

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	_, err := svc.AttachImage(context.Background(), 99, "a.png", strings.NewReader("img"), "image/png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	images.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestImage_NoImage(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockImages))

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Product{ID: 5}, nil)

	_, _, err := svc.Image(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_CleansUpImage(t *testing.T) {
	repo := new(mockRepo)
	images := new(mockImages)
	svc := NewService(repo, images)

	key := "01ABCDEF.png"
	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Product{ID: 5, ImageKey: &key}, nil)
	repo.On("Delete", mock.Anything, int64(5)).Return(nil)
	images.On("Delete", mock.Anything, key).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 5))
	images.AssertExpectations(t)
}
