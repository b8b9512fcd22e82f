package company

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ceidigital/backoffice/internal/domain"
)

// --- mocks ---

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if c, _ := args.Get(0).(*domain.Company); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRepo) GetByDoc(ctx context.Context, docType, docNumber string) (*domain.Company, error) {
	args := m.Called(ctx, docType, docNumber)
	if c, _ := args.Get(0).(*domain.Company); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRepo) List(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Company), args.Error(1)
}
func (m *mockRepo) Create(ctx context.Context, c *domain.Company) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockRepo) Update(ctx context.Context, id int64, req domain.UpdateCompanyRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func TestCreate_NormalizesMaskedDocument(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Company) bool {
		return c.DocType == "CNPJ" && c.DocNumber == "12345678000195" && c.Status == "Ativa"
	})).Return(nil)

	c, err := svc.Create(context.Background(), domain.CreateCompanyRequest{
		DocType:   "cnpj",
		DocNumber: "12.345.678/0001-95",
		LegalName: " Empresa Teste LTDA ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Empresa Teste LTDA", c.LegalName)
	repo.AssertExpectations(t)
}

func TestCreate_RejectsBadDocuments(t *testing.T) {
	svc := NewService(new(mockRepo))

	tests := []struct {
		name      string
		docType   string
		docNumber string
	}{
		{"short cnpj", "CNPJ", "123"},
		{"short cpf", "CPF", "123456789"},
		{"cpf-length cnpj", "CNPJ", "12345678909"},
		{"unknown type", "RG", "12345678909"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), domain.CreateCompanyRequest{
				DocType:   tt.docType,
				DocNumber: tt.docNumber,
				LegalName: "X",
			})
			assert.ErrorIs(t, err, domain.ErrBadRequest)
		})
	}
}

func TestGetByDoc_NormalizesInput(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo)

	want := &domain.Company{ID: 3}
	repo.On("GetByDoc", mock.Anything, "CPF", "12345678909").Return(want, nil)

	got, err := svc.GetByDoc(context.Background(), " cpf ", "123.456.789-09")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetByDoc_EmptyDigits(t *testing.T) {
	svc := NewService(new(mockRepo))
	_, err := svc.GetByDoc(context.Background(), "CPF", "---")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
