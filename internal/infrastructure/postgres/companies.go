package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ceidigital/backoffice/internal/domain"
)

// CompanyRepo provides typed Postgres operations for the companies table.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

const companyColumns = `id, doc_type, doc_number, legal_name, trade_name, status, phone, contact_email, blocked, created_at, updated_at`

// GetByDoc looks up a company by its unique (document type, digits) pair.
func (r *CompanyRepo) GetByDoc(ctx context.Context, docType, docNumber string) (*domain.Company, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE doc_type = $1 AND doc_number = $2`,
		docType, docNumber)
	return scanCompany(row, docType+"/"+docNumber)
}

func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row, fmt.Sprintf("%d", id))
}

func (r *CompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.DocType, &c.DocNumber, &c.LegalName, &c.TradeName,
			&c.Status, &c.Phone, &c.ContactEmail, &c.Blocked, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO companies (doc_type, doc_number, legal_name, trade_name, status, phone, contact_email, blocked)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		c.DocType, c.DocNumber, c.LegalName, c.TradeName, c.Status, c.Phone, c.ContactEmail, c.Blocked,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("company %s/%s: %w", c.DocType, c.DocNumber, domain.ErrConflict)
	}
	return err
}

// Update applies the non-nil fields of req.
func (r *CompanyRepo) Update(ctx context.Context, id int64, req domain.UpdateCompanyRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE companies SET
			legal_name    = COALESCE($2, legal_name),
			trade_name    = COALESCE($3, trade_name),
			status        = COALESCE($4, status),
			phone         = COALESCE($5, phone),
			contact_email = COALESCE($6, contact_email),
			blocked       = COALESCE($7, blocked),
			updated_at    = now()
		 WHERE id = $1`,
		id, req.LegalName, req.TradeName, req.Status, req.Phone, req.ContactEmail, req.Blocked)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("company %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanCompany(row pgx.Row, ref string) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.DocType, &c.DocNumber, &c.LegalName, &c.TradeName,
		&c.Status, &c.Phone, &c.ContactEmail, &c.Blocked, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("company %s: %w", ref, domain.ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}
