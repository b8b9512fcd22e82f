package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ceidigital/backoffice/internal/domain"
)

// ProductRepo provides typed Postgres operations for the products table.
type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

const productColumns = `id, company_id, name, description, unit_price_cents, purchase_price_cents, consigned, stock_qty, active, image_key, created_at, updated_at`

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row, id)
}

func (r *ProductRepo) ListByCompany(ctx context.Context, companyID int64) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.UnitPriceCents,
			&p.PurchasePriceCents, &p.Consigned, &p.StockQty, &p.Active, &p.ImageKey,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO products (company_id, name, description, unit_price_cents, purchase_price_cents, consigned, stock_qty, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		p.CompanyID, p.Name, p.Description, p.UnitPriceCents, p.PurchasePriceCents,
		p.Consigned, p.StockQty, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepo) Update(ctx context.Context, id int64, req domain.UpdateProductRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET
			name                 = COALESCE($2, name),
			description          = COALESCE($3, description),
			unit_price_cents     = COALESCE($4, unit_price_cents),
			purchase_price_cents = COALESCE($5, purchase_price_cents),
			consigned            = COALESCE($6, consigned),
			stock_qty            = COALESCE($7, stock_qty),
			active               = COALESCE($8, active),
			updated_at           = now()
		 WHERE id = $1`,
		id, req.Name, req.Description, req.UnitPriceCents, req.PurchasePriceCents,
		req.Consigned, req.StockQty, req.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) SetImageKey(ctx context.Context, id int64, imageKey string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET image_key = $2, updated_at = now() WHERE id = $1`, id, imageKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanProduct(row pgx.Row, id int64) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.UnitPriceCents,
		&p.PurchasePriceCents, &p.Consigned, &p.StockQty, &p.Active, &p.ImageKey,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}
