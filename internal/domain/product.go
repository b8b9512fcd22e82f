package domain

import "time"

// Product belongs to a single company. Prices are stored in cents to avoid
// floating-point rounding in the catalog.
type Product struct {
	ID                 int64     `json:"id"`
	CompanyID          int64     `json:"company_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	UnitPriceCents     int64     `json:"unit_price_cents"`
	PurchasePriceCents *int64    `json:"purchase_price_cents,omitempty"`
	Consigned          bool      `json:"consigned"`
	StockQty           int       `json:"stock_qty"`
	Active             bool      `json:"active"`
	ImageKey           *string   `json:"image_key,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	CompanyID          int64  `json:"company_id" validate:"required"`
	Name               string `json:"name" validate:"required,max=150"`
	Description        string `json:"description"`
	UnitPriceCents     int64  `json:"unit_price_cents" validate:"gte=0"`
	PurchasePriceCents *int64 `json:"purchase_price_cents" validate:"omitempty,gte=0"`
	Consigned          bool   `json:"consigned"`
	StockQty           int    `json:"stock_qty" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name               *string `json:"name" validate:"omitempty,max=150"`
	Description        *string `json:"description"`
	UnitPriceCents     *int64  `json:"unit_price_cents" validate:"omitempty,gte=0"`
	PurchasePriceCents *int64  `json:"purchase_price_cents" validate:"omitempty,gte=0"`
	Consigned          *bool   `json:"consigned"`
	StockQty           *int    `json:"stock_qty" validate:"omitempty,gte=0"`
	Active             *bool   `json:"active"`
}
