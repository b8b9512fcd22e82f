package domain

import "time"

// Document types accepted for a company record.
const (
	DocTypeCNPJ = "CNPJ"
	DocTypeCPF  = "CPF"
)

// Company is the tenant entity. The (DocType, DocNumber) pair is unique;
// DocNumber is stored as digits only. Companies created during self-service
// registration start blocked until reviewed.
type Company struct {
	ID           int64     `json:"id"`
	DocType      string    `json:"doc_type"`
	DocNumber    string    `json:"doc_number"`
	LegalName    string    `json:"legal_name"`
	TradeName    string    `json:"trade_name,omitempty"`
	Status       string    `json:"status,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Blocked      bool      `json:"blocked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateCompanyRequest struct {
	DocType      string `json:"doc_type" validate:"required,oneof=CNPJ CPF"`
	DocNumber    string `json:"doc_number" validate:"required"`
	LegalName    string `json:"legal_name" validate:"required"`
	TradeName    string `json:"trade_name"`
	Status       string `json:"status"`
	Phone        string `json:"phone"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

type UpdateCompanyRequest struct {
	LegalName    *string `json:"legal_name"`
	TradeName    *string `json:"trade_name"`
	Status       *string `json:"status"`
	Phone        *string `json:"phone"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	Blocked      *bool   `json:"blocked"`
}
