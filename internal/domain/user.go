package domain

import "time"

// User is a back-office login identity. Email is unique and always stored
// trimmed and lower-cased; PasswordHash is a bcrypt hash.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CompanyID    *int64    `json:"company_id,omitempty"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Roles    []string `json:"roles"`
	CompanyID *int64 `json:"company_id"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
	Roles  []string `json:"roles"`
}
