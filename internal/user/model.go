package user

import "time"

// User is a storefront account. PasswordHash never leaves the service.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PostalCode   string    `json:"postalCode"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest payload de registro.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name       string `json:"name" validate:"required" example:"Ana"`
	Email      string `json:"email" validate:"required,email" example:"ana@example.com"`
	Password   string `json:"password" validate:"required,min=6" example:"secreto"`
	PostalCode string `json:"postalCode" validate:"required" example:"91000"`
}

// LoginRequest payload de login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and the public user record.
// swagger:model LoginResponse
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
