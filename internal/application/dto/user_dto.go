package dto

import "time"

// RegisterRequest entrada para registro (sign_up): email, password y sede asignada.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	SiteID   string `json:"site_id" validate:"required"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// LoginRequest entrada para login: la sede elegida debe coincidir con la de la cuenta.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	SiteID   string `json:"site_id" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"site_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// SiteResponse sede permitida.
type SiteResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
