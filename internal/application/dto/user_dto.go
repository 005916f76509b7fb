package dto

import "time"

// CreateUserRequest alta de usuario (password en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	CompanyCode string `json:"company_code"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"` // admin | basic
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	CompanyCode string    `json:"company_code"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Tabs        []string  `json:"tabs"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginRequest código de empresa + usuario + contraseña.
type LoginRequest struct {
	CompanyCode string `json:"company_code"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// LoginResponse token JWT y datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MeResponse identidad de la sesión actual (sale del token).
type MeResponse struct {
	UserID      string   `json:"user_id"`
	CompanyCode string   `json:"company_code"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Tabs        []string `json:"tabs"`
}
