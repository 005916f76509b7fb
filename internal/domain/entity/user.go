package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleBasic = "basic"
)

// Pestañas del portal que un usuario puede ver.
const (
	TabAll       = "all"
	TabMovements = "entrada_saida_os"
)

// User usuario del portal; se identifica por código de empresa + nombre de usuario.
type User struct {
	ID           string
	CompanyCode  string
	Username     string
	PasswordHash string // bcrypt
	Role         string // admin, basic
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TabsForRole admin ve todo; los demás solo la captura de Entrada/Saída OS.
func TabsForRole(role string) []string {
	if role == RoleAdmin {
		return []string{TabAll}
	}
	return []string{TabMovements}
}

// ValidRole indica si el rol es conocido.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleBasic
}
