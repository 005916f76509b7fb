package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrUserExists   = errors.New("el usuario ya existe en esta empresa")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("registro duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// ValidationError agrupa todos los problemas de un formulario para devolverlos juntos.
// errors.Is(err, ErrInvalidInput) es verdadero.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "entrada inválida: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
