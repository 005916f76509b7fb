// Package movement interpreta las filas crudas de Entrada/Saída OS y las convierte
// en eventos listos para reconciliar.
package movement

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

// ErrUnknownDirection la etiqueta no contiene "entrada" ni "saida".
var ErrUnknownDirection = errors.New("movimento desconhecido")

// FoldLabel quita acentos, recorta y pasa a minúsculas ("  Saída " -> "saida").
func FoldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ParseDirection reconoce la etiqueta de movimiento sin importar mayúsculas ni acentos.
// Si aparecen ambas palabras gana Saída.
func ParseDirection(label string) (entity.Direction, error) {
	f := FoldLabel(label)
	switch {
	case strings.Contains(f, "saida"):
		return entity.DirectionExit, nil
	case strings.Contains(f, "entrada"):
		return entity.DirectionEntry, nil
	}
	return "", ErrUnknownDirection
}
