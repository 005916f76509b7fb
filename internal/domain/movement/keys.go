package movement

import (
	"strconv"
	"strings"
)

// CanonicalID normaliza claves numéricas de la planilla: "12.0" -> "12", " 7 " -> "7".
// Los valores no numéricos solo se recortan.
func CanonicalID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// GroupingKey arma la clave "OS-ITEM".
func GroupingKey(workOrder, item string) string {
	return CanonicalID(workOrder) + "-" + CanonicalID(item)
}

// ResolveGroupingKey usa la columna "OS- Item" cuando viene cargada.
func ResolveGroupingKey(explicit, workOrder, item string) string {
	if e := strings.TrimSpace(explicit); e != "" {
		return e
	}
	return GroupingKey(workOrder, item)
}

// ControlKey clave natural de un registro. El almacén rechaza dos filas con la misma.
func ControlKey(workOrder, item, process, date, hour, movement string) string {
	parts := []string{
		CanonicalID(workOrder),
		CanonicalID(item),
		FoldLabel(process),
		strings.TrimSpace(date),
		strings.TrimSpace(hour),
		FoldLabel(movement),
	}
	return strings.ToUpper(strings.Join(parts, "|"))
}
