package cycle

import (
	"fmt"
	"time"
)

// FormatHMS muestra una duración como HH:MM:SS redondeada al segundo.
// Las horas pueden pasar de 24 ("49:03:10").
func FormatHMS(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int64(d.Round(time.Second) / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}
