package movement

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

var (
	// ErrInvalidTimestamp fecha u hora ilegibles.
	ErrInvalidTimestamp = errors.New("data/hora inválida")
	// ErrNonexistentTime la hora cae en el salto de horario de verano.
	ErrNonexistentTime = errors.New("horário inexistente no fuso")
	// ErrAmbiguousTime la hora se repite al terminar el horario de verano.
	ErrAmbiguousTime = errors.New("horário ambíguo no fuso")
)

// día primero, como se cargan en la planilla
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"02-01-2006",
	"2006-01-02",
}

var hourLayouts = []string{
	"15:04:05",
	"15:04",
}

// ParseTimestamp combina DATA y HORA en un instante de loc. Sin hora se toma la
// medianoche. Las horas inexistentes o ambiguas en loc se rechazan.
func ParseTimestamp(date, hour string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	date = strings.TrimSpace(date)
	hour = strings.TrimSpace(hour)

	// la fecha a veces viene con hora ("2024-05-06 00:00:00")
	if i := strings.IndexByte(date, ' '); i > 0 {
		if hour == "" {
			hour = strings.TrimSpace(date[i+1:])
		}
		date = date[:i]
	}

	d, err := parseFirst(date, dateLayouts)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: data %q", ErrInvalidTimestamp, date)
	}
	var h time.Time
	if hour != "" {
		if h, err = parseFirst(hour, hourLayouts); err != nil {
			return time.Time{}, fmt.Errorf("%w: hora %q", ErrInvalidTimestamp, hour)
		}
	}
	return resolveLocal(d.Year(), d.Month(), d.Day(), h.Hour(), h.Minute(), h.Second(), loc)
}

func parseFirst(value string, layouts []string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

// resolveLocal busca los instantes cuya hora de reloj en loc coincide con la pedida.
// time.Date normaliza en silencio los huecos y repeticiones; acá se detectan.
func resolveLocal(y int, mo time.Month, d, h, mi, s int, loc *time.Location) (time.Time, error) {
	wall := time.Date(y, mo, d, h, mi, s, 0, time.UTC)

	var found []time.Time
	seen := make(map[int]bool, 3)
	for _, shift := range []time.Duration{-24 * time.Hour, 0, 24 * time.Hour} {
		_, offset := wall.Add(shift).In(loc).Zone()
		if seen[offset] {
			continue
		}
		seen[offset] = true

		cand := wall.Add(-time.Duration(offset) * time.Second).In(loc)
		cy, cmo, cd := cand.Date()
		ch, cmi, cs := cand.Clock()
		if cy == y && cmo == mo && cd == d && ch == h && cmi == mi && cs == s {
			found = append(found, cand)
		}
	}

	switch len(found) {
	case 0:
		return time.Time{}, fmt.Errorf("%w: %s", ErrNonexistentTime, wall.Format("02/01/2006 15:04:05"))
	case 1:
		return found[0], nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s", ErrAmbiguousTime, wall.Format("02/01/2006 15:04:05"))
	}
}
