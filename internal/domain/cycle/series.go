package cycle

import (
	"sort"
	"time"
)

// DailyTotal tiempo total de los ciclos cerrados en un día.
type DailyTotal struct {
	Day           time.Time // medianoche local
	Cycles        int
	TotalDuration time.Duration
}

// TopByDuration devuelve los n agregados con mayor tiempo total, de mayor a menor.
// n <= 0 devuelve todos.
func TopByDuration(aggs []CycleAggregate, n int) []CycleAggregate {
	out := make([]CycleAggregate, len(aggs))
	copy(out, aggs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalDuration > out[j].TotalDuration
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// DailySeries agrupa los ciclos por fecha de Saída en loc, ordenado por día.
func DailySeries(matched []MatchedCycle, loc *time.Location) []DailyTotal {
	if loc == nil {
		loc = time.UTC
	}
	byDay := make(map[string]*DailyTotal)
	for _, m := range matched {
		t := m.ExitAt.In(loc)
		k := t.Format("2006-01-02")
		d, ok := byDay[k]
		if !ok {
			d = &DailyTotal{Day: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)}
			byDay[k] = d
		}
		d.Cycles++
		d.TotalDuration += m.Duration
	}

	out := make([]DailyTotal, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}
