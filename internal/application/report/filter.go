package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mmrconsultoria/portal-os/internal/application/dto"
	"github.com/mmrconsultoria/portal-os/internal/domain"
	"github.com/mmrconsultoria/portal-os/internal/domain/cycle"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	mov "github.com/mmrconsultoria/portal-os/internal/domain/movement"
)

// Filter filtros del reporte. From/To son fechas locales inclusivas; cero = sin límite.
type Filter struct {
	From          time.Time
	To            time.Time
	WorkOrders    []string
	Machines      []string
	PairByProcess bool
}

// Mode modo de partición que corresponde al filtro.
func (f Filter) Mode() cycle.PartitionMode {
	return cycle.ModeFor(f.PairByProcess)
}

// key representación estable del filtro para la caché.
func (f Filter) key() string {
	wo := append([]string(nil), f.WorkOrders...)
	mq := append([]string(nil), f.Machines...)
	sort.Strings(wo)
	sort.Strings(mq)
	return fmt.Sprintf("%s|%s|%s|%s|%t",
		dateKey(f.From), dateKey(f.To), strings.Join(wo, ","), strings.Join(mq, ","), f.PairByProcess)
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

var filterDateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseFilter interpreta los query params. pair_by_process es verdadero por defecto.
func ParseFilter(in dto.CycleReportRequest, loc *time.Location) (Filter, error) {
	f := Filter{PairByProcess: true}
	if in.PairByProcess != nil {
		f.PairByProcess = *in.PairByProcess
	}

	var problems []string
	var err error
	if f.From, err = parseDate(in.From, loc); err != nil {
		problems = append(problems, "from inválido: use AAAA-MM-DD")
	}
	if f.To, err = parseDate(in.To, loc); err != nil {
		problems = append(problems, "to inválido: use AAAA-MM-DD")
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		problems = append(problems, "período inválido: to anterior a from")
	}
	if len(problems) > 0 {
		return Filter{}, &domain.ValidationError{Problems: problems}
	}

	for _, os := range splitList(in.WorkOrders) {
		f.WorkOrders = append(f.WorkOrders, mov.CanonicalID(os))
	}
	f.Machines = splitList(in.Machines)
	return f, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, l := range filterDateLayouts {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

// splitList acepta valores repetidos y separados por coma (?os=1,2&os=3).
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// apply filtra eventos ya normalizados; el período se evalúa con la fecha local del evento.
func (f Filter) apply(events []entity.MovementEvent, loc *time.Location) []entity.MovementEvent {
	wo := toSet(f.WorkOrders)
	mq := toSet(f.Machines)

	out := make([]entity.MovementEvent, 0, len(events))
	for _, ev := range events {
		t := ev.Timestamp.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		if !f.From.IsZero() && day.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && day.After(f.To) {
			continue
		}
		if len(wo) > 0 && !wo[ev.WorkOrderID] {
			continue
		}
		if len(mq) > 0 && !mq[ev.MachineID] {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	s := make(map[string]bool, len(values))
	for _, v := range values {
		s[v] = true
	}
	return s
}
