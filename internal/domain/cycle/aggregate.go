package cycle

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// CycleAggregate resumen por OS-Item (y proceso cuando corresponde).
type CycleAggregate struct {
	WorkOrderID   string
	ItemID        string
	GroupingKey   string
	ProcessTag    string // vacío en modo ByItem
	Cycles        int
	TotalDuration time.Duration
	FirstEntry    time.Time
	LastExit      time.Time
}

// Aggregate suma ciclos por partición. El resultado queda ordenado por OS, Item y
// proceso con comparación numérica cuando las claves son números.
func Aggregate(matched []MatchedCycle, mode PartitionMode) []CycleAggregate {
	out := []CycleAggregate{}
	index := make(map[partitionKey]int)

	for _, m := range matched {
		k := partitionKey{grouping: m.GroupingKey}
		if mode == ByItemAndProcess {
			k.process = m.ProcessTag
		}
		i, ok := index[k]
		if !ok {
			out = append(out, CycleAggregate{
				WorkOrderID: m.WorkOrderID,
				ItemID:      m.ItemID,
				GroupingKey: m.GroupingKey,
				ProcessTag:  k.process,
				FirstEntry:  m.EntryAt,
				LastExit:    m.ExitAt,
			})
			i = len(out) - 1
			index[k] = i
		}
		a := &out[i]
		a.Cycles++
		a.TotalDuration += m.Duration
		if m.EntryAt.Before(a.FirstEntry) {
			a.FirstEntry = m.EntryAt
		}
		if m.ExitAt.After(a.LastExit) {
			a.LastExit = m.ExitAt
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := naturalCompare(out[i].WorkOrderID, out[j].WorkOrderID); c != 0 {
			return c < 0
		}
		if c := naturalCompare(out[i].ItemID, out[j].ItemID); c != 0 {
			return c < 0
		}
		return out[i].ProcessTag < out[j].ProcessTag
	})
	return out
}

// OpenDuration edad de cada Entrada abierta respecto de now, en el mismo orden.
func OpenDuration(open []OpenEntry, now time.Time) []time.Duration {
	out := make([]time.Duration, len(open))
	for i, o := range open {
		out[i] = o.Age(now)
	}
	return out
}

// naturalCompare: "2" < "10"; si alguna no es número, orden lexicográfico.
func naturalCompare(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
