package cycle

import (
	"sort"

	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

// Reconcile empareja Entradas y Saídas por partición con una cola FIFO: cada Saída
// cierra la Entrada abierta más antigua de su partición. Las particiones salen en
// orden de primera aparición y, dentro de cada una, en orden de recorrido.
func Reconcile(events []entity.MovementEvent, mode PartitionMode) Result {
	res := Result{
		Matched: []MatchedCycle{},
		Open:    []OpenEntry{},
		Orphans: []OrphanExit{},
	}

	var order []partitionKey
	partitions := make(map[partitionKey][]entity.MovementEvent)
	for _, ev := range events {
		k := keyOf(ev, mode)
		if _, seen := partitions[k]; !seen {
			order = append(order, k)
		}
		partitions[k] = append(partitions[k], ev)
	}

	for _, k := range order {
		reconcilePartition(partitions[k], &res)
	}
	return res
}

func reconcilePartition(evs []entity.MovementEvent, res *Result) {
	// empates: se respeta el orden de entrada, sin reordenar por sentido
	sort.SliceStable(evs, func(i, j int) bool {
		return evs[i].Timestamp.Before(evs[j].Timestamp)
	})

	var pending []entity.MovementEvent
	for _, ev := range evs {
		switch ev.Direction {
		case entity.DirectionEntry:
			pending = append(pending, ev)
		case entity.DirectionExit:
			if len(pending) == 0 {
				res.Orphans = append(res.Orphans, OrphanExit{
					WorkOrderID: ev.WorkOrderID,
					ItemID:      ev.ItemID,
					GroupingKey: ev.GroupingKey,
					ProcessTag:  ev.ProcessTag,
					ExitAt:      ev.Timestamp,
				})
				continue
			}
			in := pending[0]
			pending = pending[1:]
			res.Matched = append(res.Matched, MatchedCycle{
				WorkOrderID: ev.WorkOrderID,
				ItemID:      ev.ItemID,
				GroupingKey: ev.GroupingKey,
				ProcessTag:  ev.ProcessTag,
				EntryAt:     in.Timestamp,
				ExitAt:      ev.Timestamp,
				Duration:    ev.Timestamp.Sub(in.Timestamp),
			})
		}
	}

	for _, in := range pending {
		res.Open = append(res.Open, OpenEntry{
			WorkOrderID: in.WorkOrderID,
			ItemID:      in.ItemID,
			GroupingKey: in.GroupingKey,
			ProcessTag:  in.ProcessTag,
			EntryAt:     in.Timestamp,
		})
	}
}
