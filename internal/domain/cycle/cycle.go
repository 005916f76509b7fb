// Package cycle reconcilia eventos de Entrada/Saída en ciclos emparejados.
//
// Todo el paquete es cálculo puro: no hace I/O, no guarda estado y no devuelve
// errores. Los eventos deben llegar ya normalizados (ver paquete movement).
package cycle

import (
	"time"

	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

// PartitionMode define qué eventos pueden emparejarse entre sí.
type PartitionMode int

const (
	// ByItem empareja por OS-Item, ignorando el proceso.
	ByItem PartitionMode = iota
	// ByItemAndProcess exige además el mismo proceso (Afiação/Erosão).
	ByItemAndProcess
)

// ModeFor traduce el toggle "parear por processo".
func ModeFor(pairByProcess bool) PartitionMode {
	if pairByProcess {
		return ByItemAndProcess
	}
	return ByItem
}

// MatchedCycle un par Entrada→Saída.
type MatchedCycle struct {
	WorkOrderID string
	ItemID      string
	GroupingKey string
	ProcessTag  string
	EntryAt     time.Time
	ExitAt      time.Time
	Duration    time.Duration
}

// OpenEntry Entrada sin Saída correspondiente.
type OpenEntry struct {
	WorkOrderID string
	ItemID      string
	GroupingKey string
	ProcessTag  string
	EntryAt     time.Time
}

// Age tiempo abierto a la hora de consulta; nunca se persiste.
func (o OpenEntry) Age(now time.Time) time.Duration {
	return now.Sub(o.EntryAt)
}

// OrphanExit Saída sin Entrada pendiente en su partición.
type OrphanExit struct {
	WorkOrderID string
	ItemID      string
	GroupingKey string
	ProcessTag  string
	ExitAt      time.Time
}

// Result las tres colecciones que produce Reconcile. Nunca son nil.
type Result struct {
	Matched []MatchedCycle
	Open    []OpenEntry
	Orphans []OrphanExit
}

type partitionKey struct {
	grouping string
	process  string
}

func keyOf(ev entity.MovementEvent, mode PartitionMode) partitionKey {
	if mode == ByItemAndProcess {
		return partitionKey{grouping: ev.GroupingKey, process: ev.ProcessTag}
	}
	return partitionKey{grouping: ev.GroupingKey}
}
