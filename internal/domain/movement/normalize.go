package movement

import (
	"errors"
	"strings"
	"time"

	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

// Motivos de descarte de una fila.
const (
	ReasonMissingWorkOrder = "OS ausente"
	ReasonMissingItem      = "ITEM ausente"
	ReasonUnknownDirection = "ENTRADA/SAIDA desconhecido"
	ReasonInvalidTimestamp = "DATA/HORA inválida"
	ReasonNonexistentTime  = "horário inexistente (horário de verão)"
	ReasonAmbiguousTime    = "horário ambíguo (horário de verão)"
)

// SkippedRecord fila que no llegó al reconciliador.
type SkippedRecord struct {
	Row    int // posición en la entrada, base 1
	Record entity.MovementRecord
	Reason string
}

// Normalize convierte filas crudas en eventos. Las que no se pueden interpretar se
// devuelven en skipped con su motivo, nunca se pierden en silencio.
func Normalize(records []entity.MovementRecord, loc *time.Location) ([]entity.MovementEvent, []SkippedRecord) {
	events := make([]entity.MovementEvent, 0, len(records))
	skipped := []SkippedRecord{}

	for i, r := range records {
		ev, reason := normalizeOne(r, loc)
		if reason != "" {
			skipped = append(skipped, SkippedRecord{Row: i + 1, Record: r, Reason: reason})
			continue
		}
		events = append(events, ev)
	}
	return events, skipped
}

func normalizeOne(r entity.MovementRecord, loc *time.Location) (entity.MovementEvent, string) {
	os := CanonicalID(r.WorkOrder)
	if os == "" {
		return entity.MovementEvent{}, ReasonMissingWorkOrder
	}
	item := CanonicalID(r.Item)
	if item == "" {
		return entity.MovementEvent{}, ReasonMissingItem
	}
	dir, err := ParseDirection(r.Movement)
	if err != nil {
		return entity.MovementEvent{}, ReasonUnknownDirection
	}
	ts, err := ParseTimestamp(r.Date, r.Hour, loc)
	switch {
	case errors.Is(err, ErrNonexistentTime):
		return entity.MovementEvent{}, ReasonNonexistentTime
	case errors.Is(err, ErrAmbiguousTime):
		return entity.MovementEvent{}, ReasonAmbiguousTime
	case err != nil:
		return entity.MovementEvent{}, ReasonInvalidTimestamp
	}

	return entity.MovementEvent{
		RecordID:    r.ID,
		WorkOrderID: os,
		ItemID:      item,
		GroupingKey: ResolveGroupingKey(r.WorkOrderItem, os, item),
		ProcessTag:  strings.TrimSpace(r.Process),
		Direction:   dir,
		Timestamp:   ts,
		MachineID:   strings.TrimSpace(r.Machine),
		Operator:    strings.TrimSpace(r.Operator),
		Quantity:    r.Quantity,
	}, ""
}
