package movement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	"github.com/mmrconsultoria/portal-os/internal/domain/movement"
)

func record(os, item, mov, date, hour string) entity.MovementRecord {
	return entity.MovementRecord{
		ID:        os + "/" + item + "/" + hour,
		WorkOrder: os,
		Item:      item,
		Quantity:  decimal.NewFromInt(3),
		Process:   " Afiação ",
		Date:      date,
		Hour:      hour,
		Operator:  "27",
		Machine:   "M1",
		Movement:  mov,
	}
}

func TestNormalize_FilasValidasYDescartadas(t *testing.T) {
	sp := mustLoad(t, "America/Sao_Paulo")
	records := []entity.MovementRecord{
		record("9532", "2", "Entrada", "06/05/2024", "09:00:00"),
		record("", "2", "Entrada", "06/05/2024", "09:00:00"),
		record("9532", "", "Entrada", "06/05/2024", "09:00:00"),
		record("9532", "2", "Transferência", "06/05/2024", "09:00:00"),
		record("9532", "2", "Saída", "xx", "09:00:00"),
		record("9532.0", "2", "Saída", "06/05/2024", "09:30:00"),
	}

	events, skipped := movement.Normalize(records, sp)

	require.Len(t, events, 2)
	assert.Equal(t, "9532-2", events[0].GroupingKey)
	assert.Equal(t, "Afiação", events[0].ProcessTag)
	assert.Equal(t, entity.DirectionEntry, events[0].Direction)
	assert.Equal(t, entity.DirectionExit, events[1].Direction)
	assert.Equal(t, "9532", events[1].WorkOrderID)
	assert.Equal(t, 30*time.Minute, events[1].Timestamp.Sub(events[0].Timestamp))

	require.Len(t, skipped, 4)
	assert.Equal(t, 2, skipped[0].Row)
	assert.Equal(t, movement.ReasonMissingWorkOrder, skipped[0].Reason)
	assert.Equal(t, movement.ReasonMissingItem, skipped[1].Reason)
	assert.Equal(t, movement.ReasonUnknownDirection, skipped[2].Reason)
	assert.Equal(t, movement.ReasonInvalidTimestamp, skipped[3].Reason)
}

func TestNormalize_HorarioAmbiguoSeDescarta(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	_, skipped := movement.Normalize([]entity.MovementRecord{
		record("1", "1", "Entrada", "03/11/2024", "01:30"),
		record("1", "1", "Entrada", "10/03/2024", "02:30"),
	}, ny)

	require.Len(t, skipped, 2)
	assert.Equal(t, movement.ReasonAmbiguousTime, skipped[0].Reason)
	assert.Equal(t, movement.ReasonNonexistentTime, skipped[1].Reason)
}

func TestNormalize_ColumnaOSItemExplicita(t *testing.T) {
	r := record("9532", "2", "Entrada", "06/05/2024", "09:00")
	r.WorkOrderItem = "9532-02"

	events, skipped := movement.Normalize([]entity.MovementRecord{r}, time.UTC)

	assert.Empty(t, skipped)
	require.Len(t, events, 1)
	assert.Equal(t, "9532-02", events[0].GroupingKey)
}

func TestNormalize_Vacio(t *testing.T) {
	events, skipped := movement.Normalize(nil, time.UTC)
	assert.NotNil(t, events)
	assert.NotNil(t, skipped)
	assert.Empty(t, events)
}
