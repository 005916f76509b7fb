package xlsx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmrconsultoria/portal-os/internal/application/report"
	"github.com/mmrconsultoria/portal-os/internal/domain/cycle"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	mov "github.com/mmrconsultoria/portal-os/internal/domain/movement"
	"github.com/mmrconsultoria/portal-os/internal/infrastructure/xlsx"
)

func sampleReport(byProc bool) *report.Report {
	brt := time.FixedZone("BRT", -3*3600)
	at := func(h, m int) time.Time { return time.Date(2024, 3, 4, h, m, 0, 0, brt) }
	matched := []cycle.MatchedCycle{{
		WorkOrderID: "123", ItemID: "4", GroupingKey: "123-4", ProcessTag: "Afiação",
		EntryAt: at(8, 0), ExitAt: at(9, 30), Duration: 90 * time.Minute,
	}}
	mode := cycle.ModeFor(byProc)
	return &report.Report{
		CompanyCode: "MMR",
		GeneratedAt: at(12, 0),
		Location:    brt,
		Filter:      report.Filter{PairByProcess: byProc},
		Result: cycle.Result{
			Matched: matched,
			Open:    []cycle.OpenEntry{{WorkOrderID: "123", ItemID: "5", GroupingKey: "123-5", ProcessTag: "Erosão", EntryAt: at(10, 0)}},
			Orphans: []cycle.OrphanExit{{WorkOrderID: "124", ItemID: "1", GroupingKey: "124-1", ExitAt: at(7, 15)}},
		},
		OpenAges:   []time.Duration{2 * time.Hour},
		Aggregates: cycle.Aggregate(matched, mode),
		Skipped: []mov.SkippedRecord{{Row: 7, Reason: mov.ReasonMissingWorkOrder,
			Record: entity.MovementRecord{Item: "1", Date: "04/03/2024", Hour: "08:00:00", Movement: "Entrada"}}},
	}
}

func TestCycleReportWorkbook(t *testing.T) {
	data, err := xlsx.NewWriter().CycleReportWorkbook(sampleReport(true))
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{xlsx.SheetCycles, xlsx.SheetTotals, xlsx.SheetOpen, xlsx.SheetOrphans, xlsx.SheetDiscarded}, f.GetSheetList())

	rows, err := f.GetRows(xlsx.SheetCycles)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"OS", "Item", "OS_Item", "PROC", "Entrada_TS", "Saida_TS", "Segundos", "HH:MM:SS"}, rows[0])
	assert.Equal(t, "04/03/2024 08:00:00", rows[1][4])
	assert.Equal(t, "5400", rows[1][6])
	assert.Equal(t, "01:30:00", rows[1][7])

	rows, err = f.GetRows(xlsx.SheetTotals)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"OS", "Item", "OS_Item", "PROC", "Ciclos", "Segundos", "HH:MM:SS", "Primeiro", "Ultimo"}, rows[0])
	assert.Equal(t, "123-4", rows[1][2])
	assert.Equal(t, "Afiação", rows[1][3])
	assert.Equal(t, "1", rows[1][4])

	rows, err = f.GetRows(xlsx.SheetOpen)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Aberto_hh:mm:ss", rows[0][5])
	assert.Equal(t, "02:00:00", rows[1][5])

	rows, err = f.GetRows(xlsx.SheetOrphans)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "04/03/2024 07:15:00", rows[1][4])

	rows, err = f.GetRows(xlsx.SheetDiscarded)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, mov.ReasonMissingWorkOrder, rows[1][6])
}

func TestCycleReportWorkbook_SinProceso(t *testing.T) {
	data, err := xlsx.NewWriter().CycleReportWorkbook(sampleReport(false))
	require.NoError(t, err)
	f := open(t, data)

	rows, err := f.GetRows(xlsx.SheetTotals)
	require.NoError(t, err)
	assert.Equal(t, []string{"OS", "Item", "OS_Item", "Ciclos", "Segundos", "HH:MM:SS", "Primeiro", "Ultimo"}, rows[0])
	assert.Equal(t, "1", rows[1][3])
}
