package xlsx

import (
	"time"

	"github.com/mmrconsultoria/portal-os/internal/application/report"
	"github.com/mmrconsultoria/portal-os/internal/domain/cycle"
)

var _ report.WorkbookWriter = (*Writer)(nil)

// Hojas del reporte de ciclos.
const (
	SheetCycles    = "Ciclos"
	SheetTotals    = "Tempo por OS-Item"
	SheetOpen      = "Sem Saida"
	SheetOrphans   = "Sem Entrada"
	SheetDiscarded = "Descartados"
)

const tsLayout = "02/01/2006 15:04:05"

// CycleReportWorkbook planilla del reporte: ciclos, totales por OS-Item, entradas
// abiertas, salidas huérfanas y filas descartadas.
func (w *Writer) CycleReportWorkbook(r *report.Report) ([]byte, error) {
	f, err := newWorkbook(SheetCycles, SheetTotals, SheetOpen, SheetOrphans, SheetDiscarded)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	byProc := r.Filter.PairByProcess
	ts := func(t time.Time) string { return t.In(loc).Format(tsLayout) }

	// Ciclos
	cols := keyColumns(byProc, column{"Entrada_TS", fmtText}, column{"Saida_TS", fmtText},
		column{"Segundos", fmtInt}, column{"HH:MM:SS", fmtText})
	rows := make([][]interface{}, 0, len(r.Result.Matched))
	for _, m := range r.Result.Matched {
		rows = append(rows, keyValues(byProc, m.WorkOrderID, m.ItemID, m.GroupingKey, m.ProcessTag,
			ts(m.EntryAt), ts(m.ExitAt), int64(m.Duration.Round(time.Second)/time.Second), cycle.FormatHMS(m.Duration)))
	}
	if err := writeSheet(f, st, SheetCycles, cols, rows); err != nil {
		return nil, err
	}

	// Totales por OS-Item
	cols = keyColumns(byProc, column{"Ciclos", fmtInt}, column{"Segundos", fmtInt},
		column{"HH:MM:SS", fmtText}, column{"Primeiro", fmtText}, column{"Ultimo", fmtText})
	rows = nil
	for _, a := range r.Aggregates {
		rows = append(rows, keyValues(byProc, a.WorkOrderID, a.ItemID, a.GroupingKey, a.ProcessTag,
			a.Cycles, int64(a.TotalDuration.Round(time.Second)/time.Second), cycle.FormatHMS(a.TotalDuration),
			ts(a.FirstEntry), ts(a.LastExit)))
	}
	if err := writeSheet(f, st, SheetTotals, cols, rows); err != nil {
		return nil, err
	}

	// Entradas sin salida
	cols = keyColumns(byProc, column{"Entrada_TS", fmtText}, column{"Aberto_hh:mm:ss", fmtText})
	rows = nil
	for i, o := range r.Result.Open {
		age := o.Age(r.GeneratedAt)
		if i < len(r.OpenAges) {
			age = r.OpenAges[i]
		}
		rows = append(rows, keyValues(byProc, o.WorkOrderID, o.ItemID, o.GroupingKey, o.ProcessTag,
			ts(o.EntryAt), cycle.FormatHMS(age)))
	}
	if err := writeSheet(f, st, SheetOpen, cols, rows); err != nil {
		return nil, err
	}

	// Salidas sin entrada
	cols = keyColumns(byProc, column{"Saida_TS", fmtText})
	rows = nil
	for _, o := range r.Result.Orphans {
		rows = append(rows, keyValues(byProc, o.WorkOrderID, o.ItemID, o.GroupingKey, o.ProcessTag, ts(o.ExitAt)))
	}
	if err := writeSheet(f, st, SheetOrphans, cols, rows); err != nil {
		return nil, err
	}

	cols = []column{{"Linha", fmtInt}, {"OS", fmtText}, {"Item", fmtText}, {"DATA", fmtText},
		{"HORA", fmtText}, {"ENTRADA/SAIDA", fmtText}, {"Motivo", fmtText}}
	rows = nil
	for _, s := range r.Skipped {
		rows = append(rows, []interface{}{s.Row, s.Record.WorkOrder, s.Record.Item, s.Record.Date,
			s.Record.Hour, s.Record.Movement, s.Reason})
	}
	if err := writeSheet(f, st, SheetDiscarded, cols, rows); err != nil {
		return nil, err
	}
	return toBytes(f)
}

// keyColumns OS, Item, OS_Item y, si se separa por proceso, PROC; luego las columnas extra.
func keyColumns(byProc bool, extra ...column) []column {
	cols := []column{{"OS", fmtText}, {"Item", fmtText}, {"OS_Item", fmtText}}
	if byProc {
		cols = append(cols, column{"PROC", fmtText})
	}
	return append(cols, extra...)
}

func keyValues(byProc bool, os, item, key, proc string, extra ...interface{}) []interface{} {
	vals := []interface{}{intOrText(os), intOrText(item), key}
	if byProc {
		vals = append(vals, proc)
	}
	return append(vals, extra...)
}
