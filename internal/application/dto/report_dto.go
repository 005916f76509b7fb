package dto

import "time"

// CycleReportRequest filtros del reporte de ciclos (query string).
// Fechas en formato AAAA-MM-DD, inclusivas, en la zona del portal.
type CycleReportRequest struct {
	From          string   `query:"from"`
	To            string   `query:"to"`
	WorkOrders    []string `query:"os"`
	Machines      []string `query:"machine"`
	PairByProcess *bool    `query:"pair_by_process"`
}

// CycleAggregateResponse fila de "Tempo por OS-Item".
type CycleAggregateResponse struct {
	WorkOrder  string    `json:"os"`
	Item       string    `json:"item"`
	OSItem     string    `json:"os_item"`
	Process    string    `json:"process,omitempty"`
	Cycles     int       `json:"cycles"`
	Seconds    int64     `json:"seconds"`
	HMS        string    `json:"hms"`
	FirstEntry time.Time `json:"first_entry"`
	LastExit   time.Time `json:"last_exit"`
}

// MatchedCycleResponse ciclo Entrada→Saída.
type MatchedCycleResponse struct {
	WorkOrder string    `json:"os"`
	Item      string    `json:"item"`
	OSItem    string    `json:"os_item"`
	Process   string    `json:"process,omitempty"`
	EntryAt   time.Time `json:"entry_at"`
	ExitAt    time.Time `json:"exit_at"`
	Seconds   int64     `json:"seconds"`
	HMS       string    `json:"hms"`
}

// OpenEntryResponse Entrada sin Saída; la edad se calcula al consultar.
type OpenEntryResponse struct {
	WorkOrder  string    `json:"os"`
	Item       string    `json:"item"`
	OSItem     string    `json:"os_item"`
	Process    string    `json:"process,omitempty"`
	EntryAt    time.Time `json:"entry_at"`
	OpenFor    string    `json:"open_for"`
	OpenForSec int64     `json:"open_for_seconds"`
}

// OrphanExitResponse Saída sin Entrada.
type OrphanExitResponse struct {
	WorkOrder string    `json:"os"`
	Item      string    `json:"item"`
	OSItem    string    `json:"os_item"`
	Process   string    `json:"process,omitempty"`
	ExitAt    time.Time `json:"exit_at"`
}

// DailyTotalResponse punto de la serie diaria.
type DailyTotalResponse struct {
	Day     string `json:"day"`
	Cycles  int    `json:"cycles"`
	Seconds int64  `json:"seconds"`
	HMS     string `json:"hms"`
}

// SkippedRowResponse fila del almacén que no pudo interpretarse.
type SkippedRowResponse struct {
	RecordID string `json:"record_id"`
	Row      int    `json:"row"`
	Reason   string `json:"reason"`
}

// CycleReportResponse reporte completo.
type CycleReportResponse struct {
	GeneratedAt   time.Time                `json:"generated_at"`
	Timezone      string                   `json:"timezone"`
	PairByProcess bool                     `json:"pair_by_process"`
	From          string                   `json:"from,omitempty"`
	To            string                   `json:"to,omitempty"`
	Aggregates    []CycleAggregateResponse `json:"aggregates"`
	Cycles        []MatchedCycleResponse   `json:"cycles"`
	Open          []OpenEntryResponse      `json:"open"`
	Orphans       []OrphanExitResponse     `json:"orphans"`
	Top           []CycleAggregateResponse `json:"top"`
	Daily         []DailyTotalResponse     `json:"daily"`
	Skipped       []SkippedRowResponse     `json:"skipped"`
}
