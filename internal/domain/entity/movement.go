package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido de un movimiento de OS.
type Direction string

const (
	DirectionEntry Direction = "ENTRY"
	DirectionExit  Direction = "EXIT"
)

// Etiquetas con que se registran los movimientos en la planilla/almacén.
const (
	LabelEntry = "Entrada"
	LabelExit  = "Saída"
)

// Label devuelve la etiqueta canónica del sentido.
func (d Direction) Label() string {
	switch d {
	case DirectionEntry:
		return LabelEntry
	case DirectionExit:
		return LabelExit
	default:
		return ""
	}
}

// MovementRecord fila cruda del almacén de eventos, con las mismas columnas de la
// planilla EntradaSaidaOS. Fecha y hora quedan como texto: se interpretan al reconciliar.
type MovementRecord struct {
	ID            string
	Seq           int64 // orden de inserción
	CompanyCode   string
	WorkOrder     string          // OS
	Item          string          // ITEM
	Quantity      decimal.Decimal // QUANTIDADE
	Process       string          // AFIACAO/EROSAO
	Date          string          // DATA (dd/mm/aaaa)
	Hour          string          // HORA (hh:mm:ss)
	Operator      string          // OPERADOR
	Machine       string          // MAQUINA
	Movement      string          // ENTRADA/SAIDA
	WorkOrderItem string          // OS- Item
	ControlKey    string          // Controle (clave natural anti-duplicados)
	CreatedBy     string
	CreatedAt     time.Time
}

// MovementEvent evento ya normalizado: sentido resuelto y timestamp sin ambigüedad.
type MovementEvent struct {
	RecordID    string
	WorkOrderID string
	ItemID      string
	GroupingKey string // "OS-ITEM"
	ProcessTag  string
	Direction   Direction
	Timestamp   time.Time
	MachineID   string
	Operator    string
	Quantity    decimal.Decimal
}
