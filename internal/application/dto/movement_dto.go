package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest formulario Entrada/Saída OS.
// Sin timestamp se usa la hora actual en la zona del portal.
type RegisterMovementRequest struct {
	WorkOrder string          `json:"os"`
	Item      *int            `json:"item"`
	Quantity  decimal.Decimal `json:"quantity"`
	Process   string          `json:"process"` // Afiação / Erosão
	Operator  string          `json:"operator"`
	Machine   string          `json:"machine"`
	Movement  string          `json:"movement"` // Entrada / Saída
	Timestamp *time.Time      `json:"timestamp,omitempty"`
}

// MovementResponse registro almacenado, con las columnas de la planilla.
type MovementResponse struct {
	ID            string          `json:"id"`
	WorkOrder     string          `json:"os"`
	Item          string          `json:"item"`
	Quantity      decimal.Decimal `json:"quantity"`
	Process       string          `json:"process"`
	Date          string          `json:"date"`
	Hour          string          `json:"hour"`
	Operator      string          `json:"operator"`
	Machine       string          `json:"machine"`
	Movement      string          `json:"movement"`
	WorkOrderItem string          `json:"os_item"`
	ControlKey    string          `json:"control_key"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListRequest filtros del listado.
type MovementListRequest struct {
	PageRequest
	WorkOrder string `query:"os"`
}

// MovementListResponse página de registros.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ImportRowError fila rechazada de una planilla importada.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportSheetResponse resumen de una importación de planilla.
type ImportSheetResponse struct {
	Inserted   int              `json:"inserted"`
	Duplicates int              `json:"duplicates"`
	Invalid    int              `json:"invalid"`
	Errors     []ImportRowError `json:"errors"`
}
