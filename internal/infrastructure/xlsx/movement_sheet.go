package xlsx

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appmov "github.com/mmrconsultoria/portal-os/internal/application/movement"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	mov "github.com/mmrconsultoria/portal-os/internal/domain/movement"
)

var _ appmov.SheetReader = (*Reader)(nil)

// MovementSheetName hoja preferida de la exportación; si no existe se usa la primera.
const MovementSheetName = "EntradaSaidaOS"

// Columnas de la planilla, ya normalizadas con headerKey.
const (
	colOS       = "os"
	colItem     = "item"
	colQty      = "quantidade"
	colProcess  = "afiacao/erosao"
	colDate     = "data"
	colHour     = "hora"
	colOperator = "operador"
	colMachine  = "maquina"
	colMovement = "entrada/saida"
	colOSItem   = "os-item"
	colControl  = "controle"
)

var requiredColumns = []string{colOS, colItem, colDate, colHour, colMovement}

// Reader lee exportaciones .xlsx de la planilla de movimientos.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

// ReadMovementSheet devuelve las filas no vacías con su número de fila en la hoja.
func (rd *Reader) ReadMovementSheet(r io.Reader) ([]appmov.SheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("planilha inválida: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	for _, name := range f.GetSheetList() {
		if strings.EqualFold(name, MovementSheetName) {
			sheet = name
			break
		}
	}
	// Valores crudos: las celdas de fecha/hora llegan como número de serie y no con el
	// formato de visualización de la hoja (que puede ser "05-06-24").
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("planilha inválida: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("planilha vazia")
	}

	idx := headerIndex(rows[0])
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, strings.ToUpper(c))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("colunas ausentes: %s", strings.Join(missing, ", "))
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	out := make([]appmov.SheetRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		get := func(col string) string {
			j, ok := idx[col]
			if !ok || j >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[j])
		}
		date, hour := dateHour(get(colDate), get(colHour), date1904)
		out = append(out, appmov.SheetRow{
			Row: i + 2,
			Record: entity.MovementRecord{
				WorkOrder:     get(colOS),
				Item:          get(colItem),
				Quantity:      quantity(get(colQty)),
				Process:       get(colProcess),
				Date:          date,
				Hour:          hour,
				Operator:      get(colOperator),
				Machine:       get(colMachine),
				Movement:      get(colMovement),
				WorkOrderItem: get(colOSItem),
				ControlKey:    get(colControl),
			},
		})
	}
	return out, nil
}

// headerIndex mapea columna normalizada → índice. Con columnas repetidas
// (AFIACAO/EROSAO y Afiação/Erosão) gana la que tiene acento.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if k == "" {
			continue
		}
		if _, seen := idx[k]; seen && !hasAccent(h) {
			continue
		}
		idx[k] = i
	}
	return idx
}

func headerKey(h string) string {
	return strings.ReplaceAll(mov.FoldLabel(h), " ", "")
}

func hasAccent(s string) bool {
	return mov.FoldLabel(s) != strings.ToLower(strings.TrimSpace(s))
}

// dateHour pasa a texto DATA y HORA cuando vienen como serie de Excel. Una DATA con
// fracción de día completa la HORA vacía. Los textos se devuelven sin cambios.
func dateHour(date, hour string, date1904 bool) (string, string) {
	if t, ok := serialTime(date, date1904); ok {
		date = t.Format(appmov.DateLayout)
		if hour == "" && t.Hour()+t.Minute()+t.Second() > 0 {
			hour = t.Format(appmov.HourLayout)
		}
	}
	if t, ok := serialTime(hour, date1904); ok {
		hour = t.Format(appmov.HourLayout)
	}
	return date, hour
}

func serialTime(s string, date1904 bool) (time.Time, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return time.Time{}, false
	}
	if v < 1 {
		// solo hora: fracción del día
		secs := math.Round(v * 24 * 60 * 60)
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(secs) * time.Second), true
	}
	t, err := excelize.ExcelDateToTime(v, date1904)
	if err != nil {
		return time.Time{}, false
	}
	return t.Round(time.Second), true
}

func quantity(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
