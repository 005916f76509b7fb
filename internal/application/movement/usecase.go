package movement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmrconsultoria/portal-os/internal/application/dto"
	"github.com/mmrconsultoria/portal-os/internal/domain"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	mov "github.com/mmrconsultoria/portal-os/internal/domain/movement"
	"github.com/mmrconsultoria/portal-os/internal/domain/repository"
	"github.com/mmrconsultoria/portal-os/pkg/logger"
)

// Formatos con que se guardan DATA y HORA (los mismos de la planilla).
const (
	DateLayout = "02/01/2006"
	HourLayout = "15:04:05"
)

// MsgAmbiguousTime el instante cae en la hora que se repite al terminar el horario de verano.
const MsgAmbiguousTime = "Data/hora ambígua no fuso do portal (fim do horário de verão); informe outro horário."

// MovementUseCase captura de movimientos Entrada/Saída OS.
type MovementUseCase struct {
	repo   repository.MovementEventRepository
	sheets SheetReader
	tx     TxRunner
	loc    *time.Location
	now    func() time.Time
	log    *logger.Logger
}

// NewMovementUseCase construye el caso de uso. loc es la zona del portal.
func NewMovementUseCase(repo repository.MovementEventRepository, sheets SheetReader, loc *time.Location, log *logger.Logger) *MovementUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MovementUseCase{
		repo:   repo,
		sheets: sheets,
		loc:    loc,
		now:    time.Now,
		log:    log.Component("movement"),
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *MovementUseCase) WithClock(now func() time.Time) *MovementUseCase {
	uc.now = now
	return uc
}

// WithTxRunner hace que ImportSheet inserte todo en una sola transacción.
func (uc *MovementUseCase) WithTxRunner(tx TxRunner) *MovementUseCase {
	uc.tx = tx
	return uc
}

// RegisterEvent valida el formulario y guarda el registro. Devuelve domain.ErrDuplicate si ya
// existe un registro con la misma clave de control.
func (uc *MovementUseCase) RegisterEvent(ctx context.Context, companyCode, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	var problems []string
	os := strings.TrimSpace(in.WorkOrder)
	if os == "" {
		problems = append(problems, "Informe o número da OS.")
	}
	if in.Item == nil {
		problems = append(problems, "Informe o Item.")
	} else if *in.Item < 0 {
		problems = append(problems, "Item não pode ser negativo.")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		problems = append(problems, "Quantidade deve ser maior que zero.")
	}
	if strings.TrimSpace(in.Operator) == "" {
		problems = append(problems, "Informe o Operador.")
	}
	if strings.TrimSpace(in.Machine) == "" {
		problems = append(problems, "Informe a Máquina.")
	}
	dir, err := mov.ParseDirection(in.Movement)
	if err != nil {
		problems = append(problems, "Movimento deve ser Entrada ou Saída.")
	}
	if len(problems) > 0 {
		return nil, &domain.ValidationError{Problems: problems}
	}

	ts := uc.now()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	// DATA/HORA se guardan como hora de reloj local: una hora repetida por el fin del
	// horario de verano no se podría reconciliar después.
	local := ts.In(uc.loc)
	if _, err := mov.ParseTimestamp(local.Format(DateLayout), local.Format(HourLayout), uc.loc); err != nil {
		return nil, &domain.ValidationError{Problems: []string{MsgAmbiguousTime}}
	}

	rec := uc.buildRecord(companyCode, userID, entity.MovementRecord{
		WorkOrder: os,
		Item:      strconv.Itoa(*in.Item),
		Quantity:  in.Quantity,
		Process:   strings.TrimSpace(in.Process),
		Operator:  strings.TrimSpace(in.Operator),
		Machine:   strings.TrimSpace(in.Machine),
	}, dir, ts)

	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company", companyCode).
		Str("os_item", rec.WorkOrderItem).
		Str("movement", rec.Movement).
		Msg("movimento registrado")
	return ToMovementResponse(rec), nil
}

// ListEvents lista los registros crudos de la empresa, más recientes primero.
func (uc *MovementUseCase) ListEvents(ctx context.Context, companyCode string, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	recs, err := uc.repo.ListByCompany(ctx, companyCode, repository.MovementListFilter{
		WorkOrder: mov.CanonicalID(in.WorkOrder),
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(recs)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, r := range recs {
		out.Items = append(out.Items, *ToMovementResponse(r))
	}
	return out, nil
}

// ImportSheet carga en bloque una exportación .xlsx de la planilla. Las filas ilegibles se
// informan como inválidas y las repetidas como duplicadas; el resto se inserta.
func (uc *MovementUseCase) ImportSheet(ctx context.Context, companyCode, userID string, r io.Reader) (*dto.ImportSheetResponse, error) {
	if uc.sheets == nil {
		return nil, fmt.Errorf("import sheet: lector de planillas no configurado")
	}
	rows, err := uc.sheets.ReadMovementSheet(r)
	if err != nil {
		return nil, &domain.ValidationError{Problems: []string{err.Error()}}
	}

	out := &dto.ImportSheetResponse{Errors: []dto.ImportRowError{}}
	insert := func(repo repository.MovementEventRepository) error {
		for _, row := range rows {
			events, skipped := mov.Normalize([]entity.MovementRecord{row.Record}, uc.loc)
			if len(skipped) > 0 {
				out.Invalid++
				out.Errors = append(out.Errors, dto.ImportRowError{Row: row.Row, Reason: skipped[0].Reason})
				continue
			}
			ev := events[0]
			raw := row.Record
			raw.WorkOrder = ev.WorkOrderID
			raw.Item = ev.ItemID
			raw.Process = ev.ProcessTag
			raw.Operator = ev.Operator
			raw.Machine = ev.MachineID
			rec := uc.buildRecord(companyCode, userID, raw, ev.Direction, ev.Timestamp)
			rec.WorkOrderItem = ev.GroupingKey

			switch err := repo.Create(ctx, rec); {
			case errors.Is(err, domain.ErrDuplicate):
				out.Duplicates++
			case err != nil:
				return fmt.Errorf("import sheet fila %d: %w", row.Row, err)
			default:
				out.Inserted++
			}
		}
		return nil
	}

	if uc.tx != nil {
		err = uc.tx.RunMovements(ctx, insert)
	} else {
		err = insert(uc.repo)
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company", companyCode).
		Int("inserted", out.Inserted).
		Int("duplicates", out.Duplicates).
		Int("invalid", out.Invalid).
		Msg("planilha importada")
	return out, nil
}

// buildRecord completa fecha/hora en la zona del portal, etiqueta canónica y claves.
func (uc *MovementUseCase) buildRecord(companyCode, userID string, rec entity.MovementRecord, dir entity.Direction, ts time.Time) *entity.MovementRecord {
	local := ts.In(uc.loc)
	rec.ID = uuid.New().String()
	rec.CompanyCode = companyCode
	rec.Date = local.Format(DateLayout)
	rec.Hour = local.Format(HourLayout)
	rec.Movement = dir.Label()
	if rec.WorkOrderItem == "" {
		rec.WorkOrderItem = mov.GroupingKey(rec.WorkOrder, rec.Item)
	}
	rec.ControlKey = mov.ControlKey(rec.WorkOrder, rec.Item, rec.Process, rec.Date, rec.Hour, rec.Movement)
	rec.CreatedBy = userID
	rec.CreatedAt = uc.now()
	return &rec
}

// ToMovementResponse adapta el registro al DTO de salida.
func ToMovementResponse(r *entity.MovementRecord) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:            r.ID,
		WorkOrder:     r.WorkOrder,
		Item:          r.Item,
		Quantity:      r.Quantity,
		Process:       r.Process,
		Date:          r.Date,
		Hour:          r.Hour,
		Operator:      r.Operator,
		Machine:       r.Machine,
		Movement:      r.Movement,
		WorkOrderItem: r.WorkOrderItem,
		ControlKey:    r.ControlKey,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
	}
}
