package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmrconsultoria/portal-os/internal/domain"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	"github.com/mmrconsultoria/portal-os/internal/domain/repository"
)

var _ repository.MovementEventRepository = (*MovementEventRepo)(nil)

// MovementEventRepo almacén de movimientos sobre PostgreSQL.
type MovementEventRepo struct {
	db Querier
}

// NewMovementEventRepository construye el repositorio. db puede ser el pool o una tx.
func NewMovementEventRepository(db Querier) *MovementEventRepo {
	return &MovementEventRepo{db: db}
}

const movementColumns = `id, seq, company_code, work_order, item, quantity, process, mov_date, mov_hour,
	operator, machine, movement, work_order_item, control_key, created_by, created_at`

// Create inserta el registro y completa Seq. Una clave de control repetida no aborta la
// transacción en curso: ON CONFLICT no devuelve filas y se informa domain.ErrDuplicate.
func (r *MovementEventRepo) Create(ctx context.Context, rec *entity.MovementRecord) error {
	query := `
		INSERT INTO movement_events (id, company_code, work_order, item, quantity, process, mov_date, mov_hour,
			operator, machine, movement, work_order_item, control_key, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (company_code, control_key) DO NOTHING
		RETURNING seq`
	err := r.db.QueryRow(ctx, query,
		rec.ID, rec.CompanyCode, rec.WorkOrder, rec.Item, rec.Quantity, rec.Process, rec.Date, rec.Hour,
		rec.Operator, rec.Machine, rec.Movement, rec.WorkOrderItem, rec.ControlKey, rec.CreatedBy, rec.CreatedAt,
	).Scan(&rec.Seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement event: %w", err)
	}
	return nil
}

// ListByCompany últimos registros primero.
func (r *MovementEventRepo) ListByCompany(ctx context.Context, companyCode string, filter repository.MovementListFilter) ([]*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + `
		FROM movement_events
		WHERE company_code = $1 AND ($2 = '' OR work_order = $2)
		ORDER BY seq DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, companyCode, filter.WorkOrder, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list movement events: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementRecord
	for rows.Next() {
		rec, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement event: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// ListAll todos los registros de la empresa en orden de inserción.
func (r *MovementEventRepo) ListAll(ctx context.Context, companyCode string) ([]entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + `
		FROM movement_events
		WHERE company_code = $1
		ORDER BY seq`
	rows, err := r.db.Query(ctx, query, companyCode)
	if err != nil {
		return nil, fmt.Errorf("list all movement events: %w", err)
	}
	defer rows.Close()

	list := []entity.MovementRecord{}
	for rows.Next() {
		rec, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement event: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Version cantidad de filas y mayor seq de la empresa.
func (r *MovementEventRepo) Version(ctx context.Context, companyCode string) (repository.SnapshotVersion, error) {
	var v repository.SnapshotVersion
	err := r.db.QueryRow(ctx,
		`SELECT count(*), coalesce(max(seq), 0) FROM movement_events WHERE company_code = $1`,
		companyCode,
	).Scan(&v.Count, &v.MaxSeq)
	if err != nil {
		return v, fmt.Errorf("movement events version: %w", err)
	}
	return v, nil
}

func scanMovement(row pgx.Row) (entity.MovementRecord, error) {
	var rec entity.MovementRecord
	err := row.Scan(
		&rec.ID, &rec.Seq, &rec.CompanyCode, &rec.WorkOrder, &rec.Item, &rec.Quantity, &rec.Process,
		&rec.Date, &rec.Hour, &rec.Operator, &rec.Machine, &rec.Movement, &rec.WorkOrderItem,
		&rec.ControlKey, &rec.CreatedBy, &rec.CreatedAt,
	)
	return rec, err
}
