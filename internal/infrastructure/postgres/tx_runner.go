package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	appmov "github.com/mmrconsultoria/portal-os/internal/application/movement"
	"github.com/mmrconsultoria/portal-os/internal/domain/repository"
)

var _ appmov.TxRunner = (*TxRunner)(nil)

// TxBeginner lo cumplen *pgxpool.Pool y pgxmock.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunMovements inicia una transacción, ejecuta fn con el almacén de movimientos atado a
// la tx y hace Commit o Rollback.
func (r *TxRunner) RunMovements(ctx context.Context, fn func(repo repository.MovementEventRepository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovementEventRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
