package movement

import (
	"context"
	"io"

	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	"github.com/mmrconsultoria/portal-os/internal/domain/repository"
)

// SheetRow fila leída de una planilla EntradaSaidaOS con su número de fila en la hoja (la cabecera es la 1).
type SheetRow struct {
	Row    int
	Record entity.MovementRecord
}

// SheetReader lee una exportación .xlsx de la planilla de movimientos.
type SheetReader interface {
	ReadMovementSheet(r io.Reader) ([]SheetRow, error)
}

// TxRunner ejecuta fn dentro de una transacción con un almacén atado a ella.
// Si fn devuelve error no queda nada insertado.
type TxRunner interface {
	RunMovements(ctx context.Context, fn func(repo repository.MovementEventRepository) error) error
}
