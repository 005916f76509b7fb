package repository

import (
	"context"
	"fmt"

	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

// MovementListFilter filtros del listado paginado de registros crudos.
type MovementListFilter struct {
	WorkOrder string
	Limit     int
	Offset    int
}

// SnapshotVersion identifica el estado del almacén de una empresa. Cambia con cada inserción.
type SnapshotVersion struct {
	Count  int64
	MaxSeq int64
}

func (v SnapshotVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Count, v.MaxSeq)
}

// MovementEventRepository almacén de registros de Entrada/Saída OS (append-only).
type MovementEventRepository interface {
	// Create devuelve domain.ErrDuplicate si la clave de control ya existe en la empresa.
	Create(ctx context.Context, rec *entity.MovementRecord) error
	ListByCompany(ctx context.Context, companyCode string, filter MovementListFilter) ([]*entity.MovementRecord, error)
	// ListAll devuelve todos los registros de la empresa en orden de inserción.
	ListAll(ctx context.Context, companyCode string) ([]entity.MovementRecord, error)
	Version(ctx context.Context, companyCode string) (SnapshotVersion, error)
}
