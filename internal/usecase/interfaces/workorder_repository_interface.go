package interfaces

import (
	"context"
	"errors"

	"adas_workorders/internal/domain/entities"
)

// ErrVersionConflict is returned by WriteFull when the stored version no
// longer matches the one the caller read.
var ErrVersionConflict = errors.New("work order version conflict")

// IWorkOrderRepository abstracts the row-oriented store of work orders.
//
// The engine must be able to:
//   - find a record by exact VIN
//   - find a record by reference number (exact, suffix-stripped, numeric prefix)
//   - insert a new record
//   - read and write a record as a whole; there are no partial-field writes
//
// Finders return the zero WorkOrder when nothing matches.

type IWorkOrderRepository interface {
	FindByVIN(ctx context.Context, vin string) (entities.WorkOrder, error)
	FindByReference(ctx context.Context, ref string) (entities.WorkOrder, error)
	Insert(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error)
	ReadFull(ctx context.Context, id string) (entities.WorkOrder, error)
	WriteFull(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error)
}
