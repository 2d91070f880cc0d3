package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/identifier"
	"adas_workorders/internal/usecase/interfaces"
)

// WorkOrderMemoryRepository keeps work orders in process memory. It backs
// WORKORDER_STORE=memory and the engine's end-to-end tests.
type WorkOrderMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]entities.WorkOrder
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderMemoryRepository)(nil)

func NewWorkOrderMemoryRepository() *WorkOrderMemoryRepository {
	return &WorkOrderMemoryRepository{items: make(map[string]entities.WorkOrder)}
}

func (r *WorkOrderMemoryRepository) FindByVIN(_ context.Context, vin string) (entities.WorkOrder, error) {
	vin = identifier.NormalizeVIN(vin)
	if vin == "" {
		return entities.WorkOrder{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best entities.WorkOrder
	for _, wo := range r.items {
		if identifier.NormalizeVIN(wo.VIN) != vin {
			continue
		}
		if !best.Exists() || wo.CreatedAt.Before(best.CreatedAt) ||
			(wo.CreatedAt.Equal(best.CreatedAt) && wo.ID < best.ID) {
			best = wo
		}
	}
	return best.Clone(), nil
}

func (r *WorkOrderMemoryRepository) FindByReference(_ context.Context, ref string) (entities.WorkOrder, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return entities.WorkOrder{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	candidates := make([]referenceCandidate, 0, len(r.items))
	for _, wo := range r.items {
		if wo.ReferenceNumber == "" {
			continue
		}
		candidates = append(candidates, referenceCandidate{ID: wo.ID, Reference: wo.ReferenceNumber, CreatedAt: wo.CreatedAt})
	}
	id, _ := pickByReference(candidates, ref)
	if id == "" {
		return entities.WorkOrder{}, nil
	}
	return r.items[id].Clone(), nil
}

func (r *WorkOrderMemoryRepository) Insert(_ context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[wo.ID]; ok {
		return entities.WorkOrder{}, fmt.Errorf("work order %s already exists: %w", wo.ID, interfaces.ErrVersionConflict)
	}
	if wo.Version == 0 {
		wo.Version = 1
	}
	r.items[wo.ID] = wo.Clone()
	return wo, nil
}

func (r *WorkOrderMemoryRepository) ReadFull(_ context.Context, id string) (entities.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wo, ok := r.items[id]
	if !ok {
		return entities.WorkOrder{}, nil
	}
	return wo.Clone(), nil
}

func (r *WorkOrderMemoryRepository) WriteFull(_ context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[wo.ID]
	if !ok || current.Version != wo.Version {
		return entities.WorkOrder{}, interfaces.ErrVersionConflict
	}
	wo.Version++
	r.items[wo.ID] = wo.Clone()
	return wo, nil
}

// StaticDirectory serves fixed shop and technician tables.
type StaticDirectory struct {
	Shops       []entities.Shop
	Technicians []entities.Technician
}

var (
	_ interfaces.IShopDirectory       = StaticDirectory{}
	_ interfaces.ITechnicianDirectory = StaticDirectory{}
)

func (d StaticDirectory) ListShops(context.Context) ([]entities.Shop, error) {
	return append([]entities.Shop(nil), d.Shops...), nil
}

func (d StaticDirectory) ListTechnicians(context.Context) ([]entities.Technician, error) {
	return append([]entities.Technician(nil), d.Technicians...), nil
}
