package interfaces

import (
	"context"

	"adas_workorders/internal/domain/entities"
)

// IShopDirectory is the shop -> service region lookup table.
type IShopDirectory interface {
	ListShops(ctx context.Context) ([]entities.Shop, error)
}

// ITechnicianDirectory is the region -> technician lookup table.
type ITechnicianDirectory interface {
	ListTechnicians(ctx context.Context) ([]entities.Technician, error)
}
