package usecase

import (
	"context"
	"strings"

	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// AssignmentResolver derives the responsible technician for a new work order
// from the shop's service region.
type AssignmentResolver struct {
	shops             interfaces.IShopDirectory
	technicians       interfaces.ITechnicianDirectory
	defaultTechnician string
	logger            *zap.Logger
}

func NewAssignmentResolver(shops interfaces.IShopDirectory, technicians interfaces.ITechnicianDirectory, defaultTechnician string, logger *zap.Logger) *AssignmentResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentResolver{
		shops:             shops,
		technicians:       technicians,
		defaultTechnician: strings.TrimSpace(defaultTechnician),
		logger:            logger,
	}
}

// Resolve keeps an existing assignment; otherwise it walks shop -> region ->
// active technician and falls back to the default technician at any miss.
func (r *AssignmentResolver) Resolve(ctx context.Context, shopName, assigned string) string {
	if a := strings.TrimSpace(assigned); a != "" {
		return a
	}

	region := r.regionFor(ctx, shopName)
	if region == "" {
		r.logger.Debug("[assignment][resolver] no region for shop; using default",
			zap.String("shop", shopName), zap.String("technician", r.defaultTechnician))
		return r.defaultTechnician
	}

	if r.technicians == nil {
		return r.defaultTechnician
	}
	techs, err := r.technicians.ListTechnicians(ctx)
	if err != nil {
		r.logger.Warn("[assignment][resolver] technician lookup failed; using default", zap.Error(err))
		return r.defaultTechnician
	}
	for _, t := range techs {
		if t.Active && strings.TrimSpace(t.Name) != "" && t.Covers(region) {
			r.logger.Debug("[assignment][resolver] technician resolved",
				zap.String("shop", shopName), zap.String("region", region), zap.String("technician", t.Name))
			return strings.TrimSpace(t.Name)
		}
	}
	r.logger.Debug("[assignment][resolver] no active technician for region; using default",
		zap.String("region", region), zap.String("technician", r.defaultTechnician))
	return r.defaultTechnician
}

func (r *AssignmentResolver) regionFor(ctx context.Context, shopName string) string {
	name := strings.ToLower(strings.TrimSpace(shopName))
	if name == "" || r.shops == nil {
		return ""
	}
	shops, err := r.shops.ListShops(ctx)
	if err != nil {
		r.logger.Warn("[assignment][resolver] shop lookup failed", zap.Error(err))
		return ""
	}
	return matchShopRegion(shops, name)
}

// matchShopRegion prefers an exact (case-insensitive) name, then a substring
// match in either direction.
func matchShopRegion(shops []entities.Shop, name string) string {
	for _, s := range shops {
		if strings.ToLower(strings.TrimSpace(s.Name)) == name {
			return strings.TrimSpace(s.Region)
		}
	}
	for _, s := range shops {
		candidate := strings.ToLower(strings.TrimSpace(s.Name))
		if candidate == "" {
			continue
		}
		if strings.Contains(name, candidate) || strings.Contains(candidate, name) {
			return strings.TrimSpace(s.Region)
		}
	}
	return ""
}
