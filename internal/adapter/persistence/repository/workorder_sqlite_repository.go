package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/identifier"
	"adas_workorders/internal/usecase/interfaces"

	sq "github.com/Masterminds/squirrel"
)

// WorkOrderSQLiteRepository stores one row per work order with the full record
// as a JSON payload. Lookup columns are kept alongside.
//
// Schema: see migrations/sqlite.

type WorkOrderSQLiteRepository struct {
	db *sql.DB
}

var (
	_ interfaces.IWorkOrderRepository = (*WorkOrderSQLiteRepository)(nil)
	_ interfaces.IShopDirectory       = (*WorkOrderSQLiteRepository)(nil)
	_ interfaces.ITechnicianDirectory = (*WorkOrderSQLiteRepository)(nil)
)

func NewWorkOrderSQLiteRepository(db *sql.DB) *WorkOrderSQLiteRepository {
	return &WorkOrderSQLiteRepository{db: db}
}

func (r *WorkOrderSQLiteRepository) findOne(ctx context.Context, where sq.Sqlizer) (entities.WorkOrder, error) {
	query, args, err := sq.Select("version", "payload").
		From("workorders").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("build select: %w", err)
	}
	var version int64
	var payload string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&version, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.WorkOrder{}, nil
		}
		return entities.WorkOrder{}, err
	}
	return decodePayload(version, []byte(payload))
}

func (r *WorkOrderSQLiteRepository) FindByVIN(ctx context.Context, vin string) (entities.WorkOrder, error) {
	vin = identifier.NormalizeVIN(vin)
	if vin == "" {
		return entities.WorkOrder{}, nil
	}
	return r.findOne(ctx, sq.Eq{"vin": vin})
}

func (r *WorkOrderSQLiteRepository) FindByReference(ctx context.Context, ref string) (entities.WorkOrder, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return entities.WorkOrder{}, nil
	}
	query, args, err := sq.Select("id", "reference_number", "created_at").
		From("workorders").
		Where(sq.NotEq{"reference_number": ""}).
		ToSql()
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("build reference scan: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	defer func() { _ = rows.Close() }()

	var candidates []referenceCandidate
	for rows.Next() {
		var c referenceCandidate
		var created string
		if err := rows.Scan(&c.ID, &c.Reference, &created); err != nil {
			return entities.WorkOrder{}, err
		}
		c.CreatedAt = parseTime(created)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return entities.WorkOrder{}, err
	}

	id, _ := pickByReference(candidates, ref)
	if id == "" {
		return entities.WorkOrder{}, nil
	}
	return r.ReadFull(ctx, id)
}

func (r *WorkOrderSQLiteRepository) Insert(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	if wo.Version == 0 {
		wo.Version = 1
	}
	payload, err := encodePayload(wo)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	query, args, err := sq.Insert("workorders").
		Columns(workOrderColumns...).
		Values(wo.ID, wo.Version, identifier.NormalizeVIN(wo.VIN), wo.ReferenceNumber, string(wo.Status),
			formatTime(wo.CreatedAt), formatTime(wo.UpdatedAt), string(payload)).
		ToSql()
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return entities.WorkOrder{}, fmt.Errorf("work order %s already exists: %w", wo.ID, interfaces.ErrVersionConflict)
		}
		return entities.WorkOrder{}, err
	}
	return wo, nil
}

func (r *WorkOrderSQLiteRepository) ReadFull(ctx context.Context, id string) (entities.WorkOrder, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *WorkOrderSQLiteRepository) WriteFull(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	expected := wo.Version
	wo.Version = expected + 1
	payload, err := encodePayload(wo)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	query, args, err := sq.Update("workorders").
		SetMap(map[string]any{
			"version":          wo.Version,
			"vin":              identifier.NormalizeVIN(wo.VIN),
			"reference_number": wo.ReferenceNumber,
			"status":           string(wo.Status),
			"updated_at":       formatTime(wo.UpdatedAt),
			"payload":          string(payload),
		}).
		Where(sq.Eq{"id": wo.ID, "version": expected}).
		ToSql()
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("build update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if n == 0 {
		return entities.WorkOrder{}, interfaces.ErrVersionConflict
	}
	return wo, nil
}

func (r *WorkOrderSQLiteRepository) ListShops(ctx context.Context) ([]entities.Shop, error) {
	query, args, err := sq.Select("name", "region").From("shops").OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build shop query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []entities.Shop
	for rows.Next() {
		var s entities.Shop
		if err := rows.Scan(&s.Name, &s.Region); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *WorkOrderSQLiteRepository) ListTechnicians(ctx context.Context) ([]entities.Technician, error) {
	query, args, err := sq.Select("name", "regions", "active").From("technicians").OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build technician query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []entities.Technician
	for rows.Next() {
		var t entities.Technician
		if err := rows.Scan(&t.Name, &t.Regions, &t.Active); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertShop and UpsertTechnician seed the directory tables.
func (r *WorkOrderSQLiteRepository) UpsertShop(ctx context.Context, s entities.Shop) error {
	query, args, err := sq.Insert("shops").
		Columns("name", "region").
		Values(s.Name, s.Region).
		Suffix("ON CONFLICT(name) DO UPDATE SET region = excluded.region").
		ToSql()
	if err != nil {
		return fmt.Errorf("build shop upsert: %w", err)
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *WorkOrderSQLiteRepository) UpsertTechnician(ctx context.Context, t entities.Technician) error {
	query, args, err := sq.Insert("technicians").
		Columns("name", "regions", "active").
		Values(t.Name, t.Regions, t.Active).
		Suffix("ON CONFLICT(name) DO UPDATE SET regions = excluded.regions, active = excluded.active").
		ToSql()
	if err != nil {
		return fmt.Errorf("build technician upsert: %w", err)
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
