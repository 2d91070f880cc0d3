package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/identifier"
	"adas_workorders/internal/usecase/interfaces"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// WorkOrderPostgresRepository persists work orders in PostgreSQL with the full
// record in a JSONB payload column.
//
// Schema: see migrations/postgres.

type WorkOrderPostgresRepository struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

var (
	_ interfaces.IWorkOrderRepository = (*WorkOrderPostgresRepository)(nil)
	_ interfaces.IShopDirectory       = (*WorkOrderPostgresRepository)(nil)
	_ interfaces.ITechnicianDirectory = (*WorkOrderPostgresRepository)(nil)
)

func NewWorkOrderPostgresRepository(pool *pgxpool.Pool) *WorkOrderPostgresRepository {
	return &WorkOrderPostgresRepository{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *WorkOrderPostgresRepository) findOne(ctx context.Context, where sq.Sqlizer) (entities.WorkOrder, error) {
	query, args, err := r.psql.Select("version", "payload").
		From("workorders").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("build select: %w", err)
	}
	var version int64
	var payload []byte
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&version, &payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.WorkOrder{}, nil
		}
		return entities.WorkOrder{}, err
	}
	return decodePayload(version, payload)
}

func (r *WorkOrderPostgresRepository) FindByVIN(ctx context.Context, vin string) (entities.WorkOrder, error) {
	vin = identifier.NormalizeVIN(vin)
	if vin == "" {
		return entities.WorkOrder{}, nil
	}
	return r.findOne(ctx, sq.Eq{"vin": vin})
}

func (r *WorkOrderPostgresRepository) FindByReference(ctx context.Context, ref string) (entities.WorkOrder, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return entities.WorkOrder{}, nil
	}
	wo, err := r.findOne(ctx, sq.Expr("lower(reference_number) = lower(?)", ref))
	if err != nil || wo.Exists() {
		return wo, err
	}

	query, args, err := r.psql.Select("id", "reference_number", "created_at").
		From("workorders").
		Where(sq.NotEq{"reference_number": ""}).
		ToSql()
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("build reference scan: %w", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	defer rows.Close()

	var candidates []referenceCandidate
	for rows.Next() {
		var c referenceCandidate
		if err := rows.Scan(&c.ID, &c.Reference, &c.CreatedAt); err != nil {
			return entities.WorkOrder{}, err
		}
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

func (r *WorkOrderPostgresRepository) Insert(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	if wo.Version == 0 {
		wo.Version = 1
	}
	payload, err := encodePayload(wo)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	query, args, err := r.psql.Insert("workorders").
		Columns(workOrderColumns...).
		Values(wo.ID, wo.Version, identifier.NormalizeVIN(wo.VIN), wo.ReferenceNumber, string(wo.Status),
			wo.CreatedAt.UTC(), wo.UpdatedAt.UTC(), payload).
		ToSql()
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return entities.WorkOrder{}, fmt.Errorf("work order %s already exists: %w", wo.ID, interfaces.ErrVersionConflict)
		}
		return entities.WorkOrder{}, err
	}
	return wo, nil
}

func (r *WorkOrderPostgresRepository) ReadFull(ctx context.Context, id string) (entities.WorkOrder, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *WorkOrderPostgresRepository) WriteFull(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	expected := wo.Version
	wo.Version = expected + 1
	payload, err := encodePayload(wo)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	query, args, err := r.psql.Update("workorders").
		SetMap(map[string]any{
			"version":          wo.Version,
			"vin":              identifier.NormalizeVIN(wo.VIN),
			"reference_number": wo.ReferenceNumber,
			"status":           string(wo.Status),
			"updated_at":       wo.UpdatedAt.UTC(),
			"payload":          payload,
		}).
		Where(sq.Eq{"id": wo.ID, "version": expected}).
		ToSql()
	if err != nil {
		return entities.WorkOrder{}, fmt.Errorf("build update: %w", err)
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if tag.RowsAffected() == 0 {
		return entities.WorkOrder{}, interfaces.ErrVersionConflict
	}
	return wo, nil
}

func (r *WorkOrderPostgresRepository) ListShops(ctx context.Context) ([]entities.Shop, error) {
	query, args, err := r.psql.Select("name", "region").From("shops").OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Shop, error) {
		var s entities.Shop
		err := row.Scan(&s.Name, &s.Region)
		return s, err
	})
}

func (r *WorkOrderPostgresRepository) ListTechnicians(ctx context.Context) ([]entities.Technician, error) {
	query, args, err := r.psql.Select("name", "regions", "active").From("technicians").OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Technician, error) {
		var t entities.Technician
		err := row.Scan(&t.Name, &t.Regions, &t.Active)
		return t, err
	})
}
