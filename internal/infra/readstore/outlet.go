package readstore

import (
	"context"

	"food-delivery-api/internal/domain/outlet"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/pgconv"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const outletViewColumns = `id, name, code, city, phone, opens_at, closes_at, is_active, created_at, updated_at`

type OutletReadStore struct {
	db db.DBTX
}

func NewOutletReadStore(dbtx db.DBTX) *OutletReadStore {
	return &OutletReadStore{db: dbtx}
}

func (r *OutletReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OutletView, error) {
	v, err := scanOutletView(r.db.QueryRow(ctx, `SELECT `+outletViewColumns+` FROM outlets WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, outlet.ErrOutletNotFound
		}
		return nil, infra.WrapRepoErr("failed to find outlet", err)
	}
	return v, nil
}

func (r *OutletReadStore) List(ctx context.Context, f queries.OutletFilter) ([]*queries.OutletView, int, error) {
	var w whereBuilder
	if !f.IncludeInactive {
		w.add("is_active")
	}
	if f.City != "" {
		w.add("lower(city) = lower(?)", f.City)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		w.add("(name ILIKE ? OR code ILIKE ?)", p, p)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM outlets`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count outlets", err)
	}

	limit, args := w.page(f.Limit, f.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+outletViewColumns+` FROM outlets`+w.sql()+` ORDER BY name, id`+limit, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list outlets", err)
	}
	defer rows.Close()

	out := make([]*queries.OutletView, 0, f.Limit)
	for rows.Next() {
		v, err := scanOutletView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan outlet", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate outlets", err)
	}
	return out, total, nil
}

func scanOutletView(row pgx.Row) (*queries.OutletView, error) {
	var (
		v                   queries.OutletView
		code, opens, closes pgtype.Text
	)
	if err := row.Scan(&v.ID, &v.Name, &code, &v.City, &v.Phone, &opens, &closes, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.Code = pgconv.StringPtrFromPgtype(code)
	if opens.Valid && closes.Valid {
		v.Hours = &outlet.Hours{Opens: opens.String, Closes: closes.String}
	}
	return &v, nil
}
