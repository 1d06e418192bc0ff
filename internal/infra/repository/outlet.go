package repository

import (
	"context"
	"time"

	"food-delivery-api/internal/domain/outlet"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const outletColumns = `id, name, code, city, phone, opens_at, closes_at, is_active, created_at, updated_at`

type OutletRepository struct {
	db db.DBTX
}

func NewOutletRepository(dbtx db.DBTX) *OutletRepository {
	return &OutletRepository{db: dbtx}
}

func (r *OutletRepository) Create(ctx context.Context, o *outlet.Outlet) error {
	opens, closes := hoursArgs(o.Hours())
	_, err := r.db.Exec(ctx, `
		INSERT INTO outlets (id, name, code, city, phone, opens_at, closes_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID(), o.Name(), codeArg(o.Code()), o.City(), o.Phone(), opens, closes, o.IsActive(), o.CreatedAt(), o.UpdatedAt(),
	)
	return outletWriteErr("failed to create outlet", err)
}

func (r *OutletRepository) Update(ctx context.Context, o *outlet.Outlet) error {
	opens, closes := hoursArgs(o.Hours())
	tag, err := r.db.Exec(ctx, `
		UPDATE outlets SET name = $2, code = $3, city = $4, phone = $5, opens_at = $6, closes_at = $7,
			is_active = $8, updated_at = $9
		WHERE id = $1`,
		o.ID(), o.Name(), codeArg(o.Code()), o.City(), o.Phone(), opens, closes, o.IsActive(), o.UpdatedAt(),
	)
	if err != nil {
		return outletWriteErr("failed to update outlet", err)
	}
	if tag.RowsAffected() == 0 {
		return outlet.ErrOutletNotFound
	}
	return nil
}

func (r *OutletRepository) LockByID(ctx context.Context, id uuid.UUID) (*outlet.Outlet, error) {
	return scanOutlet(r.db.QueryRow(ctx, `SELECT `+outletColumns+` FROM outlets WHERE id = $1 FOR UPDATE`, id))
}

func outletWriteErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := infra.WrapRepoErr(msg, err)
	if infra.IsKind(wrapped, infra.KindDuplicateKey) {
		return errs.Wrap(outlet.ErrDuplicateOutlet, msg)
	}
	return wrapped
}

func codeArg(code string) pgtype.Text {
	return pgtype.Text{String: code, Valid: code != ""}
}

func hoursArgs(h *outlet.Hours) (pgtype.Text, pgtype.Text) {
	if h == nil {
		return pgtype.Text{}, pgtype.Text{}
	}
	return pgtype.Text{String: h.Opens, Valid: true}, pgtype.Text{String: h.Closes, Valid: true}
}

func scanOutlet(row pgx.Row) (*outlet.Outlet, error) {
	var (
		id                   uuid.UUID
		d                    outlet.Details
		code, opens, closes  pgtype.Text
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &d.Name, &code, &d.City, &d.Phone, &opens, &closes, &d.IsActive, &createdAt, &updatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, outlet.ErrOutletNotFound
		}
		return nil, infra.WrapRepoErr("failed to scan outlet", err)
	}
	d.Code = code.String
	if opens.Valid && closes.Valid {
		d.Hours = &outlet.Hours{Opens: opens.String, Closes: closes.String}
	}
	return outlet.ReconstructOutlet(id, d, createdAt, updatedAt), nil
}
