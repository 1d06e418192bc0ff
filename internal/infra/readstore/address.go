package readstore

import (
	"context"

	"food-delivery-api/internal/domain/address"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/pgconv"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const addressViewColumns = `id, label, line1, line2, landmark, city, state, pincode, lat, lng,
	contact_name, contact_phone, instructions, is_default, created_at, updated_at`

type AddressReadStore struct {
	db db.DBTX
}

func NewAddressReadStore(dbtx db.DBTX) *AddressReadStore {
	return &AddressReadStore{db: dbtx}
}

// FindByID is scoped to the owner, so other users' ids read as not found.
func (r *AddressReadStore) FindByID(ctx context.Context, userID, id uuid.UUID) (*queries.AddressView, error) {
	v, err := scanAddressView(r.db.QueryRow(ctx,
		`SELECT `+addressViewColumns+` FROM addresses WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, address.ErrAddressNotFound
		}
		return nil, infra.WrapRepoErr("failed to find address", err)
	}
	return v, nil
}

func (r *AddressReadStore) FindDefault(ctx context.Context, userID uuid.UUID) (*queries.AddressView, error) {
	v, err := scanAddressView(r.db.QueryRow(ctx,
		`SELECT `+addressViewColumns+` FROM addresses WHERE user_id = $1 AND is_default`, userID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, address.ErrNoDefaultAddress
		}
		return nil, infra.WrapRepoErr("failed to find default address", err)
	}
	return v, nil
}

// ListByUser puts the default first, then newest first.
func (r *AddressReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.AddressView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+addressViewColumns+` FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC, id`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list addresses", err)
	}
	defer rows.Close()

	var out []*queries.AddressView
	for rows.Next() {
		v, err := scanAddressView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan address", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate addresses", err)
	}
	return out, nil
}

func scanAddressView(row pgx.Row) (*queries.AddressView, error) {
	var (
		v        queries.AddressView
		lat, lng pgtype.Float8
	)
	err := row.Scan(&v.ID, &v.Label, &v.Line1, &v.Line2, &v.Landmark, &v.City, &v.State, &v.Pincode, &lat, &lng,
		&v.ContactName, &v.ContactPhone, &v.Instructions, &v.IsDefault, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		v.Location = &order.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
	}
	return &v, nil
}
