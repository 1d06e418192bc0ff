package repository

import (
	"context"
	"time"

	"food-delivery-api/internal/domain/address"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const addressColumns = `id, user_id, label, line1, line2, landmark, city, state, pincode, lat, lng,
	contact_name, contact_phone, instructions, is_default, created_at, updated_at`

type AddressRepository struct {
	db db.DBTX
}

func NewAddressRepository(dbtx db.DBTX) *AddressRepository {
	return &AddressRepository{db: dbtx}
}

func (r *AddressRepository) Create(ctx context.Context, a *address.Address) error {
	d := a.Details()
	lat, lng := geoArgs(d.Location)
	_, err := r.db.Exec(ctx, `
		INSERT INTO addresses (id, user_id, label, line1, line2, landmark, city, state, pincode, lat, lng,
			contact_name, contact_phone, instructions, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		a.ID(), a.UserID(), string(d.Label), d.Line1, d.Line2, d.Landmark, d.City, d.State, d.Pincode, lat, lng,
		d.ContactName, d.ContactPhone, d.Instructions, a.IsDefault(), a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create address", err)
	}
	return nil
}

func (r *AddressRepository) Update(ctx context.Context, a *address.Address) error {
	d := a.Details()
	lat, lng := geoArgs(d.Location)
	tag, err := r.db.Exec(ctx, `
		UPDATE addresses SET label = $2, line1 = $3, line2 = $4, landmark = $5, city = $6, state = $7, pincode = $8,
			lat = $9, lng = $10, contact_name = $11, contact_phone = $12, instructions = $13, is_default = $14,
			updated_at = $15
		WHERE id = $1`,
		a.ID(), string(d.Label), d.Line1, d.Line2, d.Landmark, d.City, d.State, d.Pincode, lat, lng,
		d.ContactName, d.ContactPhone, d.Instructions, a.IsDefault(), a.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update address", err)
	}
	if tag.RowsAffected() == 0 {
		return address.ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete address", err)
	}
	if tag.RowsAffected() == 0 {
		return address.ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*address.Address, error) {
	return scanAddress(r.db.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
}

func (r *AddressRepository) FindDefault(ctx context.Context, userID uuid.UUID) (*address.Address, error) {
	a, err := scanAddress(r.db.QueryRow(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 AND is_default`, userID))
	if err != nil {
		if errs.Is(err, address.ErrAddressNotFound) {
			return nil, address.ErrNoDefaultAddress
		}
		return nil, err
	}
	return a, nil
}

// CountByUser locks the owner's user row first, so concurrent creates for the
// same user queue up and each sees the others' inserts.
func (r *AddressRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if _, err := r.db.Exec(ctx, `SELECT 1 FROM users WHERE id = $1 FOR NO KEY UPDATE`, userID); err != nil {
		return 0, infra.WrapRepoErr("failed to lock address owner", err)
	}
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM addresses WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count addresses", err)
	}
	return n, nil
}

// ClearDefault unsets the current default so a new one can satisfy the
// one-default-per-user index.
func (r *AddressRepository) ClearDefault(ctx context.Context, userID uuid.UUID, now time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE addresses SET is_default = FALSE, updated_at = $2 WHERE user_id = $1 AND is_default`, userID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to clear default address", err)
	}
	return nil
}

// PromoteLatest makes the newest remaining address the default, if any.
func (r *AddressRepository) PromoteLatest(ctx context.Context, userID uuid.UUID, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE addresses SET is_default = TRUE, updated_at = $2
		WHERE id = (SELECT id FROM addresses WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1)
		  AND NOT EXISTS (SELECT 1 FROM addresses WHERE user_id = $1 AND is_default)`, userID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to promote default address", err)
	}
	return nil
}

func scanAddress(row pgx.Row) (*address.Address, error) {
	var (
		id, userID           uuid.UUID
		d                    address.Details
		label                string
		lat, lng             pgtype.Float8
		isDefault            bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &userID, &label, &d.Line1, &d.Line2, &d.Landmark, &d.City, &d.State, &d.Pincode, &lat, &lng,
		&d.ContactName, &d.ContactPhone, &d.Instructions, &isDefault, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, address.ErrAddressNotFound
		}
		return nil, infra.WrapRepoErr("failed to scan address", err)
	}
	d.Label = address.Label(label)
	if lat.Valid && lng.Valid {
		d.Location = &order.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
	}
	return address.ReconstructAddress(id, userID, d, isDefault, createdAt, updatedAt), nil
}
