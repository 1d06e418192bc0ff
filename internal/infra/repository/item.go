package repository

import (
	"context"
	"encoding/json"
	"time"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const itemColumns = `id, outlet_id, name, slug, category, description, image_url, is_veg, price_cents,
	discount_percent, variations, addons, is_available, rating_avg, rating_count, created_at, updated_at`

type ItemRepository struct {
	db db.DBTX
}

func NewItemRepository(dbtx db.DBTX) *ItemRepository {
	return &ItemRepository{db: dbtx}
}

func (r *ItemRepository) Create(ctx context.Context, it *catalog.Item) error {
	variations, addons, err := marshalOptions(it)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO items (id, outlet_id, name, slug, category, description, image_url, is_veg,
			price_cents, discount_percent, variations, addons, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		it.ID(), it.OutletID(), it.Name(), it.Slug(), it.Category(), it.Description(), it.ImageURL(), it.IsVeg(),
		it.Price().Cents(), pgconv.NumericFromDecimal(it.DiscountPercent()), variations, addons, it.IsAvailable(),
	)
	return itemWriteErr("failed to create item", err)
}

func (r *ItemRepository) Update(ctx context.Context, it *catalog.Item) error {
	variations, addons, err := marshalOptions(it)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE items SET name = $2, slug = $3, category = $4, description = $5, image_url = $6, is_veg = $7,
			price_cents = $8, discount_percent = $9, variations = $10, addons = $11, is_available = $12,
			updated_at = now()
		WHERE id = $1`,
		it.ID(), it.Name(), it.Slug(), it.Category(), it.Description(), it.ImageURL(), it.IsVeg(),
		it.Price().Cents(), pgconv.NumericFromDecimal(it.DiscountPercent()), variations, addons, it.IsAvailable(),
	)
	if err != nil {
		return itemWriteErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrItemNotFound
	}
	return nil
}

// Delete cascades to the item's reviews. Orders and carts keep their snapshots.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	return scanItem(row)
}

// OutletExists is checked before creating items so a bad outlet id is a 400, not a 500.
func (r *ItemRepository) OutletExists(ctx context.Context, outletID uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM outlets WHERE id = $1 AND is_active)`, outletID).Scan(&ok)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check outlet", err)
	}
	return ok, nil
}

func itemWriteErr(msg string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := infra.WrapRepoErr(msg, err)
	if infra.IsKind(wrapped, infra.KindDuplicateKey) {
		return errs.Wrap(catalog.ErrDuplicateSlug, msg)
	}
	return wrapped
}

func marshalOptions(it *catalog.Item) ([]byte, []byte, error) {
	variations, err := json.Marshal(nonNil(it.Variations()))
	if err != nil {
		return nil, nil, errs.Wrap(err, "marshal variations")
	}
	addons, err := json.Marshal(nonNil(it.Addons()))
	if err != nil {
		return nil, nil, errs.Wrap(err, "marshal addons")
	}
	return variations, addons, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanItem(row pgx.Row) (*catalog.Item, error) {
	var (
		id, outletID                             uuid.UUID
		name, slug, category, description, image string
		isVeg, available                         bool
		priceCents                               int64
		discount, ratingAvg                      pgtype.Numeric
		variationsJSON, addonsJSON               []byte
		ratingCount                              int
		createdAt, updatedAt                     time.Time
	)
	err := row.Scan(&id, &outletID, &name, &slug, &category, &description, &image, &isVeg, &priceCents,
		&discount, &variationsJSON, &addonsJSON, &available, &ratingAvg, &ratingCount, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, catalog.ErrItemNotFound
		}
		return nil, infra.WrapRepoErr("failed to scan item", err)
	}

	discountPct, err := pgconv.DecimalFromNumeric(discount)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid discount_percent", err)
	}
	avg, err := pgconv.DecimalFromNumeric(ratingAvg)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid rating_avg", err)
	}

	var variations []catalog.Variation
	if err := json.Unmarshal(variationsJSON, &variations); err != nil {
		return nil, infra.WrapRepoErr("invalid variations json", err)
	}
	var addons []catalog.Addon
	if err := json.Unmarshal(addonsJSON, &addons); err != nil {
		return nil, infra.WrapRepoErr("invalid addons json", err)
	}

	return catalog.ReconstructItem(id, outletID, slug, catalog.Details{
		Name:            name,
		Category:        category,
		Description:     description,
		ImageURL:        image,
		IsVeg:           isVeg,
		Price:           pricing.NewMoneyFromCents(priceCents),
		DiscountPercent: discountPct,
		Variations:      variations,
		Addons:          addons,
		IsAvailable:     available,
	}, avg, ratingCount, createdAt, updatedAt), nil
}
