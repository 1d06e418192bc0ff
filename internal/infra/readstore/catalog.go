package readstore

import (
	"context"
	"encoding/json"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/pgconv"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const itemViewColumns = `i.id, i.outlet_id, o.name, i.name, i.slug, i.category, i.description, i.image_url,
	i.is_veg, i.price_cents, i.discount_percent, i.variations, i.addons, i.is_available,
	i.rating_avg, i.rating_count, i.created_at, i.updated_at`

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (r *CatalogReadStore) FindItem(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+itemViewColumns+`
		FROM items i JOIN outlets o ON o.id = i.outlet_id
		WHERE i.id = $1`, id)
	v, err := scanItemView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, catalog.ErrItemNotFound
		}
		return nil, infra.WrapRepoErr("failed to find item view", err)
	}
	return v, nil
}

func (r *CatalogReadStore) ListItems(ctx context.Context, f queries.ItemFilter) ([]*queries.ItemView, int, error) {
	var w whereBuilder
	if f.OutletID != nil {
		w.add("i.outlet_id = ?", *f.OutletID)
	}
	if f.Category != "" {
		w.add("lower(i.category) = lower(?)", f.Category)
	}
	if f.VegOnly {
		w.add("i.is_veg")
	}
	if f.AvailableOnly {
		w.add("i.is_available")
	}
	if f.Query != "" {
		w.add("(i.name ILIKE ? OR i.description ILIKE ?)", likePattern(f.Query), likePattern(f.Query))
	}
	from := ` FROM items i JOIN outlets o ON o.id = i.outlet_id` + w.sql()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*)`+from, w.args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count items", err)
	}

	limit, args := w.page(f.Limit, f.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+itemViewColumns+from+` ORDER BY i.name, i.id`+limit, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	items := make([]*queries.ItemView, 0, f.Limit)
	for rows.Next() {
		v, err := scanItemView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan item view", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate items", err)
	}
	return items, total, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var (
		v                          queries.ItemView
		priceCents                 int64
		discount, ratingAvg        pgtype.Numeric
		variationsJSON, addonsJSON []byte
	)
	err := row.Scan(&v.ID, &v.OutletID, &v.OutletName, &v.Name, &v.Slug, &v.Category, &v.Description, &v.ImageURL,
		&v.IsVeg, &priceCents, &discount, &variationsJSON, &addonsJSON, &v.IsAvailable,
		&ratingAvg, &v.RatingCount, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.Price = pricing.NewMoneyFromCents(priceCents)
	if v.DiscountPercent, err = pgconv.DecimalFromNumeric(discount); err != nil {
		return nil, err
	}
	if v.RatingAvg, err = pgconv.DecimalFromNumeric(ratingAvg); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(variationsJSON, &v.Variations); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(addonsJSON, &v.Addons); err != nil {
		return nil, err
	}
	return &v, nil
}
