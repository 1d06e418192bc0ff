package readstore

import (
	"context"
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReportReadStore struct {
	db db.DBTX
}

func NewReportReadStore(dbtx db.DBTX) *ReportReadStore {
	return &ReportReadStore{db: dbtx}
}

func (r *ReportReadStore) SalesTotals(ctx context.Context, from, to time.Time) (queries.SalesTotals, error) {
	var t queries.SalesTotals
	err := r.db.QueryRow(ctx, `
		SELECT count(*), COALESCE(sum(grand_total_cents), 0)
		FROM orders
		WHERE status = $1 AND created_at >= $2 AND created_at < $3`,
		string(order.StatusComplete), from, to,
	).Scan(&t.Orders, &t.SalesCents)
	if err != nil {
		return queries.SalesTotals{}, infra.WrapRepoErr("failed to aggregate sales", err)
	}
	return t, nil
}

func (r *ReportReadStore) StatusBreakdown(ctx context.Context, from, to time.Time) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, count(*) FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status`, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate order statuses", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status count", err)
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status counts", err)
	}
	return out, nil
}

// TopItems ranks by quantity sold across non-cancelled orders in the window.
// Revenue sums the frozen line totals, which are stored as decimal strings.
func (r *ReportReadStore) TopItems(ctx context.Context, from, to time.Time, limit int) ([]queries.TopItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT (li->>'itemId')::uuid, max(li->>'name'), sum((li->>'qty')::int),
			COALESCE(sum(round((li->>'lineTotal')::numeric * 100)), 0)::bigint
		FROM orders o CROSS JOIN LATERAL jsonb_array_elements(o.items) AS li
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> $3
		GROUP BY 1
		ORDER BY 3 DESC, 2
		LIMIT $4`, from, to, string(order.StatusCancelled), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate top items", err)
	}
	defer rows.Close()

	var out []queries.TopItem
	for rows.Next() {
		var (
			id    uuid.UUID
			name  string
			sold  int
			cents int64
		)
		if err := rows.Scan(&id, &name, &sold, &cents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan top item", err)
		}
		out = append(out, queries.TopItem{ItemID: id, Name: name, Sold: sold, Revenue: pricing.NewMoneyFromCents(cents)})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate top items", err)
	}
	return out, nil
}

// CustomerCounts skips cancelled and refunded orders when judging activity.
// Total and repeat count every order.
func (r *ReportReadStore) CustomerCounts(ctx context.Context, since time.Time) (queries.CustomerCounts, error) {
	var c queries.CustomerCounts
	err := r.db.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE last_order >= $1),
			count(*) FILTER (WHERE orders > 1)
		FROM (
			SELECT user_id, count(*) AS orders,
				max(created_at) FILTER (WHERE status NOT IN ($2, $3)) AS last_order
			FROM orders
			GROUP BY user_id
		) per_customer`,
		since, string(order.StatusCancelled), string(order.StatusRefunded),
	).Scan(&c.Total, &c.Active, &c.Repeat)
	if err != nil {
		return queries.CustomerCounts{}, infra.WrapRepoErr("failed to aggregate customers", err)
	}
	return c, nil
}

// DeliveryStats measures placed-to-delivered time for orders delivered inside
// the window, whatever their status is now.
func (r *ReportReadStore) DeliveryStats(ctx context.Context, from, to time.Time, targetMinutes int) (queries.DeliveryStats, error) {
	var st queries.DeliveryStats
	err := r.db.QueryRow(ctx, `
		SELECT count(*),
			COALESCE(avg(EXTRACT(EPOCH FROM delivered_at - created_at) / 60), 0)::float8,
			count(*) FILTER (WHERE delivered_at - created_at <= make_interval(mins => $3))
		FROM orders
		WHERE delivered_at >= $1 AND delivered_at < $2`,
		from, to, targetMinutes,
	).Scan(&st.Delivered, &st.AvgMinutes, &st.OnTime)
	if err != nil {
		return queries.DeliveryStats{}, infra.WrapRepoErr("failed to aggregate delivery times", err)
	}
	return st, nil
}
