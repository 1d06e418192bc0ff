package readstore

import (
	"context"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/infra/repository"
	"food-delivery-api/internal/pkg/pgconv"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderListColumns = `o.id, o.order_no, o.user_id, u.name, ot.name, o.status, jsonb_array_length(o.items),
	o.grand_total_cents, o.payment_method, o.payment_status, o.created_at`

const orderListFrom = ` FROM orders o JOIN users u ON u.id = o.user_id JOIN outlets ot ON ot.id = o.outlet_id`

// courierStatuses are the statuses a courier still sees on their board.
var courierStatuses = []string{
	string(order.StatusAssigned),
	string(order.StatusPicked),
	string(order.StatusOutForDelivery),
	string(order.StatusDelivered),
}

type OrderReadStore struct {
	db     db.DBTX
	orders *repository.OrderRepository
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx, orders: repository.NewOrderRepository(dbtx)}
}

// FindByID loads the aggregate through the write-side mapping and adds the
// joined display fields.
func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	o, err := r.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		customerName, outletName string
		customerPhone            pgtype.Text
		couponCode               pgtype.Text
		courierName, courierPh   pgtype.Text
	)
	err = r.db.QueryRow(ctx, `
		SELECT u.name, u.phone, ot.name, c.code, cu.name, cu.phone
		FROM orders o
		JOIN users u ON u.id = o.user_id
		JOIN outlets ot ON ot.id = o.outlet_id
		LEFT JOIN coupons c ON c.id = o.coupon_id
		LEFT JOIN users cu ON cu.id = o.assigned_to
		WHERE o.id = $1`, id,
	).Scan(&customerName, &customerPhone, &outletName, &couponCode, &courierName, &courierPh)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, infra.WrapRepoErr("failed to load order references", err)
	}

	v := &queries.OrderView{
		ID:           o.ID(),
		OrderNo:      o.OrderNo(),
		CartID:       o.CartID(),
		Customer:     queries.PersonRef{ID: o.UserID(), Name: customerName, Phone: pgconv.StringPtrFromPgtype(customerPhone)},
		OutletID:     o.OutletID(),
		OutletName:   outletName,
		Address:      o.Address(),
		Items:        o.Items(),
		Note:         o.Note(),
		Charges:      o.Charges(),
		CouponID:     o.CouponID(),
		CouponCode:   pgconv.StringPtrFromPgtype(couponCode),
		Status:       o.Status(),
		Timeline:     o.Timeline(),
		Delivery:     o.Delivery(),
		Cancellation: o.Cancellation(),
		Payment:      o.Payment(),
		DeliveredAt:  o.DeliveredAt(),
		RefundedAt:   o.RefundedAt(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
	if a := o.Delivery().AssignedTo; a != nil && courierName.Valid {
		v.Courier = &queries.PersonRef{ID: *a, Name: courierName.String, Phone: pgconv.StringPtrFromPgtype(courierPh)}
	}
	return v, nil
}

func (r *OrderReadStore) List(ctx context.Context, f queries.OrderFilter) ([]*queries.OrderListItem, int, error) {
	return r.list(ctx, orderFilterWhere(f), f.PageRequest)
}

func (r *OrderReadStore) ListAssignedTo(ctx context.Context, courierID uuid.UUID, page queries.PageRequest) ([]*queries.OrderListItem, int, error) {
	var w whereBuilder
	w.add("o.assigned_to = ?", courierID)
	w.add("o.status = ANY(?)", courierStatuses)
	return r.list(ctx, w, page)
}

func orderFilterWhere(f queries.OrderFilter) whereBuilder {
	var w whereBuilder
	if f.Status != nil {
		w.add("o.status = ?", string(*f.Status))
	}
	if f.From != nil {
		w.add("o.created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("o.created_at < ?", *f.To)
	}
	if f.UserID != nil {
		w.add("o.user_id = ?", *f.UserID)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		w.add("(o.order_no ILIKE ? OR u.name ILIKE ? OR u.email ILIKE ? OR u.phone ILIKE ?)", p, p, p, p)
	}
	return w
}

func (r *OrderReadStore) list(ctx context.Context, w whereBuilder, page queries.PageRequest) ([]*queries.OrderListItem, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*)`+orderListFrom+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count orders", err)
	}

	limit, args := w.page(page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+orderListColumns+orderListFrom+w.sql()+` ORDER BY o.created_at DESC, o.id`+limit, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	out := make([]*queries.OrderListItem, 0, page.Limit)
	for rows.Next() {
		it, err := scanOrderListItem(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan order list item", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate orders", err)
	}
	return out, total, nil
}

func scanOrderListItem(row pgx.Row) (*queries.OrderListItem, error) {
	var (
		it                        queries.OrderListItem
		status, method, payStatus string
		grandCents                int64
	)
	if err := row.Scan(&it.ID, &it.OrderNo, &it.UserID, &it.CustomerName, &it.OutletName, &status, &it.ItemCount,
		&grandCents, &method, &payStatus, &it.CreatedAt); err != nil {
		return nil, err
	}
	it.Status = order.Status(status)
	it.GrandTotal = pricing.NewMoneyFromCents(grandCents)
	it.PaymentMethod = order.PaymentMethod(method)
	it.PaymentStatus = order.PaymentStatus(payStatus)
	return &it, nil
}
