package repository

import (
	"context"
	"encoding/json"
	"time"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/infra/db"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderCartIDConstraint = "orders_cart_id_key"

const orderColumns = `id, order_no, cart_id, user_id, outlet_id, address, items, note,
	sub_total_cents, item_discount_cents, coupon_discount_cents, tax_cents, delivery_fee_cents, grand_total_cents,
	coupon_id, status, assigned_to, eta_minutes, live_lat, live_lng, location_updated_at,
	cancel_reason, cancel_comment, cancelled_by, cancelled_at,
	payment_method, payment_status, payment_gateway, payment_txn_id,
	delivered_at, refunded_at, created_at, updated_at`

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

// Insert stores a new order with its timeline. A second order for the same
// cart id fails with order.ErrDuplicateCheckout.
func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) error {
	address, err := json.Marshal(o.Address())
	if err != nil {
		return errs.Wrap(err, "marshal address")
	}
	items, err := json.Marshal(o.Items())
	if err != nil {
		return errs.Wrap(err, "marshal items")
	}
	c := o.Charges()
	d := o.Delivery()
	lat, lng := geoArgs(d.LiveLocation)
	p := o.Payment()

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (id, order_no, cart_id, user_id, outlet_id, address, items, note,
			sub_total_cents, item_discount_cents, coupon_discount_cents, tax_cents, delivery_fee_cents, grand_total_cents,
			coupon_id, status, live_lat, live_lng,
			payment_method, payment_status, payment_gateway, payment_txn_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $23)`,
		o.ID(), o.OrderNo(), o.CartID(), o.UserID(), o.OutletID(), address, items, o.Note(),
		c.SubTotal.Cents(), c.ItemDiscount.Cents(), c.CouponDiscount.Cents(), c.Tax.Cents(), c.DeliveryFee.Cents(), c.GrandTotal.Cents(),
		o.CouponID(), string(o.Status()), lat, lng,
		string(p.Method), string(p.Status), string(p.Gateway), p.TxnID, o.CreatedAt(),
	)
	if err != nil {
		wrapped := infra.WrapRepoErr("failed to insert order", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) && infra.ConstraintName(err) == orderCartIDConstraint {
			return errs.Wrap(order.ErrDuplicateCheckout, "insert order")
		}
		return wrapped
	}
	return r.appendTimeline(ctx, o)
}

// Update writes the mutable columns and appends any new timeline entries.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	d := o.Delivery()
	lat, lng := geoArgs(d.LiveLocation)
	var (
		reason, comment *string
		cancelledBy     *uuid.UUID
		cancelledAt     *time.Time
	)
	if cn := o.Cancellation(); cn != nil {
		reason, comment = &cn.Reason, &cn.Comment
		cancelledBy, cancelledAt = &cn.By, &cn.At
	}
	p := o.Payment()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $2, assigned_to = $3, eta_minutes = $4, live_lat = $5, live_lng = $6,
			location_updated_at = $7, cancel_reason = $8, cancel_comment = $9, cancelled_by = $10, cancelled_at = $11,
			payment_status = $12, payment_txn_id = $13, delivered_at = $14, refunded_at = $15, updated_at = $16
		WHERE id = $1`,
		o.ID(), string(o.Status()), d.AssignedTo, etaArg(d.EtaMinutes), lat, lng,
		pgconv.TimePtrToPgtype(d.LocationUpdatedAt),
		pgconv.StringPtrToPgtype(reason), pgconv.StringPtrToPgtype(comment), cancelledBy, pgconv.TimePtrToPgtype(cancelledAt),
		string(p.Status), p.TxnID, pgconv.TimePtrToPgtype(o.DeliveredAt()), pgconv.TimePtrToPgtype(o.RefundedAt()), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}
	return r.appendTimeline(ctx, o)
}

func (r *OrderRepository) appendTimeline(ctx context.Context, o *order.Order) error {
	pending := o.PendingTimeline()
	if len(pending) == 0 {
		return nil
	}
	base := len(o.Timeline()) - len(pending)
	batch := &pgx.Batch{}
	for i, e := range pending {
		var by *uuid.UUID
		if e.By != uuid.Nil {
			v := e.By
			by = &v
		}
		batch.Queue(`INSERT INTO order_status_events (order_id, seq, status, at, by_user) VALUES ($1, $2, $3, $4, $5)`,
			o.ID(), base+i+1, string(e.Status), e.At, by)
	}
	if err := sendBatch(ctx, r.db, batch); err != nil {
		return infra.WrapRepoErr("failed to append order timeline", err)
	}
	o.MarkPersisted()
	return nil
}

func (r *OrderRepository) ExistsByCartID(ctx context.Context, cartID uuid.UUID) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE cart_id = $1)`, cartID).Scan(&ok); err != nil {
		return false, infra.WrapRepoErr("failed to check cart id", err)
	}
	return ok, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.load(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// LockByID takes a row lock so concurrent transitions on the same order
// apply one after the other.
func (r *OrderRepository) LockByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.load(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// Delete removes the order. Its status events go with it by cascade.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) load(ctx context.Context, query string, id uuid.UUID) (*order.Order, error) {
	snap, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	timeline, err := loadTimeline(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	snap.Timeline = timeline
	return order.Reconstruct(*snap), nil
}

func loadTimeline(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID) ([]order.TimelineEntry, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT status, at, by_user FROM order_status_events WHERE order_id = $1 ORDER BY seq`, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order timeline", err)
	}
	defer rows.Close()

	var out []order.TimelineEntry
	for rows.Next() {
		var (
			status string
			at     time.Time
			by     *uuid.UUID
		)
		if err := rows.Scan(&status, &at, &by); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order timeline", err)
		}
		e := order.TimelineEntry{Status: order.Status(status), At: at}
		if by != nil {
			e.By = *by
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order timeline", err)
	}
	return out, nil
}

func scanOrder(row pgx.Row) (*order.Snapshot, error) {
	var (
		s                      order.Snapshot
		addressJSON, itemsJSON []byte
		cents                  [6]int64
		status                 string
		eta                    pgtype.Int4
		lat, lng               pgtype.Float8
		locationAt             pgtype.Timestamptz
		reason, comment        pgtype.Text
		cancelledBy            *uuid.UUID
		cancelledAt            pgtype.Timestamptz
		method, payStatus, gw  string
		deliveredAt, refunded  pgtype.Timestamptz
	)
	err := row.Scan(&s.ID, &s.OrderNo, &s.CartID, &s.UserID, &s.OutletID, &addressJSON, &itemsJSON, &s.Note,
		&cents[0], &cents[1], &cents[2], &cents[3], &cents[4], &cents[5],
		&s.CouponID, &status, &s.Delivery.AssignedTo, &eta, &lat, &lng, &locationAt,
		&reason, &comment, &cancelledBy, &cancelledAt,
		&method, &payStatus, &gw, &s.Payment.TxnID,
		&deliveredAt, &refunded, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, infra.WrapRepoErr("failed to scan order", err)
	}

	if err := json.Unmarshal(addressJSON, &s.Address); err != nil {
		return nil, infra.WrapRepoErr("invalid address json", err)
	}
	if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
		return nil, infra.WrapRepoErr("invalid items json", err)
	}

	s.Charges = totalsFromCents(cents)
	s.Status = order.Status(status)
	if v := pgconv.Int32PtrFromPgtype(eta); v != nil {
		n := int(*v)
		s.Delivery.EtaMinutes = &n
	}
	if lat.Valid && lng.Valid {
		s.Delivery.LiveLocation = &order.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
	}
	s.Delivery.LocationUpdatedAt = pgconv.TimePtrFromPgtype(locationAt)
	if r := pgconv.StringPtrFromPgtype(reason); r != nil && cancelledBy != nil && cancelledAt.Valid {
		cn := &order.Cancellation{Reason: *r, By: *cancelledBy, At: cancelledAt.Time}
		if c := pgconv.StringPtrFromPgtype(comment); c != nil {
			cn.Comment = *c
		}
		s.Cancellation = cn
	}
	s.Payment.Method = order.PaymentMethod(method)
	s.Payment.Status = order.PaymentStatus(payStatus)
	s.Payment.Gateway = order.Gateway(gw)
	s.DeliveredAt = pgconv.TimePtrFromPgtype(deliveredAt)
	s.RefundedAt = pgconv.TimePtrFromPgtype(refunded)
	return &s, nil
}

func geoArgs(p *order.GeoPoint) (pgtype.Float8, pgtype.Float8) {
	if p == nil {
		return pgtype.Float8{}, pgtype.Float8{}
	}
	return pgtype.Float8{Float64: p.Lat, Valid: true}, pgtype.Float8{Float64: p.Lng, Valid: true}
}

func etaArg(v *int) pgtype.Int4 {
	return pgconv.Int32PtrToPgtype(toInt32Ptr(v))
}

func sendBatch(ctx context.Context, dbtx db.DBTX, batch *pgx.Batch) error {
	// pgx.Tx and *pgxpool.Pool both support batches; anything else runs the
	// queued statements one by one.
	if b, ok := dbtx.(interface {
		SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	}); ok {
		return b.SendBatch(ctx, batch).Close()
	}
	for _, q := range batch.QueuedQueries {
		if _, err := dbtx.Exec(ctx, q.SQL, q.Arguments...); err != nil {
			return err
		}
	}
	return nil
}
