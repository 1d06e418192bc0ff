package queries

//go:generate mockgen -source=report.go -destination=../../../tests/mock/queries/report.go -package=queriesmock

import (
	"context"
	"fmt"
	"time"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	RangeDay   = "day"
	RangeWeek  = "week"
	RangeMonth = "month"

	defaultTopItems = 5
	maxTopItems     = 50

	defaultCustomerDays = 30
	maxCustomerDays     = 365

	// OnTimeMinutes is the placed-to-delivered target.
	OnTimeMinutes = 30
)

var (
	ErrInvalidRange  = errs.Validation("invalid range, use day, week or month")
	ErrReportTimeout = errs.Define("report query timed out", errs.ErrTransient)
	ErrInvalidDays   = errs.Validation("days must be between 1 and 365")
)

// SalesTotals covers COMPLETE orders only.
type SalesTotals struct {
	Orders     int
	SalesCents int64
}

// CustomerCounts only counts users who have ordered at least once.
type CustomerCounts struct {
	Total  int
	Active int
	Repeat int
}

type ReportReadStore interface {
	SalesTotals(ctx context.Context, from, to time.Time) (SalesTotals, error)
	StatusBreakdown(ctx context.Context, from, to time.Time) (map[string]int, error)
	TopItems(ctx context.Context, from, to time.Time, limit int) ([]TopItem, error)
	CustomerCounts(ctx context.Context, since time.Time) (CustomerCounts, error)
	DeliveryStats(ctx context.Context, from, to time.Time, targetMinutes int) (DeliveryStats, error)
}

type ReportQueries interface {
	Sales(ctx context.Context, rangeName string) (*SalesReport, error)
	TopItems(ctx context.Context, rangeName string, limit int) ([]TopItem, error)
	Customers(ctx context.Context, days int) (*CustomerReport, error)
	// DeliveryPerformance defaults to the current month.
	DeliveryPerformance(ctx context.Context, rangeName string) (*DeliveryReport, error)
}

type reportQueriesImpl struct {
	store   ReportReadStore
	clock   clock.Clock
	timeout time.Duration
	topN    int
}

func NewReportQueries(store ReportReadStore, clk clock.Clock, timeout time.Duration, topN int) ReportQueries {
	if topN <= 0 {
		topN = defaultTopItems
	}
	return &reportQueriesImpl{store: store, clock: clk, timeout: timeout, topN: topN}
}

// Sales runs the three aggregates concurrently under one deadline.
func (q *reportQueriesImpl) Sales(ctx context.Context, rangeName string) (*SalesReport, error) {
	if rangeName == "" {
		rangeName = RangeDay
	}
	from, to, label, err := ReportWindow(rangeName, q.clock.Now())
	if err != nil {
		return nil, err
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var (
		totals   SalesTotals
		byStatus map[string]int
		top      []TopItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = q.store.SalesTotals(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		byStatus, err = q.store.StatusBreakdown(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = q.store.TopItems(gctx, from, to, q.topN)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, q.timeoutErr(ctx, err)
	}

	sales := pricing.NewMoneyFromCents(totals.SalesCents)
	avg := pricing.Money{}
	if totals.Orders > 0 {
		avg = pricing.NewMoney(sales.Decimal().Div(decimal.NewFromInt(int64(totals.Orders))))
	}
	if top == nil {
		top = []TopItem{}
	}
	return &SalesReport{
		Range:             rangeName,
		Label:             label,
		From:              from,
		To:                to,
		TotalOrders:       totals.Orders,
		TotalSales:        sales,
		AverageOrderValue: avg,
		ByStatus:          byStatus,
		TopItems:          top,
	}, nil
}

func (q *reportQueriesImpl) TopItems(ctx context.Context, rangeName string, limit int) ([]TopItem, error) {
	if rangeName == "" {
		rangeName = RangeDay
	}
	from, to, _, err := ReportWindow(rangeName, q.clock.Now())
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = q.topN
	}
	limit = min(limit, maxTopItems)

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	top, err := q.store.TopItems(ctx, from, to, limit)
	if err != nil {
		return nil, q.timeoutErr(ctx, err)
	}
	if top == nil {
		top = []TopItem{}
	}
	return top, nil
}

func (q *reportQueriesImpl) Customers(ctx context.Context, days int) (*CustomerReport, error) {
	if days == 0 {
		days = defaultCustomerDays
	}
	if days < 0 || days > maxCustomerDays {
		return nil, ErrInvalidDays
	}
	since := q.clock.Now().UTC().AddDate(0, 0, -days)

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	c, err := q.store.CustomerCounts(ctx, since)
	if err != nil {
		return nil, q.timeoutErr(ctx, err)
	}
	return &CustomerReport{
		Days:            days,
		Since:           since,
		TotalCustomers:  c.Total,
		ActiveCustomers: c.Active,
		RepeatCustomers: c.Repeat,
	}, nil
}

func (q *reportQueriesImpl) DeliveryPerformance(ctx context.Context, rangeName string) (*DeliveryReport, error) {
	if rangeName == "" {
		rangeName = RangeMonth
	}
	from, to, label, err := ReportWindow(rangeName, q.clock.Now())
	if err != nil {
		return nil, err
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()
	st, err := q.store.DeliveryStats(ctx, from, to, OnTimeMinutes)
	if err != nil {
		return nil, q.timeoutErr(ctx, err)
	}

	rate := decimal.Zero
	if st.Delivered > 0 {
		rate = decimal.NewFromInt(int64(st.OnTime * 100)).Div(decimal.NewFromInt(int64(st.Delivered))).Round(1)
	}
	return &DeliveryReport{
		Range:            rangeName,
		Label:            label,
		From:             from,
		To:               to,
		TargetMinutes:    OnTimeMinutes,
		Delivered:        st.Delivered,
		AvgMinutes:       decimal.NewFromFloat(st.AvgMinutes).Round(1),
		OnTimeDeliveries: st.OnTime,
		LateDeliveries:   st.Delivered - st.OnTime,
		OnTimeRate:       rate,
	}, nil
}

func (q *reportQueriesImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, q.timeout)
}

func (q *reportQueriesImpl) timeoutErr(ctx context.Context, err error) error {
	if errs.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrReportTimeout
	}
	return err
}

// ReportWindow returns the half-open UTC window [from, to) containing now:
// the calendar day, the ISO week starting Monday, or the calendar month.
func ReportWindow(rangeName string, now time.Time) (time.Time, time.Time, string, error) {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch rangeName {
	case RangeDay:
		return day, day.AddDate(0, 0, 1), day.Format("2006-01-02"), nil
	case RangeWeek:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		year, week := start.ISOWeek()
		return start, start.AddDate(0, 0, 7), fmt.Sprintf("%d-W%02d", year, week), nil
	case RangeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), start.Format("2006-01"), nil
	default:
		return time.Time{}, time.Time{}, "", ErrInvalidRange
	}
}
