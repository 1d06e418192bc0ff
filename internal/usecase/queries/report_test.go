//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"food-delivery-api/internal/pkg/clock"
	"food-delivery-api/internal/usecase/queries"
	queriesmock "food-delivery-api/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// 2025-03-05 is a Wednesday.
var reportNow = time.Date(2025, 3, 5, 18, 30, 0, 0, time.UTC)

func TestReportWindow(t *testing.T) {
	testCases := []struct {
		rangeName string
		from      time.Time
		to        time.Time
		label     string
	}{
		{rangeName: queries.RangeDay, from: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), to: time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC), label: "2025-03-05"},
		{rangeName: queries.RangeWeek, from: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), to: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), label: "2025-W10"},
		{rangeName: queries.RangeMonth, from: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), to: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), label: "2025-03"},
	}
	for _, tc := range testCases {
		t.Run(tc.rangeName, func(t *testing.T) {
			from, to, label, err := queries.ReportWindow(tc.rangeName, reportNow)
			require.NoError(t, err)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.to, to)
			assert.Equal(t, tc.label, label)
		})
	}

	t.Run("sunday belongs to the week that started monday", func(t *testing.T) {
		sunday := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
		from, _, _, err := queries.ReportWindow(queries.RangeWeek, sunday)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), from)
	})

	t.Run("non-UTC input is normalized", func(t *testing.T) {
		ist := time.FixedZone("IST", 5*3600+1800)
		// 2025-03-06 02:00 IST is still 2025-03-05 in UTC
		from, _, _, err := queries.ReportWindow(queries.RangeDay, time.Date(2025, 3, 6, 2, 0, 0, 0, ist))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), from)
	})

	t.Run("unknown range", func(t *testing.T) {
		_, _, _, err := queries.ReportWindow("year", reportNow)
		require.ErrorIs(t, err, queries.ErrInvalidRange)
	})
}

func TestReportQueries_Sales(t *testing.T) {
	ctx := context.Background()

	t.Run("success: combines the aggregates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReportReadStore(ctrl)
		from := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1)

		store.EXPECT().SalesTotals(gomock.Any(), from, to).Return(queries.SalesTotals{Orders: 3, SalesCents: 100000}, nil)
		store.EXPECT().StatusBreakdown(gomock.Any(), from, to).Return(map[string]int{"COMPLETE": 3, "CANCELLED": 1}, nil)
		store.EXPECT().TopItems(gomock.Any(), from, to, 5).Return(nil, nil)

		r, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), time.Second, 0).Sales(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, queries.RangeDay, r.Range)
		assert.Equal(t, 3, r.TotalOrders)
		assert.Equal(t, "1000.00", r.TotalSales.String())
		assert.Equal(t, "333.33", r.AverageOrderValue.String())
		assert.Equal(t, 1, r.ByStatus["CANCELLED"])
		assert.NotNil(t, r.TopItems)
		assert.Empty(t, r.TopItems)
	})

	t.Run("success: no orders means a zero average", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReportReadStore(ctrl)
		store.EXPECT().SalesTotals(gomock.Any(), gomock.Any(), gomock.Any()).Return(queries.SalesTotals{}, nil)
		store.EXPECT().StatusBreakdown(gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]int{}, nil)
		store.EXPECT().TopItems(gomock.Any(), gomock.Any(), gomock.Any(), 3).Return([]queries.TopItem{}, nil)

		r, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), 0, 3).Sales(ctx, queries.RangeMonth)

		require.NoError(t, err)
		assert.True(t, r.AverageOrderValue.IsZero())
		assert.Equal(t, "2025-03", r.Label)
	})

	t.Run("error: slow aggregate hits the deadline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReportReadStore(ctrl)
		block := func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}
		store.EXPECT().SalesTotals(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ time.Time) (queries.SalesTotals, error) {
				return queries.SalesTotals{}, block(ctx)
			})
		store.EXPECT().StatusBreakdown(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ time.Time) (map[string]int, error) {
				return nil, block(ctx)
			})
		store.EXPECT().TopItems(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ time.Time, _ int) ([]queries.TopItem, error) {
				return nil, block(ctx)
			})

		_, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), 20*time.Millisecond, 5).Sales(ctx, queries.RangeWeek)

		require.ErrorIs(t, err, queries.ErrReportTimeout)
	})

	t.Run("error: invalid range skips the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReportReadStore(ctrl)

		_, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), time.Second, 5).Sales(ctx, "decade")

		require.ErrorIs(t, err, queries.ErrInvalidRange)
	})
}

func TestReportQueries_TopItems(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	t.Run("limit is capped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReportReadStore(ctrl)
		store.EXPECT().TopItems(gomock.Any(), from, to, 50).Return(nil, nil)

		top, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), 0, 0).TopItems(ctx, queries.RangeWeek, 500)

		require.NoError(t, err)
		assert.NotNil(t, top)
		assert.Empty(t, top)
	})

	t.Run("unknown range never reaches the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReportReadStore(ctrl)

		_, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), 0, 0).TopItems(ctx, "year", 5)

		require.ErrorIs(t, err, queries.ErrInvalidRange)
	})
}

func TestReportQueries_Customers(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the last 30 days", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReportReadStore(ctrl)
		since := reportNow.AddDate(0, 0, -30)
		store.EXPECT().CustomerCounts(gomock.Any(), since).Return(queries.CustomerCounts{Total: 40, Active: 12, Repeat: 9}, nil)

		r, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), 0, 0).Customers(ctx, 0)

		require.NoError(t, err)
		assert.Equal(t, 30, r.Days)
		assert.Equal(t, since, r.Since)
		assert.Equal(t, 40, r.TotalCustomers)
		assert.Equal(t, 12, r.ActiveCustomers)
		assert.Equal(t, 9, r.RepeatCustomers)
	})

	for _, days := range []int{-1, 366} {
		t.Run("rejects out of range days", func(t *testing.T) {
			store := queriesmock.NewMockReportReadStore(gomock.NewController(t))

			_, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), 0, 0).Customers(ctx, days)

			require.ErrorIs(t, err, queries.ErrInvalidDays)
		})
	}
}

func TestReportQueries_DeliveryPerformance(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	t.Run("splits on-time and late deliveries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReportReadStore(ctrl)
		store.EXPECT().DeliveryStats(gomock.Any(), from, to, queries.OnTimeMinutes).
			Return(queries.DeliveryStats{Delivered: 3, AvgMinutes: 27.3333, OnTime: 2}, nil)

		r, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), 0, 0).DeliveryPerformance(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, queries.RangeMonth, r.Range)
		assert.Equal(t, "2025-03", r.Label)
		assert.Equal(t, 2, r.OnTimeDeliveries)
		assert.Equal(t, 1, r.LateDeliveries)
		assert.Equal(t, "27.3", r.AvgMinutes.String())
		assert.Equal(t, "66.7", r.OnTimeRate.String())
	})

	t.Run("no deliveries is a zero rate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReportReadStore(ctrl)
		store.EXPECT().DeliveryStats(gomock.Any(), from, to, queries.OnTimeMinutes).Return(queries.DeliveryStats{}, nil)

		r, err := queries.NewReportQueries(store, clock.NewMockClock(reportNow), 0, 0).DeliveryPerformance(ctx, queries.RangeMonth)

		require.NoError(t, err)
		assert.Equal(t, 0, r.Delivered)
		assert.True(t, r.OnTimeRate.IsZero())
	})
}
