//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/errs"
	"food-delivery-api/internal/pkg/ptr"
	"food-delivery-api/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name     string
	mutate   func(*builder.CouponBuilder)
	subTotal string
	usage    coupon.Usage
	now      time.Time
	want     string
	errIs    error
}

func TestEvaluate(t *testing.T) {
	past := builder.BaseTime.Add(-48 * time.Hour)

	runCases(t, []testCase{
		{
			name:     "PERCENTは上限で頭打ち",
			mutate:   func(b *builder.CouponBuilder) { b.WithPercent("10", ptr.Of("15")) },
			subTotal: "220",
			want:     "15.00",
		},
		{
			name:     "PERCENT上限なし",
			mutate:   func(b *builder.CouponBuilder) { b.WithPercent("10", nil) },
			subTotal: "220",
			want:     "22.00",
		},
		{
			name:     "FLATはsubTotalを超えない",
			mutate:   func(b *builder.CouponBuilder) { b.WithFlat("300") },
			subTotal: "220",
			want:     "220.00",
		},
		{
			name:     "非アクティブNG",
			mutate:   func(b *builder.CouponBuilder) { b.AsInactive() },
			subTotal: "220",
			errIs:    coupon.ErrNotActive,
		},
		{
			name:     "開始前NG",
			mutate:   func(b *builder.CouponBuilder) { b.WithWindow(builder.BaseTime.Add(time.Hour), builder.BaseTime.Add(2*time.Hour)) },
			subTotal: "220",
			errIs:    coupon.ErrNotYetActive,
		},
		{
			name:     "期限切れは他の条件に関係なくNG",
			mutate:   func(b *builder.CouponBuilder) { b.WithWindow(past, builder.BaseTime.Add(-time.Second)) },
			subTotal: "9999",
			usage:    coupon.Usage{},
			errIs:    coupon.ErrExpired,
		},
		{
			name:     "最低注文金額未満NG",
			mutate:   func(b *builder.CouponBuilder) { b.WithMinOrder("300") },
			subTotal: "220",
			errIs:    coupon.ErrMinOrderNotMet,
		},
		{
			name:     "最低注文金額ちょうどOK",
			mutate:   func(b *builder.CouponBuilder) { b.WithMinOrder("220").WithFlat("20") },
			subTotal: "220",
			want:     "20.00",
		},
		{
			name:     "ユーザー毎の上限到達NG",
			mutate:   func(b *builder.CouponBuilder) { b.WithLimits(ptr.Of(10), ptr.Of(1)) },
			subTotal: "220",
			usage:    coupon.Usage{PerUser: 1, Global: 1},
			errIs:    coupon.ErrPerUserLimitReached,
		},
		{
			name:     "全体の上限到達NG",
			mutate:   func(b *builder.CouponBuilder) { b.WithLimits(ptr.Of(1), nil) },
			subTotal: "220",
			usage:    coupon.Usage{PerUser: 0, Global: 1},
			errIs:    coupon.ErrUsageLimitReached,
		},
		{
			name: "最初の失敗が優先される",
			mutate: func(b *builder.CouponBuilder) {
				b.WithMinOrder("1000").WithLimits(ptr.Of(1), ptr.Of(1))
			},
			subTotal: "220",
			usage:    coupon.Usage{PerUser: 5, Global: 5},
			errIs:    coupon.ErrMinOrderNotMet,
		},
	})

	t.Run("nilクーポンは非アクティブ扱い", func(t *testing.T) {
		_, err := coupon.Evaluate(nil, pricing.MustParseMoney("10"), coupon.Usage{}, builder.BaseTime)
		require.ErrorIs(t, err, coupon.ErrNotActive)
	})

	t.Run("拒否理由はvalidationに分類される", func(t *testing.T) {
		assert.True(t, errs.IsValidation(coupon.ErrExpired))
		assert.True(t, coupon.IsRejection(errs.Wrap(coupon.ErrUsageLimitReached, "checkout")))
		assert.False(t, coupon.IsRejection(coupon.ErrCouponNotFound))
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewCouponBuilder()
			if c.mutate != nil {
				b.With(c.mutate)
			}
			cp, err := b.BuildDomain()
			require.NoError(t, err)

			now := c.now
			if now.IsZero() {
				now = builder.BaseTime
			}
			got, err := coupon.Evaluate(cp, pricing.MustParseMoney(c.subTotal), c.usage, now)

			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got.String())
		})
	}
}

func TestNewCoupon(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*builder.CouponBuilder)
		errIs  error
	}{
		{name: "正常", mutate: func(b *builder.CouponBuilder) {}},
		{name: "小文字コードは大文字化", mutate: func(b *builder.CouponBuilder) { b.WithCode("save20") }},
		{name: "短すぎるコードNG", mutate: func(b *builder.CouponBuilder) { b.WithCode("AB") }, errIs: coupon.ErrInvalidCouponCode},
		{name: "記号入りコードNG", mutate: func(b *builder.CouponBuilder) { b.WithCode("SAVE-10") }, errIs: coupon.ErrInvalidCouponCode},
		{name: "タイトル空NG", mutate: func(b *builder.CouponBuilder) { b.Title = " " }, errIs: coupon.ErrInvalidTitle},
		{
			name:   "終了が開始以前NG",
			mutate: func(b *builder.CouponBuilder) { b.WithWindow(builder.BaseTime, builder.BaseTime) },
			errIs:  coupon.ErrInvalidWindow,
		},
		{name: "上限0はNG", mutate: func(b *builder.CouponBuilder) { b.WithLimits(ptr.Of(0), nil) }, errIs: coupon.ErrInvalidLimit},
		{name: "101%はNG", mutate: func(b *builder.CouponBuilder) { b.WithPercent("101", nil) }, errIs: pricing.ErrInvalidDiscountPercent},
		{name: "値0はNG", mutate: func(b *builder.CouponBuilder) { b.WithFlat("0") }, errIs: coupon.ErrInvalidDiscountAmount},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cp, err := builder.NewCouponBuilder().With(tc.mutate).BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, cp)
				return
			}
			require.NoError(t, err)
			assert.Regexp(t, `^[A-Z0-9]+$`, cp.Code().String())
		})
	}

	t.Run("利用済み回数を下回る上限はNG", func(t *testing.T) {
		cp := builder.NewCouponBuilder().MustBuildUsed(5)
		p := cp.Params()
		p.UsageLimit = ptr.Of(2)
		err := cp.Update(p)
		require.ErrorIs(t, err, coupon.ErrLimitBelowUsage)
		assert.True(t, errs.IsValidation(err))
		assert.Nil(t, cp.UsageLimit())
	})

	t.Run("利用済み回数と同じ上限はOK", func(t *testing.T) {
		cp := builder.NewCouponBuilder().MustBuildUsed(5)
		p := cp.Params()
		p.UsageLimit = ptr.Of(5)
		require.NoError(t, cp.Update(p))
		assert.Equal(t, 5, *cp.UsageLimit())
	})

	t.Run("上限の解除はOK", func(t *testing.T) {
		cp := builder.NewCouponBuilder().WithLimits(ptr.Of(10), ptr.Of(1)).MustBuildUsed(5)
		p := cp.Params()
		p.UsageLimit = nil
		p.PerUserLimit = nil
		require.NoError(t, cp.Update(p))
		assert.Nil(t, cp.UsageLimit())
		assert.Nil(t, cp.PerUserLimit())
	})

	t.Run("Updateは失敗時に元の値を保持する", func(t *testing.T) {
		cp := builder.NewCouponBuilder().MustBuild()
		p := cp.Params()
		p.Title = ""
		require.ErrorIs(t, cp.Update(p), coupon.ErrInvalidTitle)
		assert.Equal(t, "10% off", cp.Title())
	})
}

func TestIsRejection(t *testing.T) {
	rejections := []error{
		coupon.ErrNotActive, coupon.ErrNotYetActive, coupon.ErrExpired,
		coupon.ErrMinOrderNotMet, coupon.ErrPerUserLimitReached, coupon.ErrUsageLimitReached,
	}
	for _, r := range rejections {
		t.Run(r.Error(), func(t *testing.T) {
			assert.True(t, coupon.IsRejection(r))
			assert.True(t, coupon.IsRejection(errs.Wrap(r, "apply")))
			assert.True(t, errs.IsValidation(r))
		})
	}

	t.Run("rejections stay distinct from each other", func(t *testing.T) {
		assert.False(t, errs.Is(coupon.ErrExpired, coupon.ErrNotActive))
		assert.False(t, errs.Is(coupon.ErrUsageLimitReached, coupon.ErrPerUserLimitReached))
	})

	t.Run("other validation errors are not rejections", func(t *testing.T) {
		for _, err := range []error{
			coupon.ErrInvalidCouponCode, coupon.ErrInvalidLimit, coupon.ErrLimitBelowUsage,
			errs.Validation("quantity must be between 1 and 99"), coupon.ErrCouponNotFound,
		} {
			assert.False(t, coupon.IsRejection(err), err.Error())
		}
	})
}
