//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"food-delivery-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DefaultPassword matches the bcrypt hash every seeded user gets.
const DefaultPassword = "password123"

const defaultPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

// DefaultOutletID is inserted by SeedReferenceData.
var DefaultOutletID = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")

func CreateTestUser(t *testing.T, db DBLike, email string, role user.Role) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING",
		userID, strings.Split(email, "@")[0], email, defaultPasswordHash, string(role))
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID))
	}

	return userID
}

func BlockUser(t *testing.T, db DBLike, userID uuid.UUID) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE users SET status = 'blocked' WHERE id = $1", userID)
	require.NoError(t, err)
}

// CreateTestItem inserts an available item without variations or addons.
func CreateTestItem(t *testing.T, db DBLike, name string, priceCents int64) uuid.UUID {
	t.Helper()

	itemID := uuid.New()
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	_, err := db.Exec(context.Background(),
		"INSERT INTO items (id, outlet_id, name, slug, category, price_cents) VALUES ($1, $2, $3, $4, 'mains', $5)",
		itemID, DefaultOutletID, name, slug, priceCents)
	require.NoError(t, err)

	return itemID
}

type CouponFixture struct {
	Code          string
	PercentOff    int
	MinOrderCents int64
	UsageLimit    *int
	PerUserLimit  *int
}

// CreateTestCoupon inserts a percentage coupon valid for a day either side of now.
func CreateTestCoupon(t *testing.T, db DBLike, f CouponFixture) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	now := time.Now().UTC()
	_, err := db.Exec(context.Background(),
		`INSERT INTO coupons (id, code, title, discount_type, discount_value, min_order_cents, start_at, end_at, usage_limit, per_user_limit)
		 VALUES ($1, $2, $3, 'PERCENT', $4, $5, $6, $7, $8, $9)`,
		couponID, f.Code, f.Code, f.PercentOff, f.MinOrderCents,
		now.Add(-24*time.Hour), now.Add(24*time.Hour), f.UsageLimit, f.PerUserLimit)
	require.NoError(t, err)

	return couponID
}

func CouponUsedCount(t *testing.T, db DBLike, couponID uuid.UUID) int {
	t.Helper()
	var used int
	require.NoError(t, db.QueryRow(context.Background(), "SELECT used_count FROM coupons WHERE id = $1", couponID).Scan(&used))
	return used
}

func CountRows(t *testing.T, db DBLike, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO outlets (id, name, city) VALUES ($1, 'Koramangala', 'Bengaluru')
		ON CONFLICT (id) DO NOTHING;
	`, DefaultOutletID)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
