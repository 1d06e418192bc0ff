//go:build unit

package pgconv_test

import (
	"math/big"
	"testing"

	"food-delivery-api/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "12.5", "100.00", "0.05", "-3.25"} {
		t.Run(s, func(t *testing.T) {
			d := decimal.RequireFromString(s)
			got, err := pgconv.DecimalFromNumeric(pgconv.NumericFromDecimal(d))
			require.NoError(t, err)
			assert.True(t, d.Equal(got), "want %s got %s", d, got)
		})
	}
}

func TestDecimalFromNumeric(t *testing.T) {
	t.Run("NULL is zero", func(t *testing.T) {
		got, err := pgconv.DecimalFromNumeric(pgtype.Numeric{})
		require.NoError(t, err)
		assert.True(t, got.IsZero())

		p, err := pgconv.DecimalPtrFromNumeric(pgtype.Numeric{})
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("NaN rejected", func(t *testing.T) {
		_, err := pgconv.DecimalFromNumeric(pgtype.Numeric{NaN: true, Valid: true})
		assert.ErrorIs(t, err, pgconv.ErrInvalidNumeric)
	})

	t.Run("exponent honoured", func(t *testing.T) {
		got, err := pgconv.DecimalFromNumeric(pgtype.Numeric{Int: big.NewInt(1025), Exp: -2, Valid: true})
		require.NoError(t, err)
		assert.Equal(t, "10.25", got.String())
	})
}
