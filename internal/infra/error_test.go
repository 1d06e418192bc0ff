//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"food-delivery-api/internal/infra"
	"food-delivery-api/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		kind      []infra.RepositoryErrorKind
		wantKind  infra.RepositoryErrorKind
		transient bool
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "orders_cart_id_key"}, wantKind: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, wantKind: infra.KindTransient, transient: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, wantKind: infra.KindTransient, transient: true},
		{name: "unclassified", err: errors.New("connection reset"), wantKind: infra.KindDBFailure},
		{name: "explicit kind wins", err: errors.New("no rows"), kind: []infra.RepositoryErrorKind{infra.KindNotFound}, wantKind: infra.KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := infra.WrapRepoErr("op", tc.err, tc.kind...)
			require.Error(t, got)
			assert.True(t, infra.IsKind(got, tc.wantKind))
			assert.Equal(t, tc.transient, errs.IsTransient(got))
			assert.ErrorIs(t, got, tc.err)
		})
	}
}

func TestConstraintName(t *testing.T) {
	err := infra.WrapRepoErr("insert", &pgconn.PgError{Code: "23505", ConstraintName: "reviews_user_item_key"})
	assert.Equal(t, "reviews_user_item_key", infra.ConstraintName(err))
	assert.Empty(t, infra.ConstraintName(errors.New("plain")))
}
