//go:build unit

package queries_test

import (
	"context"
	"testing"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/usecase/queries"
	"food-delivery-api/tests/common/builder"
	queriesmock "food-delivery-api/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserQueries_DeliveryPersons(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockUserReadStore(ctrl)
	courier := builder.NewUserBuilder().WithRole(user.RoleDelivery).BuildReadModel()

	store.EXPECT().List(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f queries.UserFilter) ([]*queries.UserView, int, error) {
		assert.Equal(t, []user.Role{user.RoleDelivery}, f.Roles)
		require.NotNil(t, f.Status)
		assert.Equal(t, user.StatusActive, *f.Status)
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, queries.DefaultListLimit, f.Limit)
		return []*queries.UserView{courier}, 1, nil
	})

	page, err := queries.NewUserQueries(store).DeliveryPersons(ctx, queries.PageRequest{})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, courier, page.Items[0])
}

func TestUserQueries_Staff(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockUserReadStore(ctrl)

	store.EXPECT().List(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f queries.UserFilter) ([]*queries.UserView, int, error) {
		assert.ElementsMatch(t, []user.Role{user.RoleSuperAdmin, user.RoleManager, user.RoleStaff}, f.Roles)
		assert.Nil(t, f.Status)
		assert.Equal(t, 2, f.Page)
		return nil, 0, nil
	})

	_, err := queries.NewUserQueries(store).Staff(ctx, queries.PageRequest{Page: 2, Limit: 10})

	require.NoError(t, err)
}
