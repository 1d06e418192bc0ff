//go:build unit

package httperr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-delivery-api/internal/domain/cart"
	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errs.Validation("bad input"), http.StatusBadRequest},
		{"unauthorized", errs.Unauthorized("who are you"), http.StatusUnauthorized},
		{"forbidden", errs.Forbidden("not yours"), http.StatusForbidden},
		{"not found", order.ErrOrderNotFound, http.StatusNotFound},
		{"conflict", errs.Conflict("wrong state"), http.StatusConflict},
		{"cart quantity is plain validation", cart.ErrInvalidQuantity, http.StatusBadRequest},
		{"empty cart is plain validation", errs.Wrap(cart.ErrCartEmpty, "checkout"), http.StatusBadRequest},
		{"address is plain validation", order.ErrInvalidAddress, http.StatusBadRequest},
		{"cancel reason is plain validation", order.ErrInvalidCancelReason, http.StatusBadRequest},
		{"closed cancellation window", order.ErrCancellationWindowClosed, http.StatusConflict},
		{"coupon rejection wins over validation", coupon.ErrExpired, http.StatusUnprocessableEntity},
		{"wrapped rejection", errs.Wrap(coupon.ErrMinOrderNotMet, "apply coupon"), http.StatusUnprocessableEntity},
		{"transient", errs.Define("deadlock", errs.ErrTransient), http.StatusServiceUnavailable},
		{"unclassified", errs.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusOf(tc.err))
		})
	}
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(err error) (*httptest.ResponseRecorder, map[string]map[string]string) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Abort(c, err)
		var body map[string]map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w, body
	}

	t.Run("クーポン拒否は理由付き422", func(t *testing.T) {
		w, body := run(errs.Wrap(coupon.ErrExpired, "checkout"))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "coupon has expired", body["error"]["reason"])
	})

	t.Run("4xx surfaces the domain message", func(t *testing.T) {
		w, body := run(errs.Wrap(order.ErrOrderNotFound, "load order"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "order not found", body["error"]["message"])
	})

	t.Run("5xxは内部情報を隠す", func(t *testing.T) {
		w, body := run(errs.New("connection refused on 10.0.0.3"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", body["error"]["message"])
	})
}
