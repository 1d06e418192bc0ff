//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/handler/dto/request"
	resdto "food-delivery-api/internal/handler/dto/response"
	httphelper "food-delivery-api/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// OrderBody is the subset of the order payload the e2e suites assert on.
type OrderBody struct {
	ID         uuid.UUID             `json:"id"`
	CartID     uuid.UUID             `json:"cartId"`
	Status     order.Status          `json:"status"`
	Items      []json.RawMessage     `json:"items"`
	Charges    pricing.Totals        `json:"charges"`
	CouponCode *string               `json:"couponCode"`
	Timeline   []order.TimelineEntry `json:"timeline"`
	Delivery   order.Delivery        `json:"delivery"`
}

var DefaultAddress = request.AddressRequest{
	Label:   "Home",
	Line1:   "12 MG Road",
	City:    "Bengaluru",
	Pincode: "560001",
}

func (s *SharedSuite) AddToCart(t *testing.T, token string, itemID uuid.UUID, qty int) {
	t.Helper()
	w := httphelper.PerformRequest(t, s.Router, http.MethodPost, "/api/cart/items",
		request.AddCartItemRequest{ItemID: itemID, Qty: qty}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func (s *SharedSuite) ApplyCoupon(t *testing.T, token, code string) {
	t.Helper()
	w := httphelper.PerformRequest(t, s.Router, http.MethodPatch, "/api/cart/coupon",
		request.ApplyCouponRequest{Code: code}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (s *SharedSuite) StartCheckout(t *testing.T, token string) uuid.UUID {
	t.Helper()
	w := httphelper.PerformRequest(t, s.Router, http.MethodGet, "/api/orders/start-checkout", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res resdto.StartCheckoutResponse
	require.NoError(t, httphelper.DecodeResponseBody(t, w.Body, &res))
	require.NotEqual(t, uuid.Nil, res.CartID)
	return res.CartID
}

// Checkout only performs the request so callers can assert on failures.
func (s *SharedSuite) Checkout(t *testing.T, token string, cartID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	return httphelper.PerformRequest(t, s.Router, http.MethodPost, "/api/orders/checkout",
		request.CheckoutRequest{CartID: cartID, Address: &DefaultAddress, PaymentMethod: "COD"}, token)
}

// PlaceOrder fills the cart with one item and checks out.
func (s *SharedSuite) PlaceOrder(t *testing.T, token string, itemID uuid.UUID, qty int) OrderBody {
	t.Helper()
	s.AddToCart(t, token, itemID, qty)
	w := s.Checkout(t, token, s.StartCheckout(t, token))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return DecodeOrder(t, w)
}

// Patch sends a PATCH and requires 200, returning the refreshed order.
func (s *SharedSuite) Patch(t *testing.T, token, path string, body any) OrderBody {
	t.Helper()
	w := httphelper.PerformRequest(t, s.Router, http.MethodPatch, path, body, token)
	require.Equal(t, http.StatusOK, w.Code, "%s: %s", path, w.Body.String())
	return DecodeOrder(t, w)
}

func DecodeOrder(t *testing.T, w *httptest.ResponseRecorder) OrderBody {
	t.Helper()
	var o OrderBody
	require.NoError(t, httphelper.DecodeResponseBody(t, w.Body, &o))
	return o
}
