//go:build unit

package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"food-delivery-api/internal/domain/address"
	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/order"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/handler/api"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"
	"food-delivery-api/tests/common/builder"
	"food-delivery-api/tests/common/httptest"
	"food-delivery-api/tests/common/testutil"
	commandsmock "food-delivery-api/tests/mock/commands"
	queriesmock "food-delivery-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCheckout *commandsmock.MockCheckoutCommands
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	actor        order.Actor
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	orders := api.NewOrderHandler(s.mockCheckout, s.mockCommands, s.mockQueries)
	delivery := api.NewDeliveryHandler(s.mockCommands, s.mockQueries)

	s.actor = order.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
	fakeAuth := func(c *gin.Context) {
		c.Set("user_id", s.actor.UserID)
		c.Set("user_role", s.actor.Role)
		c.Next()
	}

	g := s.router.Group("", fakeAuth)
	g.GET("/orders/start-checkout", orders.StartCheckout)
	g.POST("/orders/checkout", orders.Checkout)
	g.GET("/orders/my", orders.Mine)
	g.GET("/orders/:id", orders.Get)
	g.PATCH("/orders/:id/status", orders.UpdateStatus)
	g.PATCH("/orders/:id/assign", orders.Assign)
	g.PATCH("/orders/:id/cancel", orders.Cancel)
	g.POST("/orders/:id/refund", orders.Refund)
	g.DELETE("/orders/:id", orders.Delete)
	g.PATCH("/delivery/:orderId/pick", delivery.Pick)
	g.PATCH("/delivery/:orderId/location", delivery.Location)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func checkoutBody(cartID uuid.UUID) map[string]any {
	return map[string]any{
		"cartId": cartID.String(),
		"address": map[string]any{
			"line1":   "12 MG Road",
			"city":    "Bengaluru",
			"pincode": "560001",
			"lat":     12.9716,
			"lng":     77.5946,
		},
		"paymentMethod": "COD",
	}
}

func viewOf(o *order.Order) *queries.OrderView {
	return &queries.OrderView{
		ID:       o.ID(),
		OrderNo:  o.OrderNo(),
		CartID:   o.CartID(),
		Status:   o.Status(),
		Timeline: o.Timeline(),
	}
}

func (s *OrderHandlerTestSuite) TestStartCheckout() {
	cartID := uuid.New()
	s.mockCheckout.EXPECT().StartCheckout(gomock.Any()).Return(cartID).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/start-checkout", nil, "")

	var response resdto.StartCheckoutResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Equal(cartID, response.CartID)
}

func (s *OrderHandlerTestSuite) TestCheckout() {
	url := "/orders/checkout"
	cartID := uuid.New()

	s.Run("success: 201 Created with the placed order", func() {
		placed := builder.NewOrderBuilder().WithUser(s.actor.UserID).MustBuild()
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), s.actor.UserID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, in commands.CheckoutInput) (*order.Order, error) {
				s.Equal(cartID, in.CartID)
				s.Equal(order.PaymentCOD, in.Method)
				s.Require().NotNil(in.Address.Location)
				return placed, nil
			}).Times(1)
		s.mockQueries.EXPECT().Details(gomock.Any(), s.actor, placed.ID()).
			Return(viewOf(placed), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, checkoutBody(cartID), "")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(placed.ID(), response.ID)
		s.Equal(order.StatusPlaced, response.Status)
	})

	s.Run("success: saved addressId replaces the inline address", func() {
		placed := builder.NewOrderBuilder().WithUser(s.actor.UserID).MustBuild()
		addressID := uuid.New()
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), s.actor.UserID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, in commands.CheckoutInput) (*order.Order, error) {
				s.Nil(in.Address)
				s.Require().NotNil(in.AddressID)
				s.Equal(addressID, *in.AddressID)
				return placed, nil
			}).Times(1)
		s.mockQueries.EXPECT().Details(gomock.Any(), s.actor, placed.ID()).
			Return(viewOf(placed), nil).Times(1)

		body := checkoutBody(cartID)
		delete(body, "address")
		body["addressId"] = addressID.String()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing cartId", mutate: testutil.Field("cartId", nil)},
			{name: "unknown payment method", mutate: testutil.Field("paymentMethod", "CHEQUE")},
			{name: "unknown gateway", mutate: testutil.Field("gateway", "BITCOIN")},
			{name: "lat without lng", mutate: func(m map[string]any) {
				delete(m["address"].(map[string]any), "lng")
			}},
			{name: "missing pincode", mutate: func(m map[string]any) {
				delete(m["address"].(map[string]any), "pincode")
			}},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := checkoutBody(cartID)
				tc.mutate(body)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "replayed cartId", err: order.ErrDuplicateCheckout, expectedStatus: http.StatusConflict, expectedMsg: "already exists for this cartId"},
			{name: "no default address", err: address.ErrNoDefaultAddress, expectedStatus: http.StatusNotFound, expectedMsg: "no default address on file"},
			{name: "address and addressId together", err: commands.ErrAddressChoice, expectedStatus: http.StatusBadRequest, expectedMsg: "either an address or an addressId"},
			{name: "blocked user", err: user.ErrUserBlocked, expectedStatus: http.StatusForbidden, expectedMsg: "user is blocked"},
			{name: "coupon no longer valid", err: coupon.ErrExpired, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "Coupon rejected"},
			{name: "wrapped internal error", err: fmt.Errorf("insert order: %w", errors.New("connection reset")), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal Server Error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, checkoutBody(cartID), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 422 carries the coupon reason", func() {
		s.mockCheckout.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, coupon.ErrMinOrderNotMet).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, checkoutBody(cartID), "")

		var body map[string]map[string]string
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Equal("minimum order not met", body["error"]["reason"])
	})
}

func (s *OrderHandlerTestSuite) TestMine() {
	s.Run("success: paginates with normalized defaults", func() {
		s.mockQueries.EXPECT().Mine(gomock.Any(), s.actor.UserID, queries.PageRequest{Page: 1, Limit: 20}).
			Return(&queries.Page[*queries.OrderListItem]{
				Items: []*queries.OrderListItem{{ID: uuid.New(), Status: order.StatusPlaced}},
				Page:  1, Limit: 20, Total: 1,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/my", nil, "")

		var response resdto.PageResponse[*resdto.OrderListItemResponse]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Equal(1, response.Total)
	})

	s.Run("error: 400 when limit is out of range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/my?limit=1000", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 403 when the order belongs to someone else", func() {
		s.mockQueries.EXPECT().Details(gomock.Any(), s.actor, gomock.Any()).
			Return(nil, queries.ErrOrderAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "order access denied")
	})
}

func (s *OrderHandlerTestSuite) TestUpdateStatus() {
	o := builder.NewOrderBuilder().MustBuild()
	url := "/orders/" + o.ID().String() + "/status"

	s.Run("success: passes the parsed target status", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), s.actor, o.ID(), order.StatusConfirmed).
			Return(o, nil).Times(1)
		s.mockQueries.EXPECT().Details(gomock.Any(), s.actor, o.ID()).
			Return(viewOf(o), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "confirmed"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on an unknown status without calling the usecase", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "TELEPORTED"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid order status")
	})

	s.Run("error: 409 on a disallowed transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, order.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "DELIVERED"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "status transition not allowed")
	})
}

func (s *OrderHandlerTestSuite) TestAssign() {
	o := builder.NewOrderBuilder().MustBuild()
	url := "/orders/" + o.ID().String() + "/assign"
	courierID := uuid.New()

	s.Run("error: 400 when eta is out of range", func() {
		body := map[string]any{"courierId": courierID.String(), "etaMinutes": 301}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 when the courier is not a delivery user", func() {
		s.mockCommands.EXPECT().Assign(gomock.Any(), s.actor, o.ID(), gomock.Any()).
			Return(nil, commands.ErrInvalidCourier).Times(1)

		body := map[string]any{"courierId": courierID.String(), "etaMinutes": 30}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "active delivery user")
	})
}

func (s *OrderHandlerTestSuite) TestCancel() {
	o := builder.NewOrderBuilder().MustBuild()
	url := "/orders/" + o.ID().String() + "/cancel"

	s.Run("error: 400 when reason is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"comment": "changed my mind"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 409 once the cancellation window has closed", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.actor, o.ID(), commands.CancelInput{Reason: "late"}).
			Return(nil, order.ErrCancellationWindowClosed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"reason": "late"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "can no longer be cancelled")
	})
}

func (s *OrderHandlerTestSuite) TestRefund() {
	o := builder.NewOrderBuilder().MustBuild()

	s.mockCommands.EXPECT().Refund(gomock.Any(), s.actor, o.ID()).
		Return(nil, order.ErrAlreadyRefunded).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/"+o.ID().String()+"/refund", nil, "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already refunded")
}

func (s *OrderHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/orders/" + id.String()

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.actor, id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 unless cancelled", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.actor, id).Return(order.ErrNotCancelled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "only cancelled orders can be deleted")
	})
}

func (s *OrderHandlerTestSuite) TestDelivery() {
	o := builder.NewOrderBuilder().MustBuild()

	s.Run("pick: 403 for another courier's order", func() {
		s.mockCommands.EXPECT().MarkPicked(gomock.Any(), s.actor, o.ID()).
			Return(nil, order.ErrNotAssignee).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/delivery/"+o.ID().String()+"/pick", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "assigned to another delivery person")
	})

	s.Run("location: forwards the coordinates", func() {
		s.mockCommands.EXPECT().UpdateLocation(gomock.Any(), s.actor, o.ID(), order.GeoPoint{Lat: 12.5, Lng: 77.25}).
			Return(o, nil).Times(1)
		s.mockQueries.EXPECT().Details(gomock.Any(), s.actor, o.ID()).
			Return(viewOf(o), nil).Times(1)

		body := map[string]any{"lat": 12.5, "lng": 77.25}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/delivery/"+o.ID().String()+"/location", body, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("location: 400 when latitude is out of range", func() {
		body := map[string]any{"lat": 91.0, "lng": 77.25}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/delivery/"+o.ID().String()+"/location", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
