//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"food-delivery-api/internal/domain/cart"
	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/domain/coupon"
	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/handler/api"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/shared"
	"food-delivery-api/tests/common/httptest"
	commandsmock "food-delivery-api/tests/mock/commands"
	queriesmock "food-delivery-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCartCommands
	mockQueries  *queriesmock.MockCartQueries
	userID       uuid.UUID
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	handler := api.NewCartHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	fakeAuth := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	g := s.router.Group("/cart", fakeAuth)
	g.GET("", handler.Get)
	g.POST("/items", handler.AddItem)
	g.PATCH("/items/:lineId", handler.UpdateLine)
	g.DELETE("/items/:lineId", handler.RemoveLine)
	g.PATCH("/coupon", handler.ApplyCoupon)
	g.DELETE("/coupon", handler.RemoveCoupon)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func (s *CartHandlerTestSuite) emptyCart() *shared.PricedCart {
	return &shared.PricedCart{Cart: cart.NewCart(s.userID)}
}

func (s *CartHandlerTestSuite) TestGet() {
	s.Run("success: reports a detached coupon in notice", func() {
		priced := s.emptyCart()
		priced.Notice = "coupon removed: coupon has expired"
		s.mockQueries.EXPECT().Get(gomock.Any(), s.userID).Return(priced, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "")

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(priced.Notice, response.Notice)
		s.Empty(response.Lines)
		s.Nil(response.CouponCode)
	})
}

func (s *CartHandlerTestSuite) TestAddItem() {
	itemID := uuid.New()

	s.Run("success: 201 Created", func() {
		s.mockCommands.EXPECT().AddItem(gomock.Any(), s.userID, commands.AddItemInput{
			ItemID: itemID, Qty: 2, Variation: "Large", Addons: []string{"Cheese"},
		}).Return(s.emptyCart(), nil).Times(1)

		body := map[string]any{"itemId": itemID.String(), "qty": 2, "variation": "Large", "addons": []string{"Cheese"}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart/items", body, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name string
			body map[string]any
		}{
			{name: "missing itemId", body: map[string]any{"qty": 1}},
			{name: "zero qty", body: map[string]any{"itemId": itemID.String(), "qty": 0}},
			{name: "malformed itemId", body: map[string]any{"itemId": "abc", "qty": 1}},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart/items", tc.body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
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
			{name: "unknown item", err: catalog.ErrItemNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "item not found"},
			{name: "sold out", err: catalog.ErrItemUnavailable, expectedStatus: http.StatusConflict, expectedMsg: "item is not available"},
			{name: "different outlet", err: cart.ErrOutletMismatch, expectedStatus: http.StatusConflict, expectedMsg: "another outlet"},
			{name: "line over the cap", err: cart.ErrInvalidQuantity, expectedStatus: http.StatusBadRequest, expectedMsg: "between 1 and 99"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().AddItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				body := map[string]any{"itemId": itemID.String(), "qty": 1}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart/items", body, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *CartHandlerTestSuite) TestUpdateLine() {
	lineID := uuid.New()
	url := "/cart/items/" + lineID.String()

	s.Run("success: qty 0 is forwarded as a removal", func() {
		s.mockCommands.EXPECT().UpdateLine(gomock.Any(), s.userID, lineID, 0).Return(s.emptyCart(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"qty": 0}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when qty is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 on malformed line id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/xyz", map[string]any{"qty": 1}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid lineId")
	})

	s.Run("error: 404 for an unknown line", func() {
		s.mockCommands.EXPECT().UpdateLine(gomock.Any(), s.userID, lineID, 3).Return(nil, cart.ErrLineNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"qty": 3}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "cart item not found")
	})
}

func (s *CartHandlerTestSuite) TestRemoveLine() {
	lineID := uuid.New()
	s.mockCommands.EXPECT().RemoveLine(gomock.Any(), s.userID, lineID).Return(s.emptyCart(), nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/"+lineID.String(), nil, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}

func (s *CartHandlerTestSuite) TestApplyCoupon() {
	s.Run("error: 422 with the rejection reason", func() {
		s.mockCommands.EXPECT().ApplyCoupon(gomock.Any(), s.userID, "WELCOME50").
			Return(nil, coupon.ErrPerUserLimitReached).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/coupon", map[string]any{"code": "WELCOME50"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Coupon rejected")

		var body map[string]map[string]string
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Contains(body["error"]["reason"], "maximum number of times")
	})

	s.Run("error: 404 for an unknown code", func() {
		s.mockCommands.EXPECT().ApplyCoupon(gomock.Any(), s.userID, "NOPE").
			Return(nil, coupon.ErrCouponNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/coupon", map[string]any{"code": "NOPE"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "coupon not found")
	})

	s.Run("error: 400 when code is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/coupon", map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *CartHandlerTestSuite) TestRemoveCoupon() {
	s.mockCommands.EXPECT().RemoveCoupon(gomock.Any(), s.userID).Return(s.emptyCart(), nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/coupon", nil, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
}
