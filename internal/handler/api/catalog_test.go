//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"food-delivery-api/internal/domain/catalog"
	"food-delivery-api/internal/handler/api"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/usecase/queries"
	"food-delivery-api/tests/common/builder"
	"food-delivery-api/tests/common/httptest"
	commandsmock "food-delivery-api/tests/mock/commands"
	queriesmock "food-delivery-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCatalogCommands
	mockQueries  *queriesmock.MockCatalogQueries
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCatalogCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCatalogQueries(s.mockCtrl)

	h := api.NewCatalogHandler(s.mockCommands, s.mockQueries)
	s.router.PATCH("/items/:id/availability", h.SetAvailability)
	s.router.DELETE("/items/:id", h.Delete)
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) TestSetAvailability() {
	id := uuid.New()
	url := "/items/" + id.String() + "/availability"

	s.Run("success: 売り切れにする", func() {
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), id, false).
			Return(builder.NewItemBuilder().AsUnavailable().MustBuild(), nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), id).
			Return(&queries.ItemView{ID: id, Name: "Masala Dosa", IsAvailable: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"isAvailable": false}, "")

		var response resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(id, response.ID)
		s.False(response.IsAvailable)
	})

	s.Run("error: 400 without isAvailable", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *CatalogHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteItem(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/items/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for an unknown item", func() {
		s.mockCommands.EXPECT().DeleteItem(gomock.Any(), id).Return(catalog.ErrItemNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/items/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "item not found")
	})
}
