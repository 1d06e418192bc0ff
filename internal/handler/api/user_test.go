//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"food-delivery-api/internal/domain/user"
	"food-delivery-api/internal/handler/api"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/usecase/commands"
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

type UserHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserAdminCommands
	mockQueries  *queriesmock.MockUserQueries
	adminID      uuid.UUID
	role         user.Role
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserAdminCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.adminID = uuid.New()
	s.role = user.RoleManager

	authMiddleware := func(c *gin.Context) {
		c.Set("user_id", s.adminID)
		c.Set("user_role", s.role)
		c.Next()
	}

	h := api.NewUserHandler(s.mockCommands, s.mockQueries)
	g := s.router.Group("", authMiddleware)
	g.GET("/users", h.List)
	g.POST("/users", h.Create)
	g.GET("/users/staff", h.Staff)
	g.GET("/users/delivery-persons", h.DeliveryPersons)
	g.GET("/users/:id", h.Get)
	g.PATCH("/users/:id/block", h.Block)
	g.PATCH("/users/:id/unblock", h.Unblock)
	g.PATCH("/users/:id/role", h.ChangeRole)
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) manager() user.Admin {
	return user.Admin{ID: s.adminID, Role: s.role}
}

func (s *UserHandlerTestSuite) TestList() {
	s.Run("success: role and status filters reach the query", func() {
		active := user.StatusActive
		want := queries.UserFilter{
			Roles:       []user.Role{user.RoleDelivery},
			Status:      &active,
			Query:       "ravi",
			PageRequest: queries.PageRequest{Page: 2, Limit: 10},
		}
		view := builder.NewUserBuilder().WithRole(user.RoleDelivery).BuildReadModel()
		s.mockQueries.EXPECT().List(gomock.Any(), want).
			Return(&queries.Page[*queries.UserView]{Items: []*queries.UserView{view}, Total: 11, Page: 2, Limit: 10}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?role=DELIVERY&status=active&q=%20ravi%20&page=2&limit=10", nil, "")

		var response resdto.PageResponse[resdto.UserResponse]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(11, response.Total)
		s.Require().Len(response.Items, 1)
		s.Equal("DELIVERY", response.Items[0].Role)
	})

	s.Run("error: 400 for an unknown role", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?role=CHEF", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid role")
	})
}

func (s *UserHandlerTestSuite) TestDeliveryPersons() {
	s.mockQueries.EXPECT().DeliveryPersons(gomock.Any(), queries.PageRequest{Page: 1, Limit: queries.DefaultListLimit}).
		Return(&queries.Page[*queries.UserView]{Items: []*queries.UserView{}, Page: 1, Limit: queries.DefaultListLimit}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/delivery-persons", nil, "")

	var response resdto.PageResponse[resdto.UserResponse]
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Empty(response.Items)
}

func (s *UserHandlerTestSuite) TestCreate() {
	body := map[string]any{
		"name":     "Ravi Courier",
		"email":    "ravi@example.com",
		"password": "s3cret-pass",
		"role":     "DELIVERY",
	}

	s.Run("success: 201 with the stored account", func() {
		created := builder.NewUserBuilder().WithRole(user.RoleDelivery).MustBuild()
		s.mockCommands.EXPECT().CreateAccount(gomock.Any(), s.manager(), commands.CreateAccountInput{
			Name: "Ravi Courier", Email: "ravi@example.com", Password: "s3cret-pass", Role: user.RoleDelivery,
		}).Return(created, nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), created.ID()).
			Return(builder.NewUserBuilder().With(func(b *builder.UserBuilder) {
				b.ID = created.ID()
				b.Role = user.RoleDelivery
			}).BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/users", body, "")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(created.ID(), response.ID)
		s.Equal("DELIVERY", response.Role)
	})

	s.Run("error: 403 when a manager creates a manager", func() {
		s.mockCommands.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, user.ErrOutranked).Times(1)

		mgr := map[string]any{"name": "M", "email": "m@example.com", "password": "s3cret-pass", "role": "MANAGER"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/users", mgr, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "cannot administer")
	})

	s.Run("error: 409 on a taken email", func() {
		s.mockCommands.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, user.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/users", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already registered")
	})

	s.Run("error: 400 without a role", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/users",
			map[string]any{"name": "X", "email": "x@example.com", "password": "s3cret-pass"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *UserHandlerTestSuite) TestBlock() {
	target := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.Status = user.StatusBlocked })

	s.Run("success: answers the re-read user", func() {
		id := target.ID
		s.mockCommands.EXPECT().Block(gomock.Any(), s.manager(), id).Return(target.MustBuild(), nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(target.BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/users/"+id.String()+"/block", nil, "")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("blocked", response.Status)
	})

	s.Run("error: 403 on your own account", func() {
		s.mockCommands.EXPECT().Block(gomock.Any(), gomock.Any(), s.adminID).Return(nil, user.ErrSelfAdminister).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/users/"+s.adminID.String()+"/block", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "your own account")
	})

	s.Run("error: 404 for an unknown user", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Unblock(gomock.Any(), gomock.Any(), id).Return(nil, user.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/users/"+id.String()+"/unblock", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "user not found")
	})
}

func (s *UserHandlerTestSuite) TestChangeRole() {
	id := uuid.New()
	url := "/users/" + id.String() + "/role"

	s.Run("success: super admin promotes to manager", func() {
		s.role = user.RoleSuperAdmin
		defer func() { s.role = user.RoleManager }()

		promoted := builder.NewUserBuilder().With(func(b *builder.UserBuilder) {
			b.ID = id
			b.Role = user.RoleManager
		})
		s.mockCommands.EXPECT().ChangeRole(gomock.Any(), user.Admin{ID: s.adminID, Role: user.RoleSuperAdmin}, id, user.RoleManager).
			Return(promoted.MustBuild(), nil).Times(1)
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(promoted.BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"role": "MANAGER"}, "")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("MANAGER", response.Role)
	})

	s.Run("error: 400 for an unknown role never reaches the usecase", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"role": "OWNER"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid role")
	})
}
