package api

import (
	"context"
	"net/http"

	"food-delivery-api/internal/domain/user"
	reqdto "food-delivery-api/internal/handler/dto/request"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler is the back-office user administration surface.
type UserHandler struct {
	cmds commands.UserAdminCommands
	q    queries.UserQueries
}

func NewUserHandler(cmds commands.UserAdminCommands, q queries.UserQueries) *UserHandler {
	return &UserHandler{cmds: cmds, q: q}
}

// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role"
// @Param status query string false "active or blocked"
// @Param q query string false "Name, email or phone"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PageResponse[resdto.UserResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var q reqdto.UserListQuery
	if !bindQuery(c, &q) {
		return
	}
	f, err := q.ToFilter()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	page, err := h.q.List(c.Request.Context(), f)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromUserView))
}

// @Summary List staff
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PageResponse[resdto.UserResponse]
// @Router /api/users/staff [get]
func (h *UserHandler) Staff(c *gin.Context) {
	h.listPage(c, h.q.Staff)
}

// @Summary List delivery persons
// @Description Active couriers that can be assigned to orders
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PageResponse[resdto.UserResponse]
// @Router /api/users/delivery-persons [get]
func (h *UserHandler) DeliveryPersons(c *gin.Context) {
	h.listPage(c, h.q.DeliveryPersons)
}

// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 404 {object} httperr.Response
// @Router /api/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	h.writeUser(c, http.StatusOK, id)
}

// @Summary Create staff account
// @Description Managers create STAFF, DELIVERY and CUSTOMER accounts. Only a super admin creates managers.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAccountRequest true "Account"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}
	var req reqdto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	u, err := h.cmds.CreateAccount(c.Request.Context(), admin, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeUser(c, http.StatusCreated, u.ID())
}

// @Summary Block user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/users/{id}/block [patch]
func (h *UserHandler) Block(c *gin.Context) {
	h.administer(c, func(admin user.Admin, id uuid.UUID) error {
		_, err := h.cmds.Block(c.Request.Context(), admin, id)
		return err
	})
}

// @Summary Unblock user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/users/{id}/unblock [patch]
func (h *UserHandler) Unblock(c *gin.Context) {
	h.administer(c, func(admin user.Admin, id uuid.UUID) error {
		_, err := h.cmds.Unblock(c.Request.Context(), admin, id)
		return err
	})
}

// @Summary Change role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body reqdto.ChangeRoleRequest true "New role"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req reqdto.ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := req.ToDomain()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.administer(c, func(admin user.Admin, id uuid.UUID) error {
		_, err := h.cmds.ChangeRole(c.Request.Context(), admin, id, role)
		return err
	})
}

func (h *UserHandler) administer(c *gin.Context, fn func(admin user.Admin, id uuid.UUID) error) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := fn(admin, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeUser(c, http.StatusOK, id)
}

func (h *UserHandler) listPage(c *gin.Context, list func(ctx context.Context, page queries.PageRequest) (*queries.Page[*queries.UserView], error)) {
	var q reqdto.PageQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := list(c.Request.Context(), q.ToPage())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromUserView))
}

func (h *UserHandler) writeUser(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.FromUserView(view))
}
