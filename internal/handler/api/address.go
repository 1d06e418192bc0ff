package api

import (
	"net/http"

	reqdto "food-delivery-api/internal/handler/dto/request"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddressHandler serves the caller's own address book. Other users'
// addresses answer 404.
type AddressHandler struct {
	cmds commands.AddressCommands
	q    queries.AddressQueries
}

func NewAddressHandler(cmds commands.AddressCommands, q queries.AddressQueries) *AddressHandler {
	return &AddressHandler{cmds: cmds, q: q}
}

// @Summary List my addresses
// @Description Default first, then newest
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.AddressResponse
// @Router /api/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	views, err := h.q.List(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAddressViews(views))
}

// @Summary Get my default address
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AddressResponse
// @Failure 404 {object} httperr.Response
// @Router /api/addresses/default [get]
func (h *AddressHandler) Default(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	view, err := h.q.Default(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAddressView(view))
}

// @Summary Get address
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Success 200 {object} resdto.AddressResponse
// @Failure 404 {object} httperr.Response
// @Router /api/addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	h.writeAddress(c, http.StatusOK, userID, id)
}

// @Summary Add address
// @Description The first address becomes the default
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAddressRequest true "Address"
// @Success 201 {object} resdto.AddressResponse
// @Failure 400 {object} httperr.Response
// @Router /api/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req reqdto.CreateAddressRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.cmds.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeAddress(c, http.StatusCreated, userID, a.ID())
}

// @Summary Update address
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Param request body reqdto.UpdateAddressRequest true "Fields to change"
// @Success 200 {object} resdto.AddressResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/addresses/{id} [patch]
func (h *AddressHandler) Update(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	var req reqdto.UpdateAddressRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.cmds.Update(c.Request.Context(), userID, id, req.ToInput()); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeAddress(c, http.StatusOK, userID, id)
}

// @Summary Delete address
// @Description Deleting the default promotes the newest remaining address
// @Tags addresses
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), userID, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Make address the default
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Success 200 {object} resdto.AddressResponse
// @Failure 404 {object} httperr.Response
// @Router /api/addresses/{id}/default [patch]
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	if _, err := h.cmds.SetDefault(c.Request.Context(), userID, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeAddress(c, http.StatusOK, userID, id)
}

func (h *AddressHandler) target(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := uuidParam(c, "id")
	return userID, id, ok
}

func (h *AddressHandler) writeAddress(c *gin.Context, status int, userID, id uuid.UUID) {
	view, err := h.q.Get(c.Request.Context(), userID, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.FromAddressView(view))
}
