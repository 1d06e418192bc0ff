package api

import (
	"net/http"

	reqdto "food-delivery-api/internal/handler/dto/request"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, q: q}
}

// @Summary List items
// @Tags items
// @Produce json
// @Param outletId query string false "Outlet ID"
// @Param category query string false "Category"
// @Param veg query bool false "Vegetarian only"
// @Param available query bool false "Available only"
// @Param q query string false "Search name and description"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} resdto.PageResponse[resdto.ItemResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/items [get]
func (h *CatalogHandler) List(c *gin.Context) {
	var q reqdto.ItemListQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.q.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromItemView))
}

// @Summary Get item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 404 {object} httperr.Response
// @Router /api/items/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Create item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateItemRequest true "Item"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/items [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req reqdto.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	it, err := h.cmds.CreateItem(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), it.ID())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromItemView(view))
}

// @Summary Update item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Fields to change"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/items/{id} [patch]
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.cmds.UpdateItem(c.Request.Context(), id, req.ToInput()); err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Set item availability
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body reqdto.AvailabilityRequest true "Availability"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/items/{id}/availability [patch]
func (h *CatalogHandler) SetAvailability(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.cmds.SetAvailability(c.Request.Context(), id, *req.IsAvailable); err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Delete item
// @Description Reviews go with the item. Orders and carts keep their snapshots.
// @Tags items
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/items/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.DeleteItem(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
