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

type OutletHandler struct {
	cmds commands.OutletCommands
	q    queries.OutletQueries
}

func NewOutletHandler(cmds commands.OutletCommands, q queries.OutletQueries) *OutletHandler {
	return &OutletHandler{cmds: cmds, q: q}
}

// @Summary List outlets
// @Tags outlets
// @Produce json
// @Param city query string false "City"
// @Param q query string false "Name or code"
// @Param includeInactive query bool false "Include closed outlets"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PageResponse[resdto.OutletResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/outlets [get]
func (h *OutletHandler) List(c *gin.Context) {
	var q reqdto.OutletListQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.q.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromOutletView))
}

// @Summary Get outlet
// @Tags outlets
// @Produce json
// @Param id path string true "Outlet ID"
// @Success 200 {object} resdto.OutletResponse
// @Failure 404 {object} httperr.Response
// @Router /api/outlets/{id} [get]
func (h *OutletHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	h.writeOutlet(c, http.StatusOK, id)
}

// @Summary Create outlet
// @Tags outlets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOutletRequest true "Outlet"
// @Success 201 {object} resdto.OutletResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/outlets [post]
func (h *OutletHandler) Create(c *gin.Context) {
	var req reqdto.CreateOutletRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeOutlet(c, http.StatusCreated, o.ID())
}

// @Summary Update outlet
// @Description Send "hours": null to clear the opening hours
// @Tags outlets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Outlet ID"
// @Param request body reqdto.UpdateOutletRequest true "Fields to change"
// @Success 200 {object} resdto.OutletResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/outlets/{id} [patch]
func (h *OutletHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateOutletRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.cmds.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeOutlet(c, http.StatusOK, id)
}

func (h *OutletHandler) writeOutlet(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.FromOutletView(view))
}
