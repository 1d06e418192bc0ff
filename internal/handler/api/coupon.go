package api

import (
	"net/http"
	"strings"

	reqdto "food-delivery-api/internal/handler/dto/request"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CouponHandler struct {
	cmds commands.CouponCommands
	q    queries.CouponQueries
}

func NewCouponHandler(cmds commands.CouponCommands, q queries.CouponQueries) *CouponHandler {
	return &CouponHandler{cmds: cmds, q: q}
}

// @Summary Create coupon
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon"
// @Success 201 {object} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if !bindJSON(c, &req) {
		return
	}
	cp, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeCoupon(c, http.StatusCreated, cp.ID())
}

// @Summary List coupons
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Param q query string false "Code or title"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PageResponse[resdto.CouponResponse]
// @Router /api/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	var q reqdto.CouponListQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.q.List(c.Request.Context(), strings.TrimSpace(q.Q), q.ToPage())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromCouponView))
}

// @Summary Get coupon
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 200 {object} resdto.CouponResponse
// @Failure 404 {object} httperr.Response
// @Router /api/coupons/{id} [get]
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	h.writeCoupon(c, http.StatusOK, id)
}

// @Summary Update coupon
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Param request body reqdto.UpdateCouponRequest true "Fields to change"
// @Success 200 {object} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/coupons/{id} [patch]
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateCouponRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.cmds.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeCoupon(c, http.StatusOK, id)
}

// @Summary Delete coupon
// @Description Orders keep their history; their coupon reference is cleared
// @Tags coupons
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CouponHandler) writeCoupon(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.FromCouponView(view))
}
