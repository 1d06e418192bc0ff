package api

import (
	"net/http"

	reqdto "food-delivery-api/internal/handler/dto/request"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"
	"food-delivery-api/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cmds commands.CartCommands
	q    queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, q: q}
}

// @Summary Get cart
// @Description Returns the repriced cart. A coupon that stopped applying is detached and reported in notice.
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Router /api/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK)(h.q.Get(c.Request.Context(), userID))
}

// @Summary Add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddCartItemRequest true "Line"
// @Success 201 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req reqdto.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, http.StatusCreated)(h.cmds.AddItem(c.Request.Context(), userID, req.ToInput()))
}

// @Summary Change line quantity
// @Description qty 0 removes the line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lineId path string true "Line ID"
// @Param request body reqdto.UpdateCartLineRequest true "Quantity"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} httperr.Response
// @Router /api/cart/items/{lineId} [patch]
func (h *CartHandler) UpdateLine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	lineID, ok := uuidParam(c, "lineId")
	if !ok {
		return
	}
	var req reqdto.UpdateCartLineRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, http.StatusOK)(h.cmds.UpdateLine(c.Request.Context(), userID, lineID, *req.Qty))
}

// @Summary Remove line
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param lineId path string true "Line ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} httperr.Response
// @Router /api/cart/items/{lineId} [delete]
func (h *CartHandler) RemoveLine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	lineID, ok := uuidParam(c, "lineId")
	if !ok {
		return
	}
	h.respond(c, http.StatusOK)(h.cmds.RemoveLine(c.Request.Context(), userID, lineID))
}

// @Summary Apply coupon
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApplyCouponRequest true "Coupon code"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/cart/coupon [patch]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req reqdto.ApplyCouponRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, http.StatusOK)(h.cmds.ApplyCoupon(c.Request.Context(), userID, req.Code))
}

// @Summary Remove coupon
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Router /api/cart/coupon [delete]
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK)(h.cmds.RemoveCoupon(c.Request.Context(), userID))
}

func (h *CartHandler) respond(c *gin.Context, status int) func(*shared.PricedCart, error) {
	return func(p *shared.PricedCart, err error) {
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(status, resdto.FromPricedCart(p))
	}
}
