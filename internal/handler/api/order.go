package api

import (
	"net/http"

	"food-delivery-api/internal/domain/order"
	reqdto "food-delivery-api/internal/handler/dto/request"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/usecase/commands"
	"food-delivery-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	checkout commands.CheckoutCommands
	cmds     commands.OrderCommands
	q        queries.OrderQueries
}

func NewOrderHandler(checkout commands.CheckoutCommands, cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{checkout: checkout, cmds: cmds, q: q}
}

// @Summary Start checkout
// @Description Issue the cart id that makes the following checkout idempotent
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StartCheckoutResponse
// @Router /api/orders/start-checkout [get]
func (h *OrderHandler) StartCheckout(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.StartCheckoutResponse{CartID: h.checkout.StartCheckout(c.Request.Context())})
}

// @Summary Checkout
// @Description Place an order from the cart. Replaying the same cartId returns 409.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req reqdto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.checkout.Checkout(c.Request.Context(), actor.UserID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeDetails(c, actor, o, http.StatusCreated)
}

// @Summary My orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PageResponse[resdto.OrderListItemResponse]
// @Router /api/orders/my [get]
func (h *OrderHandler) Mine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q reqdto.PageQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.q.Mine(c.Request.Context(), userID, q.ToPage())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromOrderListItem))
}

// @Summary Get order
// @Description Visible to the owner, staff-side roles and the assigned courier
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Details(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary List orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date, inclusive (YYYY-MM-DD)"
// @Param userId query string false "Customer ID"
// @Param q query string false "Order number or customer name, email, phone"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PageResponse[resdto.OrderListItemResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q reqdto.OrderListQuery
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
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromOrderListItem))
}

// @Summary Advance order status
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateStatusRequest true "Target status"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req reqdto.UpdateStatusRequest
	h.mutate(c, &req, func(actor order.Actor, id uuid.UUID) (*order.Order, error) {
		target, err := req.ToDomain()
		if err != nil {
			return nil, err
		}
		return h.cmds.UpdateStatus(c.Request.Context(), actor, id, target)
	})
}

// @Summary Assign courier
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.AssignRequest true "Courier"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/assign [patch]
func (h *OrderHandler) Assign(c *gin.Context) {
	var req reqdto.AssignRequest
	h.mutate(c, &req, func(actor order.Actor, id uuid.UUID) (*order.Order, error) {
		return h.cmds.Assign(c.Request.Context(), actor, id, req.ToInput())
	})
}

// @Summary Cancel order
// @Description Owner or super admin, strictly before READY
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.CancelRequest true "Reason"
// @Success 200 {object} resdto.OrderResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/cancel [patch]
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req reqdto.CancelRequest
	h.mutate(c, &req, func(actor order.Actor, id uuid.UUID) (*order.Order, error) {
		return h.cmds.Cancel(c.Request.Context(), actor, id, req.ToInput())
	})
}

// @Summary Refund order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id}/refund [post]
func (h *OrderHandler) Refund(c *gin.Context) {
	h.mutate(c, nil, func(actor order.Actor, id uuid.UUID) (*order.Order, error) {
		return h.cmds.Refund(c.Request.Context(), actor, id)
	})
}

// @Summary Repeat order
// @Description Place a new order with the same items at their original prices. The coupon is not reapplied.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.RepeatOrderRequest true "Fresh cart id from start-checkout"
// @Success 201 {object} resdto.OrderResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/orders/{id}/repeat [post]
func (h *OrderHandler) Repeat(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.RepeatOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.checkout.RepeatOrder(c.Request.Context(), actor, id, req.CartID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.writeDetails(c, actor, o, http.StatusCreated)
}

// @Summary Delete order
// @Description Purge a cancelled order
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// mutate parses the path id and optional body, runs fn and answers with the
// fresh order view.
func (h *OrderHandler) mutate(c *gin.Context, body any, fn func(actor order.Actor, id uuid.UUID) (*order.Order, error)) {
	mutateOrder(c, h.q, "id", body, fn)
}

func (h *OrderHandler) writeDetails(c *gin.Context, actor order.Actor, o *order.Order, status int) {
	writeOrderDetails(c, h.q, actor, o, status)
}

func mutateOrder(c *gin.Context, q queries.OrderQueries, param string, body any, fn func(actor order.Actor, id uuid.UUID) (*order.Order, error)) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, param)
	if !ok {
		return
	}
	if body != nil && !bindJSON(c, body) {
		return
	}
	o, err := fn(actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	writeOrderDetails(c, q, actor, o, http.StatusOK)
}

func writeOrderDetails(c *gin.Context, q queries.OrderQueries, actor order.Actor, o *order.Order, status int) {
	view, err := q.Details(c.Request.Context(), actor, o.ID())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.FromOrderView(view))
}
