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

// DeliveryHandler serves the courier app. Every route acts on the caller's
// own assignments.
type DeliveryHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewDeliveryHandler(cmds commands.OrderCommands, q queries.OrderQueries) *DeliveryHandler {
	return &DeliveryHandler{cmds: cmds, q: q}
}

// @Summary Assigned orders
// @Tags delivery
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.PageResponse[resdto.OrderListItemResponse]
// @Router /api/delivery/assigned [get]
func (h *DeliveryHandler) Assigned(c *gin.Context) {
	courierID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q reqdto.PageQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.q.AssignedToCourier(c.Request.Context(), courierID, q.ToPage())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromOrderListItem))
}

// @Summary Mark picked up
// @Tags delivery
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/delivery/{orderId}/pick [patch]
func (h *DeliveryHandler) Pick(c *gin.Context) {
	mutateOrder(c, h.q, "orderId", nil, func(actor order.Actor, id uuid.UUID) (*order.Order, error) {
		return h.cmds.MarkPicked(c.Request.Context(), actor, id)
	})
}

// @Summary Update live location
// @Tags delivery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Param request body reqdto.LocationRequest true "Position"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/delivery/{orderId}/location [patch]
func (h *DeliveryHandler) Location(c *gin.Context) {
	var req reqdto.LocationRequest
	mutateOrder(c, h.q, "orderId", &req, func(actor order.Actor, id uuid.UUID) (*order.Order, error) {
		point, err := req.ToDomain()
		if err != nil {
			return nil, err
		}
		return h.cmds.UpdateLocation(c.Request.Context(), actor, id, point)
	})
}

// @Summary Mark out for delivery
// @Tags delivery
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 409 {object} httperr.Response
// @Router /api/delivery/{orderId}/out-for-delivery [patch]
func (h *DeliveryHandler) OutForDelivery(c *gin.Context) {
	mutateOrder(c, h.q, "orderId", nil, func(actor order.Actor, id uuid.UUID) (*order.Order, error) {
		return h.cmds.MarkOutForDelivery(c.Request.Context(), actor, id)
	})
}

// @Summary Mark delivered
// @Tags delivery
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 409 {object} httperr.Response
// @Router /api/delivery/{orderId}/delivered [patch]
func (h *DeliveryHandler) Delivered(c *gin.Context) {
	mutateOrder(c, h.q, "orderId", nil, func(actor order.Actor, id uuid.UUID) (*order.Order, error) {
		return h.cmds.MarkDelivered(c.Request.Context(), actor, id)
	})
}
