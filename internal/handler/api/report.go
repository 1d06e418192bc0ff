package api

import (
	"net/http"

	reqdto "food-delivery-api/internal/handler/dto/request"
	resdto "food-delivery-api/internal/handler/dto/response"
	"food-delivery-api/internal/handler/httperr"
	"food-delivery-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	q queries.ReportQueries
}

func NewReportHandler(q queries.ReportQueries) *ReportHandler {
	return &ReportHandler{q: q}
}

// @Summary Sales report
// @Description Totals for the current day, ISO week or month (UTC)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param range query string false "day, week or month" default(day)
// @Success 200 {object} resdto.SalesReportResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	report, err := h.q.Sales(c.Request.Context(), c.Query("range"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSalesReport(report))
}

// @Summary Top selling items
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param range query string false "day, week or month" default(day)
// @Param limit query int false "How many (max 50)"
// @Success 200 {array} resdto.TopItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/reports/top-items [get]
func (h *ReportHandler) TopItems(c *gin.Context) {
	var q reqdto.TopItemsQuery
	if !bindQuery(c, &q) {
		return
	}
	items, err := h.q.TopItems(c.Request.Context(), q.Range, q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTopItems(items))
}

// @Summary Customer report
// @Description Active customers ordered in the last N days. Repeat customers have more than one order ever.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param days query int false "Look-back window in days" default(30)
// @Success 200 {object} resdto.CustomerReportResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/reports/customers [get]
func (h *ReportHandler) Customers(c *gin.Context) {
	var q reqdto.CustomerReportQuery
	if !bindQuery(c, &q) {
		return
	}
	report, err := h.q.Customers(c.Request.Context(), q.Days)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCustomerReport(report))
}

// @Summary Delivery performance
// @Description Deliveries completed in the window and how many met the 30 minute target
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param range query string false "day, week or month" default(month)
// @Success 200 {object} resdto.DeliveryReportResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/reports/delivery-performance [get]
func (h *ReportHandler) DeliveryPerformance(c *gin.Context) {
	report, err := h.q.DeliveryPerformance(c.Request.Context(), c.Query("range"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeliveryReport(report))
}
