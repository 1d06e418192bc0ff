package response

import (
	"time"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TopItemResponse struct {
	ItemID  uuid.UUID     `json:"itemId"`
	Name    string        `json:"name"`
	Sold    int           `json:"sold"`
	Revenue pricing.Money `json:"revenue"`
}

type SalesReportResponse struct {
	Range             string            `json:"range"`
	Label             string            `json:"label"`
	From              time.Time         `json:"from"`
	To                time.Time         `json:"to"`
	TotalOrders       int               `json:"totalOrders"`
	TotalSales        pricing.Money     `json:"totalSales"`
	AverageOrderValue pricing.Money     `json:"averageOrderValue"`
	ByStatus          map[string]int    `json:"byStatus"`
	TopItems          []TopItemResponse `json:"topItems"`
}

func FromSalesReport(r *queries.SalesReport) *SalesReportResponse {
	res := copyFlat[SalesReportResponse](r)
	if res.ByStatus == nil {
		res.ByStatus = map[string]int{}
	}
	if res.TopItems == nil {
		res.TopItems = []TopItemResponse{}
	}
	return res
}

type CustomerReportResponse struct {
	Days            int       `json:"days"`
	Since           time.Time `json:"since"`
	TotalCustomers  int       `json:"totalCustomers"`
	ActiveCustomers int       `json:"activeCustomers"`
	RepeatCustomers int       `json:"repeatCustomers"`
}

func FromCustomerReport(r *queries.CustomerReport) *CustomerReportResponse {
	return copyFlat[CustomerReportResponse](r)
}

type DeliveryReportResponse struct {
	Range            string          `json:"range"`
	Label            string          `json:"label"`
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	TargetMinutes    int             `json:"targetMinutes"`
	Delivered        int             `json:"delivered"`
	AvgMinutes       decimal.Decimal `json:"avgMinutes"`
	OnTimeDeliveries int             `json:"onTimeDeliveries"`
	LateDeliveries   int             `json:"lateDeliveries"`
	OnTimeRate       decimal.Decimal `json:"onTimeRate"`
}

func FromDeliveryReport(r *queries.DeliveryReport) *DeliveryReportResponse {
	return copyFlat[DeliveryReportResponse](r)
}

func FromTopItems(items []queries.TopItem) []TopItemResponse {
	out := make([]TopItemResponse, len(items))
	for i, it := range items {
		out[i] = TopItemResponse(it)
	}
	return out
}
