package request

type TopItemsQuery struct {
	Range string `form:"range"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

type CustomerReportQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}
