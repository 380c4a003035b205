package dto

// AddRateReq 录入汇率
type AddRateReq struct {
	CurrencyCode string  `json:"currency_code" binding:"required"`
	RateToBase   float64 `json:"rate_to_base" binding:"required,gt=0"`
	Description  string  `json:"description"`
}

// UpsertDeliveryCostReq 设置区域运费规则
type UpsertDeliveryCostReq struct {
	RegionID    int64   `json:"region_id" binding:"required"`
	CostPerKg   float64 `json:"cost_per_kg" binding:"gte=0"`
	MinCost     float64 `json:"min_cost" binding:"gte=0"`
	Description string  `json:"description"`
}
