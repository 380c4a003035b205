package dto

// OrderItemReq 订单核价的一行
type OrderItemReq struct {
	Brand    string  `json:"brand" binding:"required"`
	Article  string  `json:"article" binding:"required"`
	Quantity float64 `json:"quantity"`
}

// PriceOrderReq 订单核价请求
type PriceOrderReq struct {
	Items []OrderItemReq `json:"items" binding:"required,min=1"`

	// MarginCoefficient 毛利系数，缺省用系统默认值
	MarginCoefficient float64 `json:"margin_coefficient"`
	// MaxAgeDays 报价新鲜度窗口（天），0 不过滤
	MaxAgeDays int `json:"max_age_days"`
	// SupplierID 指定后只按该供应商核价，否则跨区域比价
	SupplierID int64 `json:"supplier_id"`
}

// ExpectedPriceReq 手工录入预期售价
type ExpectedPriceReq struct {
	Brand         string  `json:"brand" binding:"required"`
	Article       string  `json:"article" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	EffectiveDate string  `json:"effective_date"` // YYYY-MM-DD，缺省取当天
	Notes         string  `json:"notes"`
}

// UpdateStatReq 人工修正一条销售统计
type UpdateStatReq struct {
	Quantity         float64 `json:"quantity"`
	VolumeGroup      string  `json:"volume_group"`
	RequestsPerMonth int     `json:"requests_per_month"`
	Notes            string  `json:"notes"`
}

// ImportStatsReq 销售统计导入请求
type ImportStatsReq struct {
	Table      TableReq `json:"table" binding:"required"`
	FileName   string   `json:"file_name"`
	DataType   string   `json:"data_type" binding:"required"` // own_sales | competitor_sales | analytics_center
	SourceName string   `json:"source_name"`
}
