package dto

// CreateSupplierReq 新建供应商
type CreateSupplierReq struct {
	Name        string `json:"name" binding:"required"`
	RegionID    int64  `json:"region_id" binding:"required"`
	Currency    string `json:"currency"` // 默认基准货币
	ContactInfo string `json:"contact_info"`
}

// CreateRegionReq 新建采购区域
type CreateRegionReq struct {
	Name string `json:"name" binding:"required"`
}
