package dto

// ImportPriceListReq 价格表导入请求
type ImportPriceListReq struct {
	SupplierID  int64    `json:"supplier_id" binding:"required"`
	UploadDate  string   `json:"upload_date"` // YYYY-MM-DD，缺省取当天
	FileName    string   `json:"file_name"`
	Description string   `json:"description"`
	Table       TableReq `json:"table" binding:"required"`
	FileData    []byte   `json:"file_data,omitempty"` // base64 原始文件，可选归档
}

// UpdateListDescriptionReq 修改批次备注
type UpdateListDescriptionReq struct {
	Description string `json:"description"`
}

// SetListActiveReq 批次启停
type SetListActiveReq struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
