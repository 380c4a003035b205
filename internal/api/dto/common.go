package dto

import "autoparts_erp_v1_202608/internal/ingest"

// ==================== 通用响应 ====================

// Resp 通用响应包装
type Resp struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResp 带分页的列表响应
type ListResp struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// ==================== 表格导入 ====================

// TableReq 导入接口的通用表格载荷
// 前端负责把 xlsx/csv 解析成表头 + 行，后端只做字段识别和落库
type TableReq struct {
	Headers []string   `json:"headers" binding:"required"`
	Rows    [][]string `json:"rows" binding:"required"`
}

// ToTable 转成导入层的表格结构
func (r *TableReq) ToTable() ingest.Table {
	return ingest.Table{Headers: r.Headers, Rows: r.Rows}
}
