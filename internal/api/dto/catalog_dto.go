package dto

// ==================== 品牌 ====================

// AddSynonymReq 给品牌挂别名
type AddSynonymReq struct {
	Name string `json:"name" binding:"required"`
}

// ==================== 配件 ====================

// ImportReq 目录/售价/统计导入请求
type ImportReq struct {
	Table    TableReq `json:"table" binding:"required"`
	FileName string   `json:"file_name"`
}

// UpdatePartReq 人工编辑配件
type UpdatePartReq struct {
	MainArticle       string  `json:"main_article" binding:"required"`
	AdditionalArticle string  `json:"additional_article"`
	NameRu            string  `json:"name_ru"`
	NameEn            string  `json:"name_en"`
	Weight            float64 `json:"weight"`
	VolumeCoefficient float64 `json:"volume_coefficient"`
	Notes             string  `json:"notes"`
}
