package model

import "github.com/lib/pq"

// 导入类型
const (
	UploadKindPriceList      = "price_list"
	UploadKindCatalog        = "catalog"
	UploadKindExpectedPrices = "expected_prices"
	UploadKindSalesStats     = "sales_statistics"
)

// UploadLog 导入结果留档
// new_brands 记录本次导入新建的品牌名，方便人工复查是否有拼写错误
type UploadLog struct {
	BaseModel
	Kind        string `gorm:"size:32;index;not null" json:"kind"`
	PriceListID int64  `gorm:"index;default:0" json:"price_list_id"` // 仅价格表导入填写
	FileName    string `gorm:"size:255" json:"file_name"`

	Added   int `gorm:"default:0" json:"added"`
	Updated int `gorm:"default:0" json:"updated"`
	Skipped int `gorm:"default:0" json:"skipped"`
	Total   int `gorm:"default:0" json:"total"`

	NewBrands pq.StringArray `gorm:"type:text[]" json:"new_brands"`
}

func (UploadLog) TableName() string {
	return "upload_logs"
}
