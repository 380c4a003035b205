package model

import (
	"time"

	"gorm.io/datatypes"
)

// PriceList 一次价格表导入形成的批次
// is_active 控制整批报价是否参与比价；关掉不删数据，可随时恢复
type PriceList struct {
	BaseModel
	SupplierID int64     `gorm:"index;not null" json:"supplier_id"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	UploadDate  time.Time `gorm:"index;not null" json:"upload_date"`
	FileName    string    `gorm:"size:255" json:"file_name"`
	FileURL     string    `gorm:"size:512" json:"file_url"` // 原始文件归档地址（S3 或本地）
	Description string    `gorm:"size:255" json:"description"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`

	// 导入时识别出的表头映射，留档便于排查"为什么这列没进来"
	ColumnMap datatypes.JSON `gorm:"type:jsonb" json:"column_map,omitempty"`

	Prices []Price `gorm:"foreignKey:PriceListID" json:"-"`
}

func (PriceList) TableName() string {
	return "price_lists"
}

// Price 单条报价观测，只追加不修改
// 同一供应商可以有多个活跃批次并存，取数时按批次日期挑最新
type Price struct {
	BaseModel
	PriceListID int64   `gorm:"index;not null" json:"price_list_id"`
	PartID      int64   `gorm:"index;not null" json:"part_id"`
	Price       float64 `gorm:"not null" json:"price"` // 供应商币种下的价格
}

func (Price) TableName() string {
	return "prices"
}
