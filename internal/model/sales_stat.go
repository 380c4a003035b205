package model

import "time"

// 统计数据来源
const (
	StatTypeOwnSales        = "own_sales"        // 自有销售
	StatTypeCompetitorSales = "competitor_sales" // 竞品销售
	StatTypeAnalyticsCenter = "analytics_center" // 分析中心数据
)

// 销量分组
const (
	VolumeGroupTop      = "top_sales"   // 热销
	VolumeGroupGood     = "good_demand" // 需求良好
	VolumeGroupLow      = "low_demand"  // 需求偏低
	VolumeGroupNoDemand = "no_demand"   // 无需求
)

// SalesStatistic 销售统计
// (brand, article, data_type, period) 唯一，重复导入按键更新
type SalesStatistic struct {
	BaseModel
	BrandID int64  `gorm:"uniqueIndex:idx_stat_key;not null" json:"brand_id"`
	Brand   *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`

	MainArticle string    `gorm:"size:100;uniqueIndex:idx_stat_key;not null" json:"main_article"`
	DataType    string    `gorm:"size:32;uniqueIndex:idx_stat_key;not null" json:"data_type"`
	Period      time.Time `gorm:"uniqueIndex:idx_stat_key;not null" json:"period"`

	Quantity         float64 `gorm:"default:0" json:"quantity"`
	VolumeGroup      string  `gorm:"size:32" json:"volume_group"`
	RequestsPerMonth int     `gorm:"default:0" json:"requests_per_month"`
	SourceName       string  `gorm:"size:100" json:"source_name"`
	Notes            string  `gorm:"size:255" json:"notes"`
}

func (SalesStatistic) TableName() string {
	return "sales_statistics"
}
