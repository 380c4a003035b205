package model

import "time"

// ExpectedSalePrice 预期售价（基准货币），按 (brand, article) 形成时间序列
// "当前售价" = effective_date 最新、同日期再看 updated_at 的一条
type ExpectedSalePrice struct {
	BaseModel
	BrandID int64  `gorm:"index:idx_esp_key;not null" json:"brand_id"`
	Brand   *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`

	MainArticle   string    `gorm:"size:100;index:idx_esp_key;not null" json:"main_article"`
	PriceBase     float64   `gorm:"not null" json:"price_base"`
	EffectiveDate time.Time `gorm:"index;not null" json:"effective_date"`
	Notes         string    `gorm:"size:255" json:"notes"`
}

func (ExpectedSalePrice) TableName() string {
	return "expected_sale_prices"
}
