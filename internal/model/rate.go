package model

// CurrencyRate 汇率记录，只追加不更新
// "当前汇率" = created_at 最新的一条；旧记录留作历史
type CurrencyRate struct {
	BaseModel
	CurrencyCode string  `gorm:"size:5;index;not null" json:"currency_code"`
	RateToBase   float64 `gorm:"not null" json:"rate_to_base"` // 1 单位外币折合多少基准货币
	Description  string  `gorm:"size:255" json:"description"`
}

func (CurrencyRate) TableName() string {
	return "currency_rates"
}
