package model

// Part 配件主数据
// (brand_id, main_article) 唯一；main_article / additional_article 都存归一化后的货号
// 字段采用"只补空不覆盖"策略：已有值不会被后续导入覆盖
type Part struct {
	BaseModel
	BrandID int64  `gorm:"uniqueIndex:idx_brand_article;not null" json:"brand_id"`
	Brand   *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`

	MainArticle       string `gorm:"size:100;uniqueIndex:idx_brand_article;index;not null" json:"main_article"`
	AdditionalArticle string `gorm:"size:100;index" json:"additional_article"`

	NameRu string `gorm:"size:255" json:"name_ru"`
	NameEn string `gorm:"size:255" json:"name_en"`

	// 重量（kg）与体积系数，0 视为未填写
	Weight            float64 `gorm:"default:0" json:"weight"`
	VolumeCoefficient float64 `gorm:"default:0" json:"volume_coefficient"`

	Notes string `gorm:"size:512" json:"notes"`
}

func (Part) TableName() string {
	return "parts_catalog"
}
