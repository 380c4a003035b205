package model

// Brand 品牌主档
// 同一个品牌的各种写法（大小写、空格、别名）最终都归一到这一条记录
type Brand struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"` // 保留首次出现的原始大小写
	Description string `gorm:"size:255" json:"description"`
	Country     string `gorm:"size:50" json:"country"`

	Synonyms []BrandSynonym `gorm:"foreignKey:BrandID" json:"synonyms,omitempty"`
}

func (Brand) TableName() string {
	return "brands"
}

// BrandSynonym 品牌同义词
// synonym_name 永远存归一化后的键（去首尾空格 + 大写），展示名只在 brands 表里
type BrandSynonym struct {
	BaseModel
	BrandID     int64  `gorm:"index;not null" json:"brand_id"`
	SynonymName string `gorm:"size:100;uniqueIndex;not null" json:"synonym_name"`
}

func (BrandSynonym) TableName() string {
	return "brand_synonyms"
}
