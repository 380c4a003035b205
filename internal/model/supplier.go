package model

// Region 采购区域（中国、日本、阿联酋等）
type Region struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Region) TableName() string {
	return "regions"
}

// Supplier 供应商，报价统一使用 currency 指定的币种
type Supplier struct {
	BaseModel
	Name        string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	RegionID    int64   `gorm:"index;not null" json:"region_id"`
	Region      *Region `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	Currency    string  `gorm:"size:5;default:'RUB'" json:"currency"`
	ContactInfo string  `gorm:"size:255" json:"contact_info"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// DeliveryCost 区域运费规则，每个区域最多一条（后写覆盖）
type DeliveryCost struct {
	BaseModel
	RegionID    int64   `gorm:"uniqueIndex;not null" json:"region_id"`
	Region      *Region `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	CostPerKg   float64 `gorm:"not null" json:"cost_per_kg"`
	MinCost     float64 `gorm:"not null" json:"min_cost"`
	Description string  `gorm:"size:255" json:"description"`
}

func (DeliveryCost) TableName() string {
	return "delivery_costs"
}
