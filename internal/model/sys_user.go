package model

// SysUser 系统用户
type SysUser struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Name     string `gorm:"size:100" json:"name"`

	// 系统角色: admin (管理员), user (普通员工)
	Role string `gorm:"size:20;default:'user'" json:"role"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

func (SysUser) TableName() string {
	return "sys_users"
}
