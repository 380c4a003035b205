package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoparts_erp_v1_202608/internal/model"
)

// UserRepository 系统用户
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.SysUser, error)
	Create(ctx context.Context, user *model.SysUser) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.SysUser, error) {
	var user model.SysUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.SysUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}
