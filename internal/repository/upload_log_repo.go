package repository

import (
	"context"

	"gorm.io/gorm"

	"autoparts_erp_v1_202608/internal/model"
)

// UploadLogRepository 导入留档
type UploadLogRepository interface {
	Create(ctx context.Context, log *model.UploadLog) error
	List(ctx context.Context, limit int) ([]model.UploadLog, error)
}

type uploadLogRepo struct {
	db *gorm.DB
}

func NewUploadLogRepository(db *gorm.DB) UploadLogRepository {
	return &uploadLogRepo{db: db}
}

func (r *uploadLogRepo) Create(ctx context.Context, log *model.UploadLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *uploadLogRepo) List(ctx context.Context, limit int) ([]model.UploadLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []model.UploadLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
