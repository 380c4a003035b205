package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoparts_erp_v1_202608/internal/model"
)

// DeliveryCostRepository 区域运费规则：每个区域一条，写入即覆盖
type DeliveryCostRepository interface {
	Upsert(ctx context.Context, cost *model.DeliveryCost) error
	// GetByRegion 区域没有规则时返回 (nil, nil)，按"未知"处理而不是报错
	GetByRegion(ctx context.Context, regionID int64) (*model.DeliveryCost, error)
	List(ctx context.Context) ([]model.DeliveryCost, error)
	// MapByRegion 一次取全量，比价时按区域查表
	MapByRegion(ctx context.Context) (map[int64]*model.DeliveryCost, error)
}

type deliveryRepo struct {
	db *gorm.DB
}

func NewDeliveryCostRepository(db *gorm.DB) DeliveryCostRepository {
	return &deliveryRepo{db: db}
}

func (r *deliveryRepo) Upsert(ctx context.Context, cost *model.DeliveryCost) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "region_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"cost_per_kg", "min_cost", "description", "updated_at",
			}),
		}).
		Create(cost).Error
}

func (r *deliveryRepo) GetByRegion(ctx context.Context, regionID int64) (*model.DeliveryCost, error) {
	var cost model.DeliveryCost
	err := r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		First(&cost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cost, nil
}

func (r *deliveryRepo) List(ctx context.Context) ([]model.DeliveryCost, error) {
	var costs []model.DeliveryCost
	err := r.db.WithContext(ctx).
		Preload("Region").
		Find(&costs).Error
	return costs, err
}

func (r *deliveryRepo) MapByRegion(ctx context.Context) (map[int64]*model.DeliveryCost, error) {
	costs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[int64]*model.DeliveryCost, len(costs))
	for i := range costs {
		result[costs[i].RegionID] = &costs[i]
	}
	return result, nil
}
