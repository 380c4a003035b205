package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"autoparts_erp_v1_202608/internal/model"
)

// SalesStatFilter 统计查询条件
type SalesStatFilter struct {
	DataType    string // 空或 "all" 表示不过滤
	VolumeGroup string
	Search      string // 货号 / 品牌名模糊搜索
}

// SalesStatRepository 销售统计存储
type SalesStatRepository interface {
	// FindByKey 按业务键 (brand, article, data_type, period) 查找
	FindByKey(ctx context.Context, brandID int64, article, dataType string, period time.Time) (*model.SalesStatistic, error)
	Create(ctx context.Context, stat *model.SalesStatistic) error
	GetByID(ctx context.Context, id int64) (*model.SalesStatistic, error)
	Update(ctx context.Context, stat *model.SalesStatistic) error
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, filter SalesStatFilter) ([]model.SalesStatistic, error)
	// AggregatedLatest 每个 (brand, article, data_type) 最近周期的一条
	AggregatedLatest(ctx context.Context) ([]model.SalesStatistic, error)
}

type salesStatRepo struct {
	db *gorm.DB
}

func NewSalesStatRepository(db *gorm.DB) SalesStatRepository {
	return &salesStatRepo{db: db}
}

func (r *salesStatRepo) FindByKey(ctx context.Context, brandID int64, article, dataType string, period time.Time) (*model.SalesStatistic, error) {
	var stat model.SalesStatistic
	err := r.db.WithContext(ctx).
		Where("brand_id = ? AND main_article = ? AND data_type = ? AND period = ?",
			brandID, article, dataType, period).
		First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *salesStatRepo) GetByID(ctx context.Context, id int64) (*model.SalesStatistic, error) {
	var stat model.SalesStatistic
	err := r.db.WithContext(ctx).Preload("Brand").First(&stat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *salesStatRepo) Create(ctx context.Context, stat *model.SalesStatistic) error {
	return r.db.WithContext(ctx).Create(stat).Error
}

func (r *salesStatRepo) Update(ctx context.Context, stat *model.SalesStatistic) error {
	return r.db.WithContext(ctx).Save(stat).Error
}

func (r *salesStatRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.SalesStatistic{}, id).Error
}

func (r *salesStatRepo) List(ctx context.Context, filter SalesStatFilter) ([]model.SalesStatistic, error) {
	query := r.db.WithContext(ctx).
		Model(&model.SalesStatistic{}).
		Joins("JOIN brands ON brands.id = sales_statistics.brand_id").
		Preload("Brand")

	if filter.DataType != "" && filter.DataType != "all" {
		query = query.Where("sales_statistics.data_type = ?", filter.DataType)
	}
	if filter.VolumeGroup != "" && filter.VolumeGroup != "all" {
		query = query.Where("sales_statistics.volume_group = ?", filter.VolumeGroup)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("sales_statistics.main_article LIKE ? OR brands.name LIKE ?", like, like)
	}

	var stats []model.SalesStatistic
	err := query.
		Order("sales_statistics.period DESC, brands.name, sales_statistics.main_article").
		Find(&stats).Error
	return stats, err
}

func (r *salesStatRepo) AggregatedLatest(ctx context.Context) ([]model.SalesStatistic, error) {
	var stats []model.SalesStatistic
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Order("period ASC, id ASC").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}

	type key struct {
		brandID  int64
		article  string
		dataType string
	}
	latest := make(map[key]model.SalesStatistic)
	var order []key
	for _, s := range stats {
		k := key{s.BrandID, s.MainArticle, s.DataType}
		if _, seen := latest[k]; !seen {
			order = append(order, k)
		}
		latest[k] = s
	}

	result := make([]model.SalesStatistic, 0, len(order))
	for _, k := range order {
		result = append(result, latest[k])
	}
	return result, nil
}
