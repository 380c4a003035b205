package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoparts_erp_v1_202608/internal/model"
)

// PartFilter 配件目录查询条件
type PartFilter struct {
	BrandName string // 精确匹配品牌展示名
	Keyword   string // 模糊匹配货号/附加货号/名称
	Page      int
	PageSize  int
}

// PartRepository 配件目录仓储
type PartRepository interface {
	// FindByArticle 按 (brand, 归一化货号) 查找；includeAdditional 时同时匹配附加货号
	FindByArticle(ctx context.Context, brandID int64, article string, includeAdditional bool) (*model.Part, error)
	GetByID(ctx context.Context, id int64) (*model.Part, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Part, error)

	// Create 依赖 (brand_id, main_article) 唯一约束：并发撞车时不报错，
	// 冲突后 part.ID 保持 0，调用方需要重查
	Create(ctx context.Context, part *model.Part) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Update(ctx context.Context, part *model.Part) error
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, filter PartFilter) ([]model.Part, int64, error)
	// BrandNamesByArticle 货号反查品牌（主货号或附加货号命中都算）
	BrandNamesByArticle(ctx context.Context, article string) ([]string, error)
}

type partRepo struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepo{db: db}
}

func (r *partRepo) FindByArticle(ctx context.Context, brandID int64, article string, includeAdditional bool) (*model.Part, error) {
	query := r.db.WithContext(ctx).Where("brand_id = ?", brandID)
	if includeAdditional {
		query = query.Where("main_article = ? OR additional_article = ?", article, article)
	} else {
		query = query.Where("main_article = ?", article)
	}

	var part model.Part
	err := query.First(&part).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepo) GetByID(ctx context.Context, id int64) (*model.Part, error) {
	var part model.Part
	err := r.db.WithContext(ctx).Preload("Brand").First(&part, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Part, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var parts []model.Part
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Where("id IN ?", ids).
		Find(&parts).Error
	return parts, err
}

func (r *partRepo) Create(ctx context.Context, part *model.Part) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "brand_id"}, {Name: "main_article"}},
			DoNothing: true,
		}).
		Create(part).Error
}

func (r *partRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Part{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *partRepo) Update(ctx context.Context, part *model.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

func (r *partRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Part{}, id).Error
}

func (r *partRepo) List(ctx context.Context, filter PartFilter) ([]model.Part, int64, error) {
	var parts []model.Part
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Part{}).
		Joins("JOIN brands ON brands.id = parts_catalog.brand_id").
		Preload("Brand")

	if filter.BrandName != "" {
		query = query.Where("brands.name = ?", filter.BrandName)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(
			"parts_catalog.main_article LIKE ? OR parts_catalog.additional_article LIKE ? OR parts_catalog.name_ru LIKE ?",
			like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Order("brands.name, parts_catalog.main_article").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&parts).Error

	return parts, total, err
}

func (r *partRepo) BrandNamesByArticle(ctx context.Context, article string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.Part{}).
		Distinct("brands.name").
		Joins("JOIN brands ON brands.id = parts_catalog.brand_id").
		Where("parts_catalog.main_article = ? OR parts_catalog.additional_article = ?", article, article).
		Order("brands.name").
		Pluck("brands.name", &names).Error
	return names, err
}
