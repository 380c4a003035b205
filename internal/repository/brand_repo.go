package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoparts_erp_v1_202608/internal/model"
)

// BrandRepository 品牌目录仓储
// Find* 系列未命中时返回 (nil, nil)，调用方据此区分"没有"和"查询失败"
type BrandRepository interface {
	FindByNormalizedName(ctx context.Context, key string) (*model.Brand, error)
	FindSynonym(ctx context.Context, key string) (*model.BrandSynonym, error)
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	GetByName(ctx context.Context, name string) (*model.Brand, error)

	Create(ctx context.Context, brand *model.Brand) error
	// CreateSynonym 幂等：同义词已存在时按成功处理（底层 ON CONFLICT DO NOTHING）
	CreateSynonym(ctx context.Context, brandID int64, key string) error
	DeleteSynonym(ctx context.Context, id int64) error

	List(ctx context.Context) ([]model.Brand, error)
	ListSynonyms(ctx context.Context) ([]model.BrandSynonym, error)
}

type brandRepo struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) FindByNormalizedName(ctx context.Context, key string) (*model.Brand, error) {
	var brand model.Brand
	err := r.db.WithContext(ctx).
		Where("UPPER(TRIM(name)) = ?", key).
		First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) FindSynonym(ctx context.Context, key string) (*model.BrandSynonym, error) {
	var synonym model.BrandSynonym
	err := r.db.WithContext(ctx).
		Where("UPPER(TRIM(synonym_name)) = ?", key).
		First(&synonym).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &synonym, nil
}

func (r *brandRepo) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	var brand model.Brand
	err := r.db.WithContext(ctx).First(&brand, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) GetByName(ctx context.Context, name string) (*model.Brand, error) {
	var brand model.Brand
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) Create(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *brandRepo) CreateSynonym(ctx context.Context, brandID int64, key string) error {
	synonym := model.BrandSynonym{
		BrandID:     brandID,
		SynonymName: key,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&synonym).Error
}

func (r *brandRepo) DeleteSynonym(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.BrandSynonym{}, id).Error
}

func (r *brandRepo) List(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	err := r.db.WithContext(ctx).Order("name").Find(&brands).Error
	return brands, err
}

func (r *brandRepo) ListSynonyms(ctx context.Context) ([]model.BrandSynonym, error) {
	var synonyms []model.BrandSynonym
	err := r.db.WithContext(ctx).Order("brand_id, synonym_name").Find(&synonyms).Error
	return synonyms, err
}
