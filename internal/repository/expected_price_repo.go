package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoparts_erp_v1_202608/internal/model"
)

// ExpectedPriceRepository 预期售价时间序列
type ExpectedPriceRepository interface {
	Create(ctx context.Context, price *model.ExpectedSalePrice) error
	Update(ctx context.Context, price *model.ExpectedSalePrice) error
	Delete(ctx context.Context, id int64) error

	// LatestFor 指定配件当前生效的售价；没有返回 (nil, nil)
	LatestFor(ctx context.Context, brandID int64, article string) (*model.ExpectedSalePrice, error)
	// LatestAll 每个 (brand, article) 的当前售价
	LatestAll(ctx context.Context) ([]model.ExpectedSalePrice, error)
	History(ctx context.Context, brandID int64, article string) ([]model.ExpectedSalePrice, error)
}

type expectedPriceRepo struct {
	db *gorm.DB
}

func NewExpectedPriceRepository(db *gorm.DB) ExpectedPriceRepository {
	return &expectedPriceRepo{db: db}
}

func (r *expectedPriceRepo) Create(ctx context.Context, price *model.ExpectedSalePrice) error {
	return r.db.WithContext(ctx).Create(price).Error
}

func (r *expectedPriceRepo) Update(ctx context.Context, price *model.ExpectedSalePrice) error {
	return r.db.WithContext(ctx).Save(price).Error
}

func (r *expectedPriceRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ExpectedSalePrice{}, id).Error
}

func (r *expectedPriceRepo) LatestFor(ctx context.Context, brandID int64, article string) (*model.ExpectedSalePrice, error) {
	var price model.ExpectedSalePrice
	err := r.db.WithContext(ctx).
		Where("brand_id = ? AND main_article = ?", brandID, article).
		Order("effective_date DESC, updated_at DESC, id DESC").
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *expectedPriceRepo) LatestAll(ctx context.Context) ([]model.ExpectedSalePrice, error) {
	var prices []model.ExpectedSalePrice
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Order("effective_date ASC, updated_at ASC, id ASC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}

	// 升序遍历取"每个键最后一条"，等价于按生效日期倒序的第一条
	type key struct {
		brandID int64
		article string
	}
	latest := make(map[key]model.ExpectedSalePrice)
	var order []key
	for _, p := range prices {
		k := key{p.BrandID, p.MainArticle}
		if _, seen := latest[k]; !seen {
			order = append(order, k)
		}
		latest[k] = p
	}

	result := make([]model.ExpectedSalePrice, 0, len(order))
	for _, k := range order {
		result = append(result, latest[k])
	}
	return result, nil
}

func (r *expectedPriceRepo) History(ctx context.Context, brandID int64, article string) ([]model.ExpectedSalePrice, error) {
	var prices []model.ExpectedSalePrice
	err := r.db.WithContext(ctx).
		Preload("Brand").
		Where("brand_id = ? AND main_article = ?", brandID, article).
		Order("effective_date DESC, updated_at DESC").
		Find(&prices).Error
	return prices, err
}
