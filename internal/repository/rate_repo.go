package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoparts_erp_v1_202608/internal/model"
)

// RateRepository 汇率存储：只插入新行，"当前汇率"由读取侧取最新
type RateRepository interface {
	Create(ctx context.Context, rate *model.CurrencyRate) error
	// Latest 指定币种最近录入的汇率；没有记录返回 (nil, nil)
	Latest(ctx context.Context, code string) (*model.CurrencyRate, error)
	// LatestAll 每个币种的最新汇率
	LatestAll(ctx context.Context) (map[string]float64, error)
	List(ctx context.Context) ([]model.CurrencyRate, error)
	// MissingCurrencies 供应商在用、但一条汇率都没有的币种（基准货币除外）
	MissingCurrencies(ctx context.Context, baseCurrency string) ([]string, error)
}

type rateRepo struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepo{db: db}
}

func (r *rateRepo) Create(ctx context.Context, rate *model.CurrencyRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *rateRepo) Latest(ctx context.Context, code string) (*model.CurrencyRate, error) {
	var rate model.CurrencyRate
	err := r.db.WithContext(ctx).
		Where("currency_code = ?", code).
		Order("created_at DESC, id DESC").
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepo) LatestAll(ctx context.Context) (map[string]float64, error) {
	var rates []model.CurrencyRate
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}

	// 升序遍历，后面的记录自然覆盖前面的
	result := make(map[string]float64, len(rates))
	for _, rate := range rates {
		result[rate.CurrencyCode] = rate.RateToBase
	}
	return result, nil
}

func (r *rateRepo) List(ctx context.Context) ([]model.CurrencyRate, error) {
	var rates []model.CurrencyRate
	err := r.db.WithContext(ctx).
		Order("currency_code, created_at DESC").
		Find(&rates).Error
	return rates, err
}

func (r *rateRepo) MissingCurrencies(ctx context.Context, baseCurrency string) ([]string, error) {
	var currencies []string
	err := r.db.WithContext(ctx).
		Model(&model.Supplier{}).
		Distinct().
		Where("currency != ?", baseCurrency).
		Where("currency NOT IN (?)",
			r.db.Model(&model.CurrencyRate{}).Select("currency_code")).
		Pluck("currency", &currencies).Error
	return currencies, err
}
