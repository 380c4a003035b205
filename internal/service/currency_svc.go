package service

import (
	"context"
	"fmt"
	"log"

	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
)

// DefaultBaseCurrency 未配置时的基准货币
const DefaultBaseCurrency = "RUB"

// ConvertFunc 把供应商币种金额折算到基准货币
// 没有该币种汇率时返回 ok=false，调用方决定跳过还是报错
type ConvertFunc func(amount float64, currency string) (float64, bool)

// CurrencyService 汇率与运费：折算、到岸价、汇率完整性检查
type CurrencyService struct {
	rateRepo     repository.RateRepository
	deliveryRepo repository.DeliveryCostRepository
	baseCurrency string
}

func NewCurrencyService(rateRepo repository.RateRepository, deliveryRepo repository.DeliveryCostRepository, baseCurrency string) *CurrencyService {
	if baseCurrency == "" {
		baseCurrency = DefaultBaseCurrency
	}
	return &CurrencyService{
		rateRepo:     rateRepo,
		deliveryRepo: deliveryRepo,
		baseCurrency: baseCurrency,
	}
}

func (s *CurrencyService) BaseCurrency() string {
	return s.baseCurrency
}

// CurrentRate 币种当前汇率（最近录入的一条）；基准货币恒为 1
func (s *CurrencyService) CurrentRate(ctx context.Context, code string) (float64, error) {
	if code == s.baseCurrency {
		return 1, nil
	}
	rate, err := s.rateRepo.Latest(ctx, code)
	if err != nil {
		return 0, err
	}
	if rate == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingRate, code)
	}
	return rate.RateToBase, nil
}

// Converter 一次取全量汇率表，返回纯内存的折算闭包，比价循环里用
func (s *CurrencyService) Converter(ctx context.Context) (ConvertFunc, error) {
	rates, err := s.rateRepo.LatestAll(ctx)
	if err != nil {
		return nil, err
	}
	base := s.baseCurrency
	return func(amount float64, currency string) (float64, bool) {
		if currency == base {
			return amount, true
		}
		rate, ok := rates[currency]
		if !ok {
			return 0, false
		}
		return amount * rate, true
	}, nil
}

// AddRate 追加一条汇率记录，旧记录保留为历史
func (s *CurrencyService) AddRate(ctx context.Context, code string, rateToBase float64, description string) (*model.CurrencyRate, error) {
	if code == "" || code == s.baseCurrency || rateToBase <= 0 {
		return nil, ErrInvalidInput
	}
	rate := &model.CurrencyRate{
		CurrencyCode: code,
		RateToBase:   rateToBase,
		Description:  description,
	}
	if err := s.rateRepo.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *CurrencyService) ListRates(ctx context.Context) ([]model.CurrencyRate, error) {
	return s.rateRepo.List(ctx)
}

// CheckRates 找出供应商在用、却一条汇率都没有的币种
func (s *CurrencyService) CheckRates(ctx context.Context) ([]string, error) {
	missing, err := s.rateRepo.MissingCurrencies(ctx, s.baseCurrency)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		log.Printf("[CurrencyService] 缺少汇率的币种: %v", missing)
	}
	return missing, nil
}

// DeliveryCost 按重量算区域运费：max(最低运费, 重量 × 每公斤单价)
// 区域没有规则时按 0 处理
func (s *CurrencyService) DeliveryCost(weightKg float64, rule *model.DeliveryCost) float64 {
	if rule == nil || weightKg <= 0 {
		return 0
	}
	cost := weightKg * rule.CostPerKg
	if cost < rule.MinCost {
		cost = rule.MinCost
	}
	return cost
}

// LandedCost 到岸成本：(基准货币价格 + 运费) / 毛利系数
// 系数 < 1，除法等价于在成本上加一层固定毛利
func (s *CurrencyService) LandedCost(priceBase, deliveryCost, marginCoefficient float64) float64 {
	return (priceBase + deliveryCost) / marginCoefficient
}

func (s *CurrencyService) UpsertDeliveryCost(ctx context.Context, cost *model.DeliveryCost) error {
	if cost.RegionID == 0 || cost.CostPerKg < 0 || cost.MinCost < 0 {
		return ErrInvalidInput
	}
	return s.deliveryRepo.Upsert(ctx, cost)
}

func (s *CurrencyService) ListDeliveryCosts(ctx context.Context) ([]model.DeliveryCost, error) {
	return s.deliveryRepo.List(ctx)
}
