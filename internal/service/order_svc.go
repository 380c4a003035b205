package service

import (
	"context"
	"time"

	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
	"autoparts_erp_v1_202608/pkg/utils"
)

// DefaultMarginCoefficient 到岸价默认毛利系数，成本除以它得到内部核算价
const DefaultMarginCoefficient = 0.835

// HighProfitThresholdPercent 超过这个利润率的行在结果里高亮
const HighProfitThresholdPercent = 15.0

// OrderItem 订单核价的一行输入
type OrderItem struct {
	Brand    string  `json:"brand"`
	Article  string  `json:"article"`
	Quantity float64 `json:"quantity"`
}

// OrderOptions 核价参数
type OrderOptions struct {
	// MarginCoefficient 毛利系数，0 取默认值；必须在 (0, 1] 内
	MarginCoefficient float64
	// MaxAgeDays 报价新鲜度窗口，0 表示不过滤（订单核价通常看全部历史最新价）
	MaxAgeDays int
}

// RegionQuote 某区域对一行订单的报价结果
type RegionQuote struct {
	RegionID   int64  `json:"region_id"`
	RegionName string `json:"region_name"`

	SupplierID   int64     `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	Price        float64   `json:"price"` // 供应商币种原价
	Currency     string    `json:"currency"`
	PriceBase    float64   `json:"price_base"`
	UploadDate   time.Time `json:"upload_date"`

	DeliveryCost float64 `json:"delivery_cost"`
	LandedCost   float64 `json:"landed_cost"`

	ProfitPct  *float64 `json:"profit_pct"` // 没有预期售价时为 nil
	HighProfit bool     `json:"high_profit"`
	Best       bool     `json:"best"` // 各区域里到岸价最低的一条
}

// PricedOrderItem 一行订单的核价结果
type PricedOrderItem struct {
	Brand    string  `json:"brand"`
	Article  string  `json:"article"`
	Quantity float64 `json:"quantity"`

	Found       bool     `json:"found"` // 目录里没有该配件时为 false，其余字段为空
	PartID      int64    `json:"part_id,omitempty"`
	MainArticle string   `json:"main_article,omitempty"`
	NameRu      string   `json:"name_ru,omitempty"`
	Weight      float64  `json:"weight,omitempty"`
	Expected    *float64 `json:"expected_price,omitempty"`

	Quotes []RegionQuote `json:"quotes,omitempty"`
}

// OrderService 订单核价：逐行找配件、各区域算到岸价、对照预期售价出利润率
// 核价只读目录，查不到的行返回空结果，绝不顺手建配件
type OrderService struct {
	brandSvc     *BrandService
	currencySvc  *CurrencyService
	partRepo     repository.PartRepository
	priceRepo    repository.PriceRepository
	supplierRepo repository.SupplierRepository
	deliveryRepo repository.DeliveryCostRepository
	expectedRepo repository.ExpectedPriceRepository
}

func NewOrderService(
	brandSvc *BrandService,
	currencySvc *CurrencyService,
	partRepo repository.PartRepository,
	priceRepo repository.PriceRepository,
	supplierRepo repository.SupplierRepository,
	deliveryRepo repository.DeliveryCostRepository,
	expectedRepo repository.ExpectedPriceRepository,
) *OrderService {
	return &OrderService{
		brandSvc:     brandSvc,
		currencySvc:  currencySvc,
		partRepo:     partRepo,
		priceRepo:    priceRepo,
		supplierRepo: supplierRepo,
		deliveryRepo: deliveryRepo,
		expectedRepo: expectedRepo,
	}
}

// PriceAcrossRegions 整单跨区域核价：每行在每个区域取最优报价并算到岸价
// 返回值第二项是本次遇到的、无法折算的币种
func (s *OrderService) PriceAcrossRegions(ctx context.Context, items []OrderItem, opts OrderOptions) ([]PricedOrderItem, []string, error) {
	margin, err := marginOf(opts)
	if err != nil {
		return nil, nil, err
	}

	regions, err := s.supplierRepo.ListRegions(ctx)
	if err != nil {
		return nil, nil, err
	}
	deliveryRules, err := s.deliveryRepo.MapByRegion(ctx)
	if err != nil {
		return nil, nil, err
	}
	convert, err := s.currencySvc.Converter(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	var missingCurrencies []string
	seenMissing := make(map[string]bool)
	results := make([]PricedOrderItem, 0, len(items))

	for _, item := range items {
		priced := PricedOrderItem{
			Brand:    item.Brand,
			Article:  item.Article,
			Quantity: item.Quantity,
		}

		part, obs, err := s.lookupPart(ctx, item)
		if err != nil {
			return nil, nil, err
		}
		if part == nil {
			results = append(results, priced)
			continue
		}
		s.fillPartInfo(&priced, part)

		expected, err := s.expectedRepo.LatestFor(ctx, part.BrandID, part.MainArticle)
		if err != nil {
			return nil, nil, err
		}
		if expected != nil {
			priced.Expected = &expected.PriceBase
		}

		bestIdx := -1
		for _, region := range regions {
			quote, missing := BestInRegion(obs, region.ID, 0, opts.MaxAgeDays, now, convert)
			for _, code := range missing {
				if !seenMissing[code] {
					seenMissing[code] = true
					missingCurrencies = append(missingCurrencies, code)
				}
			}
			if quote == nil {
				continue
			}

			delivery := s.currencySvc.DeliveryCost(part.Weight, deliveryRules[region.ID])
			landed := utils.Round2(s.currencySvc.LandedCost(quote.PriceBase, delivery, margin))

			rq := RegionQuote{
				RegionID:     region.ID,
				RegionName:   region.Name,
				SupplierID:   quote.SupplierID,
				SupplierName: quote.SupplierName,
				Price:        quote.Price,
				Currency:     quote.Currency,
				PriceBase:    utils.Round2(quote.PriceBase),
				UploadDate:   quote.UploadDate,
				DeliveryCost: utils.Round2(delivery),
				LandedCost:   landed,
			}
			if expected != nil && landed > 0 {
				pct := utils.Round2((expected.PriceBase/landed - 1) * 100)
				rq.ProfitPct = &pct
				rq.HighProfit = pct > HighProfitThresholdPercent
			}

			priced.Quotes = append(priced.Quotes, rq)
			if bestIdx < 0 || rq.LandedCost < priced.Quotes[bestIdx].LandedCost {
				bestIdx = len(priced.Quotes) - 1
			}
		}
		if bestIdx >= 0 {
			priced.Quotes[bestIdx].Best = true
		}

		results = append(results, priced)
	}
	return results, missingCurrencies, nil
}

// PriceForSupplier 整单按单一供应商核价：只看该供应商的最新报价
func (s *OrderService) PriceForSupplier(ctx context.Context, items []OrderItem, supplierID int64, opts OrderOptions) ([]PricedOrderItem, []string, error) {
	margin, err := marginOf(opts)
	if err != nil {
		return nil, nil, err
	}

	supplier, err := s.supplierRepo.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, nil, err
	}
	if supplier == nil {
		return nil, nil, ErrNotFound
	}
	deliveryRule, err := s.deliveryRepo.GetByRegion(ctx, supplier.RegionID)
	if err != nil {
		return nil, nil, err
	}
	convert, err := s.currencySvc.Converter(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	var missingCurrencies []string
	seenMissing := make(map[string]bool)
	results := make([]PricedOrderItem, 0, len(items))

	for _, item := range items {
		priced := PricedOrderItem{
			Brand:    item.Brand,
			Article:  item.Article,
			Quantity: item.Quantity,
		}

		part, obs, err := s.lookupPart(ctx, item)
		if err != nil {
			return nil, nil, err
		}
		if part == nil {
			results = append(results, priced)
			continue
		}
		s.fillPartInfo(&priced, part)

		// 只留该供应商的报价，再走统一的取最新/折算逻辑
		var own []repository.Observation
		for _, o := range obs {
			if o.SupplierID == supplierID {
				own = append(own, o)
			}
		}
		quote, missing := BestQuote(LatestPerSupplier(FilterFresh(own, opts.MaxAgeDays, now)), convert)
		for _, code := range missing {
			if !seenMissing[code] {
				seenMissing[code] = true
				missingCurrencies = append(missingCurrencies, code)
			}
		}
		if quote == nil {
			results = append(results, priced)
			continue
		}

		expected, err := s.expectedRepo.LatestFor(ctx, part.BrandID, part.MainArticle)
		if err != nil {
			return nil, nil, err
		}
		if expected != nil {
			priced.Expected = &expected.PriceBase
		}

		delivery := s.currencySvc.DeliveryCost(part.Weight, deliveryRule)
		landed := utils.Round2(s.currencySvc.LandedCost(quote.PriceBase, delivery, margin))

		rq := RegionQuote{
			RegionID:     supplier.RegionID,
			SupplierID:   quote.SupplierID,
			SupplierName: quote.SupplierName,
			Price:        quote.Price,
			Currency:     quote.Currency,
			PriceBase:    utils.Round2(quote.PriceBase),
			UploadDate:   quote.UploadDate,
			DeliveryCost: utils.Round2(delivery),
			LandedCost:   landed,
			Best:         true,
		}
		if supplier.Region != nil {
			rq.RegionName = supplier.Region.Name
		}
		if expected != nil && landed > 0 {
			pct := utils.Round2((expected.PriceBase/landed - 1) * 100)
			rq.ProfitPct = &pct
			rq.HighProfit = pct > HighProfitThresholdPercent
		}

		priced.Quotes = append(priced.Quotes, rq)
		results = append(results, priced)
	}
	return results, missingCurrencies, nil
}

// lookupPart 核价只查不建：品牌或配件不存在一律返回 (nil, nil, nil)
func (s *OrderService) lookupPart(ctx context.Context, item OrderItem) (*model.Part, []repository.Observation, error) {
	norm := utils.NormalizeArticle(item.Article)
	if norm == "" {
		return nil, nil, nil
	}
	brandID, err := s.brandSvc.Resolve(ctx, item.Brand)
	if err == ErrNotFound {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	part, err := s.partRepo.FindByArticle(ctx, brandID, norm, true)
	if err != nil {
		return nil, nil, err
	}
	if part == nil {
		return nil, nil, nil
	}

	obs, err := s.priceRepo.ActiveForParts(ctx, []int64{part.ID})
	if err != nil {
		return nil, nil, err
	}
	return part, obs, nil
}

func (s *OrderService) fillPartInfo(priced *PricedOrderItem, part *model.Part) {
	priced.Found = true
	priced.PartID = part.ID
	priced.MainArticle = part.MainArticle
	priced.NameRu = part.NameRu
	priced.Weight = part.Weight
}

func marginOf(opts OrderOptions) (float64, error) {
	margin := opts.MarginCoefficient
	if margin == 0 {
		margin = DefaultMarginCoefficient
	}
	if margin < 0 || margin > 1 {
		return 0, ErrInvalidInput
	}
	return margin, nil
}
