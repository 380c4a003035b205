package service

import (
	"context"
	"log"
	"time"

	"autoparts_erp_v1_202608/internal/ingest"
	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
	"autoparts_erp_v1_202608/pkg/utils"
)

// ExpectedPriceService 预期售价管理
// 记录按 (品牌, 货号) 追加成时间序列，核价取最新生效的一条
type ExpectedPriceService struct {
	brandSvc      *BrandService
	expectedRepo  repository.ExpectedPriceRepository
	uploadLogRepo repository.UploadLogRepository
}

func NewExpectedPriceService(
	brandSvc *BrandService,
	expectedRepo repository.ExpectedPriceRepository,
	uploadLogRepo repository.UploadLogRepository,
) *ExpectedPriceService {
	return &ExpectedPriceService{
		brandSvc:      brandSvc,
		expectedRepo:  expectedRepo,
		uploadLogRepo: uploadLogRepo,
	}
}

// Import 导入预期售价表格：每行追加一条记录，品牌不存在会创建
func (s *ExpectedPriceService) Import(ctx context.Context, table ingest.Table, fileName string) (*UploadReport, error) {
	report := &UploadReport{}
	cache := utils.NewBrandCache(brandCacheTTL)

	for _, row := range ingest.MapRows(table) {
		report.Total++

		article := utils.NormalizeArticle(row.Str(ingest.FieldArticle))
		brandName := row.Str(ingest.FieldBrand)
		price, priceOK := row.Float(ingest.FieldPrice)
		if article == "" || utils.NormalizeBrandKey(brandName) == "" || !priceOK || price <= 0 {
			report.Skipped++
			continue
		}

		brandID, created, err := s.brandSvc.ResolveOrCreateCached(ctx, brandName, cache)
		if err != nil {
			log.Printf("[ExpectedPriceService] 售价行导入失败 (%s / %s): %v", brandName, article, err)
			report.Skipped++
			continue
		}
		if created {
			report.NewBrands = append(report.NewBrands, brandName)
		}

		effectiveDate, ok := row.Date(ingest.FieldDate)
		if !ok {
			effectiveDate = time.Now()
		}

		if err := s.expectedRepo.Create(ctx, &model.ExpectedSalePrice{
			BrandID:       brandID,
			MainArticle:   article,
			PriceBase:     price,
			EffectiveDate: effectiveDate,
			Notes:         row.Str(ingest.FieldNotes),
		}); err != nil {
			log.Printf("[ExpectedPriceService] 售价写入失败 (%s): %v", article, err)
			report.Skipped++
			continue
		}
		report.Added++
	}

	if err := s.uploadLogRepo.Create(ctx, &model.UploadLog{
		Kind:      model.UploadKindExpectedPrices,
		FileName:  fileName,
		Added:     report.Added,
		Skipped:   report.Skipped,
		Total:     report.Total,
		NewBrands: report.NewBrands,
	}); err != nil {
		log.Printf("[ExpectedPriceService] 导入日志写入失败: %v", err)
	}
	return report, nil
}

// Set 手工录入一条预期售价（同样是追加，不覆盖历史）
func (s *ExpectedPriceService) Set(ctx context.Context, brandName, article string, price float64, effectiveDate time.Time, notes string) (*model.ExpectedSalePrice, error) {
	norm := utils.NormalizeArticle(article)
	if norm == "" || price <= 0 {
		return nil, ErrInvalidInput
	}
	brandID, _, err := s.brandSvc.ResolveOrCreate(ctx, brandName)
	if err != nil {
		return nil, err
	}
	if effectiveDate.IsZero() {
		effectiveDate = time.Now()
	}

	record := &model.ExpectedSalePrice{
		BrandID:       brandID,
		MainArticle:   norm,
		PriceBase:     price,
		EffectiveDate: effectiveDate,
		Notes:         notes,
	}
	if err := s.expectedRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Current 配件当前生效的预期售价；没有返回 ErrNotFound
func (s *ExpectedPriceService) Current(ctx context.Context, brandName, article string) (*model.ExpectedSalePrice, error) {
	brandID, err := s.brandSvc.Resolve(ctx, brandName)
	if err != nil {
		return nil, err
	}
	price, err := s.expectedRepo.LatestFor(ctx, brandID, utils.NormalizeArticle(article))
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, ErrNotFound
	}
	return price, nil
}

// ListCurrent 每个 (品牌, 货号) 当前生效的售价
func (s *ExpectedPriceService) ListCurrent(ctx context.Context) ([]model.ExpectedSalePrice, error) {
	return s.expectedRepo.LatestAll(ctx)
}

func (s *ExpectedPriceService) History(ctx context.Context, brandName, article string) ([]model.ExpectedSalePrice, error) {
	brandID, err := s.brandSvc.Resolve(ctx, brandName)
	if err != nil {
		return nil, err
	}
	return s.expectedRepo.History(ctx, brandID, utils.NormalizeArticle(article))
}

func (s *ExpectedPriceService) Delete(ctx context.Context, id int64) error {
	return s.expectedRepo.Delete(ctx, id)
}
