package service

import (
	"context"
	"log"
	"strings"
	"time"

	"autoparts_erp_v1_202608/internal/ingest"
	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
	"autoparts_erp_v1_202608/pkg/utils"
)

// NormalizeVolumeGroup 把文件里的销量分组写法（俄语/英语）归到固定枚举
// 识别不出来返回空串
func NormalizeVolumeGroup(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case lower == "":
		return ""
	case strings.Contains(lower, "топ") || strings.Contains(lower, "top"):
		return model.VolumeGroupTop
	case strings.Contains(lower, "хорош") || strings.Contains(lower, "good"):
		return model.VolumeGroupGood
	case strings.Contains(lower, "низк") || strings.Contains(lower, "low"):
		return model.VolumeGroupLow
	case strings.Contains(lower, "отсут") || strings.Contains(lower, "нет") ||
		strings.Contains(lower, "no"):
		return model.VolumeGroupNoDemand
	}
	return ""
}

var statDataTypes = map[string]bool{
	model.StatTypeOwnSales:        true,
	model.StatTypeCompetitorSales: true,
	model.StatTypeAnalyticsCenter: true,
}

// SalesStatService 销售统计：导入按业务键 upsert，查询支持按来源聚合
type SalesStatService struct {
	brandSvc      *BrandService
	statRepo      repository.SalesStatRepository
	uploadLogRepo repository.UploadLogRepository
}

func NewSalesStatService(
	brandSvc *BrandService,
	statRepo repository.SalesStatRepository,
	uploadLogRepo repository.UploadLogRepository,
) *SalesStatService {
	return &SalesStatService{
		brandSvc:      brandSvc,
		statRepo:      statRepo,
		uploadLogRepo: uploadLogRepo,
	}
}

// Import 导入统计表格；dataType 必须是已知来源之一
// (品牌, 货号, 来源, 周期) 已存在则更新数值，否则新建
func (s *SalesStatService) Import(ctx context.Context, table ingest.Table, fileName, dataType, sourceName string) (*UploadReport, error) {
	if !statDataTypes[dataType] {
		return nil, ErrInvalidInput
	}

	report := &UploadReport{}
	cache := utils.NewBrandCache(brandCacheTTL)

	for _, row := range ingest.MapRows(table) {
		report.Total++

		article := utils.NormalizeArticle(row.Str(ingest.FieldArticle))
		brandName := row.Str(ingest.FieldBrand)
		if article == "" || utils.NormalizeBrandKey(brandName) == "" {
			report.Skipped++
			continue
		}

		brandID, created, err := s.brandSvc.ResolveOrCreateCached(ctx, brandName, cache)
		if err != nil {
			log.Printf("[SalesStatService] 统计行导入失败 (%s / %s): %v", brandName, article, err)
			report.Skipped++
			continue
		}
		if created {
			report.NewBrands = append(report.NewBrands, brandName)
		}

		period, ok := row.Date(ingest.FieldPeriod)
		if !ok {
			period, ok = row.Date(ingest.FieldDate)
		}
		if !ok {
			period = monthStart(time.Now())
		}

		quantity, _ := row.Float(ingest.FieldQuantity)
		requests, _ := row.Int(ingest.FieldRequests)
		volumeGroup := NormalizeVolumeGroup(row.Str(ingest.FieldVolumeGroup))

		existing, err := s.statRepo.FindByKey(ctx, brandID, article, dataType, period)
		if err != nil {
			report.Skipped++
			continue
		}
		if existing != nil {
			existing.Quantity = quantity
			if volumeGroup != "" {
				existing.VolumeGroup = volumeGroup
			}
			if requests > 0 {
				existing.RequestsPerMonth = requests
			}
			if sourceName != "" {
				existing.SourceName = sourceName
			}
			if err := s.statRepo.Update(ctx, existing); err != nil {
				report.Skipped++
				continue
			}
			report.Updated++
			continue
		}

		if err := s.statRepo.Create(ctx, &model.SalesStatistic{
			BrandID:          brandID,
			MainArticle:      article,
			DataType:         dataType,
			Period:           period,
			Quantity:         quantity,
			VolumeGroup:      volumeGroup,
			RequestsPerMonth: requests,
			SourceName:       sourceName,
			Notes:            row.Str(ingest.FieldNotes),
		}); err != nil {
			log.Printf("[SalesStatService] 统计写入失败 (%s): %v", article, err)
			report.Skipped++
			continue
		}
		report.Added++
	}

	if err := s.uploadLogRepo.Create(ctx, &model.UploadLog{
		Kind:      model.UploadKindSalesStats,
		FileName:  fileName,
		Added:     report.Added,
		Updated:   report.Updated,
		Skipped:   report.Skipped,
		Total:     report.Total,
		NewBrands: report.NewBrands,
	}); err != nil {
		log.Printf("[SalesStatService] 导入日志写入失败: %v", err)
	}
	return report, nil
}

func (s *SalesStatService) List(ctx context.Context, filter repository.SalesStatFilter) ([]model.SalesStatistic, error) {
	return s.statRepo.List(ctx, filter)
}

// Aggregated 每个 (品牌, 货号, 来源) 最近周期的一条，销量总览页用
func (s *SalesStatService) Aggregated(ctx context.Context) ([]model.SalesStatistic, error) {
	return s.statRepo.AggregatedLatest(ctx)
}

// StatFields 人工修正统计记录时允许改的字段
type StatFields struct {
	Quantity         float64
	VolumeGroup      string
	RequestsPerMonth int
	Notes            string
}

// Update 人工修正一条统计，分组写法先归一化再落库
func (s *SalesStatService) Update(ctx context.Context, id int64, fields StatFields) (*model.SalesStatistic, error) {
	stat, err := s.statRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, ErrNotFound
	}
	if fields.Quantity < 0 {
		return nil, ErrInvalidInput
	}

	stat.Quantity = fields.Quantity
	stat.VolumeGroup = NormalizeVolumeGroup(fields.VolumeGroup)
	stat.RequestsPerMonth = fields.RequestsPerMonth
	stat.Notes = fields.Notes
	if err := s.statRepo.Update(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

func (s *SalesStatService) Delete(ctx context.Context, id int64) error {
	return s.statRepo.Delete(ctx, id)
}

// monthStart 缺周期时按当月一号记账
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
