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

// 批次内品牌缓存有效期，覆盖一次导入绰绰有余
const brandCacheTTL = 10 * time.Minute

// UploadReport 一次导入的结果汇总
type UploadReport struct {
	Added     int      `json:"added"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Total     int      `json:"total"`
	NewBrands []string `json:"new_brands,omitempty"`
}

// PartFields 配件可补充的属性字段
type PartFields struct {
	AdditionalArticle string
	NameRu            string
	NameEn            string
	Weight            float64
	VolumeCoefficient float64
	Notes             string
}

// CatalogService 配件目录：货号归一、按 (品牌, 货号) 找或建配件、属性只补空
type CatalogService struct {
	brandSvc      *BrandService
	partRepo      repository.PartRepository
	priceRepo     repository.PriceRepository
	uploadLogRepo repository.UploadLogRepository
}

func NewCatalogService(
	brandSvc *BrandService,
	partRepo repository.PartRepository,
	priceRepo repository.PriceRepository,
	uploadLogRepo repository.UploadLogRepository,
) *CatalogService {
	return &CatalogService{
		brandSvc:      brandSvc,
		partRepo:      partRepo,
		priceRepo:     priceRepo,
		uploadLogRepo: uploadLogRepo,
	}
}

// ResolvePart 找或建配件；matchAdditional 决定是否允许命中附加货号
// 品牌不存在时会一并创建。返回 (part, created, err)
func (s *CatalogService) ResolvePart(ctx context.Context, brandName, article string, matchAdditional bool) (*model.Part, bool, error) {
	return s.resolvePart(ctx, brandName, article, matchAdditional, nil)
}

func (s *CatalogService) resolvePart(ctx context.Context, brandName, article string, matchAdditional bool, cache *utils.BrandCache) (*model.Part, bool, error) {
	norm := utils.NormalizeArticle(article)
	if norm == "" || utils.NormalizeBrandKey(brandName) == "" {
		return nil, false, ErrInvalidInput
	}

	brandID, _, err := s.brandSvc.ResolveOrCreateCached(ctx, brandName, cache)
	if err != nil {
		return nil, false, err
	}

	part, err := s.partRepo.FindByArticle(ctx, brandID, norm, matchAdditional)
	if err != nil {
		return nil, false, err
	}
	if part != nil {
		return part, false, nil
	}

	part = &model.Part{BrandID: brandID, MainArticle: norm}
	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, false, err
	}
	if part.ID == 0 {
		// 唯一约束吞掉了插入，说明并发方先建了同一条，重查
		part, err = s.partRepo.FindByArticle(ctx, brandID, norm, false)
		if err != nil {
			return nil, false, err
		}
		return part, false, nil
	}
	return part, true, nil
}

// FindPart 只查不建；查不到返回 ErrNotFound
func (s *CatalogService) FindPart(ctx context.Context, brandName, article string, matchAdditional bool) (*model.Part, error) {
	norm := utils.NormalizeArticle(article)
	if norm == "" {
		return nil, ErrInvalidInput
	}
	brandID, err := s.brandSvc.Resolve(ctx, brandName)
	if err != nil {
		return nil, err
	}
	part, err := s.partRepo.FindByArticle(ctx, brandID, norm, matchAdditional)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, ErrNotFound
	}
	return part, nil
}

// Enrich 只补空：已有值一律保留，传入为空/0 的字段忽略
// 返回是否真的写了更新
func (s *CatalogService) Enrich(ctx context.Context, partID int64, fields PartFields) (bool, error) {
	part, err := s.partRepo.GetByID(ctx, partID)
	if err != nil {
		return false, err
	}
	if part == nil {
		return false, ErrNotFound
	}

	updates := make(map[string]interface{})
	if part.AdditionalArticle == "" && fields.AdditionalArticle != "" {
		updates["additional_article"] = utils.NormalizeArticle(fields.AdditionalArticle)
	}
	if part.NameRu == "" && fields.NameRu != "" {
		updates["name_ru"] = strings.TrimSpace(fields.NameRu)
	}
	if part.NameEn == "" && fields.NameEn != "" {
		updates["name_en"] = strings.TrimSpace(fields.NameEn)
	}
	if part.Weight == 0 && fields.Weight > 0 {
		updates["weight"] = fields.Weight
	}
	if part.VolumeCoefficient == 0 && fields.VolumeCoefficient > 0 {
		updates["volume_coefficient"] = fields.VolumeCoefficient
	}
	if part.Notes == "" && fields.Notes != "" {
		updates["notes"] = strings.TrimSpace(fields.Notes)
	}

	if len(updates) == 0 {
		return false, nil
	}
	return true, s.partRepo.UpdateFields(ctx, partID, updates)
}

// ImportCatalog 导入配件目录表格：已有配件只补空，新配件整行落库
func (s *CatalogService) ImportCatalog(ctx context.Context, table ingest.Table, fileName string) (*UploadReport, error) {
	report := &UploadReport{}
	cache := utils.NewBrandCache(brandCacheTTL)

	for _, row := range ingest.MapRows(table) {
		report.Total++

		article := row.Str(ingest.FieldArticle)
		brandName := row.Str(ingest.FieldBrand)
		if utils.NormalizeArticle(article) == "" || utils.NormalizeBrandKey(brandName) == "" {
			report.Skipped++
			continue
		}

		// 先探一下品牌是否已存在，新建的要记进报告
		_, resolveErr := s.brandSvc.Resolve(ctx, brandName)
		brandIsNew := resolveErr == ErrNotFound

		part, created, err := s.resolvePart(ctx, brandName, article, false, cache)
		if err != nil {
			log.Printf("[CatalogService] 目录行导入失败 (%s / %s): %v", brandName, article, err)
			report.Skipped++
			continue
		}
		if brandIsNew {
			report.NewBrands = append(report.NewBrands, strings.TrimSpace(brandName))
		}

		weight, _ := row.Float(ingest.FieldWeight)
		volumeCoef, _ := row.Float(ingest.FieldVolumeCoef)
		updated, err := s.Enrich(ctx, part.ID, PartFields{
			AdditionalArticle: row.Str(ingest.FieldAdditionalArticle),
			NameRu:            row.Str(ingest.FieldName),
			NameEn:            row.Str(ingest.FieldNameEn),
			Weight:            weight,
			VolumeCoefficient: volumeCoef,
			Notes:             row.Str(ingest.FieldNotes),
		})
		if err != nil {
			log.Printf("[CatalogService] 配件补充失败 (ID=%d): %v", part.ID, err)
			report.Skipped++
			continue
		}

		switch {
		case created:
			report.Added++
		case updated:
			report.Updated++
		default:
			report.Skipped++
		}
	}

	if err := s.uploadLogRepo.Create(ctx, &model.UploadLog{
		Kind:      model.UploadKindCatalog,
		FileName:  fileName,
		Added:     report.Added,
		Updated:   report.Updated,
		Skipped:   report.Skipped,
		Total:     report.Total,
		NewBrands: report.NewBrands,
	}); err != nil {
		log.Printf("[CatalogService] 导入日志写入失败: %v", err)
	}

	log.Printf("[CatalogService] 目录导入完成: 新增 %d, 更新 %d, 跳过 %d / 共 %d",
		report.Added, report.Updated, report.Skipped, report.Total)
	return report, nil
}

// BrandMatch 货号反查品牌的单行结果
type BrandMatch struct {
	Article     string   `json:"article"`
	BrandInput  string   `json:"brand_input"`
	Matched     bool     `json:"matched"`
	OtherBrands []string `json:"other_brands"`
}

// MatchBrands 按货号反查目录里有哪些品牌在用这个货号
// 输入行里带品牌时，顺便校验该品牌是否在命中列表里
func (s *CatalogService) MatchBrands(ctx context.Context, table ingest.Table) ([]BrandMatch, error) {
	var results []BrandMatch
	for _, row := range ingest.MapRows(table) {
		article := row.Str(ingest.FieldArticle)
		norm := utils.NormalizeArticle(article)
		if norm == "" {
			continue
		}

		names, err := s.partRepo.BrandNamesByArticle(ctx, norm)
		if err != nil {
			return nil, err
		}

		match := BrandMatch{
			Article:     article,
			BrandInput:  row.Str(ingest.FieldBrand),
			OtherBrands: names,
		}
		if match.BrandInput != "" {
			inputKey := utils.NormalizeBrandKey(match.BrandInput)
			for _, name := range names {
				if utils.NormalizeBrandKey(name) == inputKey {
					match.Matched = true
					break
				}
			}
		}
		results = append(results, match)
	}
	return results, nil
}

func (s *CatalogService) GetPart(ctx context.Context, id int64) (*model.Part, error) {
	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, ErrNotFound
	}
	return part, nil
}

func (s *CatalogService) ListParts(ctx context.Context, filter repository.PartFilter) ([]model.Part, int64, error) {
	return s.partRepo.List(ctx, filter)
}

// UpdatePart 人工编辑走全量覆盖，不受"只补空"限制
func (s *CatalogService) UpdatePart(ctx context.Context, part *model.Part) error {
	existing, err := s.partRepo.GetByID(ctx, part.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	part.MainArticle = utils.NormalizeArticle(part.MainArticle)
	if part.MainArticle == "" {
		return ErrInvalidInput
	}
	part.AdditionalArticle = utils.NormalizeArticle(part.AdditionalArticle)
	return s.partRepo.Update(ctx, part)
}

// DeletePart 有报价引用的配件不允许删，历史数据要留
func (s *CatalogService) DeletePart(ctx context.Context, id int64) error {
	count, err := s.priceRepo.CountForPart(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return s.partRepo.Delete(ctx, id)
}
