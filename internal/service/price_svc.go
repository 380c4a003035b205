package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"

	"autoparts_erp_v1_202608/internal/ingest"
	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
	"autoparts_erp_v1_202608/pkg/utils"
)

// DefaultMaxAgeDays 报价新鲜度窗口：超过这个天数的批次不参与区域比价
const DefaultMaxAgeDays = 1300

// Quote 折算到基准货币后的报价
type Quote struct {
	repository.Observation
	PriceBase float64 `json:"price_base"`
}

// ==================== 纯内存比价 ====================

// LatestPerSupplier 每个供应商只留最新批次的报价
// 入参按 (批次日期, 插入顺序) 升序，后面的行自然覆盖前面的；
// 结果保持供应商首次出现的顺序
func LatestPerSupplier(obs []repository.Observation) []repository.Observation {
	index := make(map[int64]int)
	var result []repository.Observation
	for _, o := range obs {
		if i, ok := index[o.SupplierID]; ok {
			result[i] = o
		} else {
			index[o.SupplierID] = len(result)
			result = append(result, o)
		}
	}
	return result
}

// FilterFresh 去掉批次日期早于 now - maxAgeDays 的报价；maxAgeDays <= 0 表示不限
func FilterFresh(obs []repository.Observation, maxAgeDays int, now time.Time) []repository.Observation {
	if maxAgeDays <= 0 {
		return obs
	}
	cutoff := now.AddDate(0, 0, -maxAgeDays)
	result := make([]repository.Observation, 0, len(obs))
	for _, o := range obs {
		if !o.UploadDate.Before(cutoff) {
			result = append(result, o)
		}
	}
	return result
}

// BestQuote 折算后价格最低的一条；并列时取批次更新的，再并列按供应商名排序
// 折算不了的币种跳过并返回其币种代码
func BestQuote(obs []repository.Observation, convert ConvertFunc) (*Quote, []string) {
	var best *Quote
	var missing []string
	seen := make(map[string]bool)

	for _, o := range obs {
		base, ok := convert(o.Price, o.Currency)
		if !ok {
			if !seen[o.Currency] {
				seen[o.Currency] = true
				missing = append(missing, o.Currency)
			}
			continue
		}
		candidate := &Quote{Observation: o, PriceBase: base}
		if best == nil || quoteLess(candidate, best) {
			best = candidate
		}
	}
	return best, missing
}

func quoteLess(a, b *Quote) bool {
	if a.PriceBase != b.PriceBase {
		return a.PriceBase < b.PriceBase
	}
	if !a.UploadDate.Equal(b.UploadDate) {
		return a.UploadDate.After(b.UploadDate)
	}
	return a.SupplierName < b.SupplierName
}

// BestInRegion 区域内最优报价：只看该区域、剔除指定供应商、过滤过期批次
func BestInRegion(obs []repository.Observation, regionID, excludeSupplierID int64, maxAgeDays int, now time.Time, convert ConvertFunc) (*Quote, []string) {
	filtered := make([]repository.Observation, 0, len(obs))
	for _, o := range obs {
		if o.RegionID != regionID {
			continue
		}
		if excludeSupplierID != 0 && o.SupplierID == excludeSupplierID {
			continue
		}
		filtered = append(filtered, o)
	}
	return BestQuote(LatestPerSupplier(FilterFresh(filtered, maxAgeDays, now)), convert)
}

// ==================== 价格表服务 ====================

// PriceService 价格表导入与各类比价分析
type PriceService struct {
	catalogSvc    *CatalogService
	brandSvc      *BrandService
	currencySvc   *CurrencyService
	priceRepo     repository.PriceRepository
	partRepo      repository.PartRepository
	supplierRepo  repository.SupplierRepository
	uploadLogRepo repository.UploadLogRepository
	storageSvc    *StorageService // 原始文件归档，可为 nil
	maxAgeDays    int
}

func NewPriceService(
	catalogSvc *CatalogService,
	brandSvc *BrandService,
	currencySvc *CurrencyService,
	priceRepo repository.PriceRepository,
	partRepo repository.PartRepository,
	supplierRepo repository.SupplierRepository,
	uploadLogRepo repository.UploadLogRepository,
	storageSvc *StorageService,
	maxAgeDays int,
) *PriceService {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxAgeDays
	}
	return &PriceService{
		catalogSvc:    catalogSvc,
		brandSvc:      brandSvc,
		currencySvc:   currencySvc,
		priceRepo:     priceRepo,
		partRepo:      partRepo,
		supplierRepo:  supplierRepo,
		uploadLogRepo: uploadLogRepo,
		storageSvc:    storageSvc,
		maxAgeDays:    maxAgeDays,
	}
}

// PriceListImport 价格表导入入参
type PriceListImport struct {
	SupplierID  int64
	UploadDate  time.Time // 零值取当前时间
	FileName    string
	Description string
	Table       ingest.Table
	FileData    []byte // 原始文件内容，非空则归档
}

// ImportPriceList 导入一张供应商价格表：建批次、逐行落观测
// 单行失败只跳过该行；整批不开事务，导入一半也是可用数据
func (s *PriceService) ImportPriceList(ctx context.Context, in PriceListImport) (*model.PriceList, *UploadReport, error) {
	supplier, err := s.supplierRepo.GetSupplier(ctx, in.SupplierID)
	if err != nil {
		return nil, nil, err
	}
	if supplier == nil {
		return nil, nil, ErrNotFound
	}

	uploadDate := in.UploadDate
	if uploadDate.IsZero() {
		uploadDate = time.Now()
	}

	columnMap, _ := json.Marshal(ingest.MapColumns(in.Table.Headers))

	list := &model.PriceList{
		SupplierID:  in.SupplierID,
		UploadDate:  uploadDate,
		FileName:    in.FileName,
		Description: in.Description,
		IsActive:    true,
		ColumnMap:   datatypes.JSON(columnMap),
	}
	if s.storageSvc != nil && len(in.FileData) > 0 {
		url, err := s.storageSvc.Upload(ctx, in.FileName, in.FileData)
		if err != nil {
			// 归档失败不拦导入，原始文件丢了还有观测数据
			log.Printf("[PriceService] 价格表归档失败 (%s): %v", in.FileName, err)
		} else {
			list.FileURL = url
		}
	}
	if err := s.priceRepo.CreateList(ctx, list); err != nil {
		return nil, nil, err
	}

	report := &UploadReport{}
	cache := utils.NewBrandCache(brandCacheTTL)

	for _, row := range ingest.MapRows(in.Table) {
		report.Total++

		article := row.Str(ingest.FieldArticle)
		brandName := row.Str(ingest.FieldBrand)
		price, priceOK := row.Float(ingest.FieldPrice)
		if utils.NormalizeArticle(article) == "" || utils.NormalizeBrandKey(brandName) == "" ||
			!priceOK || price <= 0 {
			report.Skipped++
			continue
		}

		_, resolveErr := s.brandSvc.Resolve(ctx, brandName)
		brandIsNew := resolveErr == ErrNotFound

		// 价格表里附加货号也算命中，目录导入才限定主货号
		part, created, err := s.catalogSvc.resolvePart(ctx, brandName, article, true, cache)
		if err != nil {
			log.Printf("[PriceService] 价格行导入失败 (%s / %s): %v", brandName, article, err)
			report.Skipped++
			continue
		}
		if brandIsNew {
			report.NewBrands = append(report.NewBrands, strings.TrimSpace(brandName))
		}

		weight, _ := row.Float(ingest.FieldWeight)
		enriched, err := s.catalogSvc.Enrich(ctx, part.ID, PartFields{
			NameRu: row.Str(ingest.FieldName),
			NameEn: row.Str(ingest.FieldNameEn),
			Weight: weight,
		})
		if err != nil {
			log.Printf("[PriceService] 配件补充失败 (ID=%d): %v", part.ID, err)
		}

		if err := s.priceRepo.InsertObservation(ctx, &model.Price{
			PriceListID: list.ID,
			PartID:      part.ID,
			Price:       price,
		}); err != nil {
			log.Printf("[PriceService] 报价写入失败 (part=%d): %v", part.ID, err)
			report.Skipped++
			continue
		}

		if created || enriched {
			report.Updated++
		}
		report.Added++
	}

	if err := s.uploadLogRepo.Create(ctx, &model.UploadLog{
		Kind:        model.UploadKindPriceList,
		PriceListID: list.ID,
		FileName:    in.FileName,
		Added:       report.Added,
		Updated:     report.Updated,
		Skipped:     report.Skipped,
		Total:       report.Total,
		NewBrands:   report.NewBrands,
	}); err != nil {
		log.Printf("[PriceService] 导入日志写入失败: %v", err)
	}

	log.Printf("[PriceService] 价格表导入完成: %s (批次 %d), 报价 %d, 跳过 %d / 共 %d",
		supplier.Name, list.ID, report.Added, report.Skipped, report.Total)
	return list, report, nil
}

func (s *PriceService) ListPriceLists(ctx context.Context) ([]model.PriceList, error) {
	return s.priceRepo.ListLists(ctx)
}

func (s *PriceService) GetPriceList(ctx context.Context, id int64) (*model.PriceList, error) {
	list, err := s.priceRepo.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrNotFound
	}
	return list, nil
}

// SetListActive 整批启停，不动底下的观测数据
func (s *PriceService) SetListActive(ctx context.Context, id int64, active bool) error {
	if _, err := s.GetPriceList(ctx, id); err != nil {
		return err
	}
	return s.priceRepo.SetListActive(ctx, id, active)
}

func (s *PriceService) UpdateListDescription(ctx context.Context, id int64, description string) error {
	if _, err := s.GetPriceList(ctx, id); err != nil {
		return err
	}
	return s.priceRepo.UpdateListDescription(ctx, id, description)
}

func (s *PriceService) UploadHistory(ctx context.Context, limit int) ([]model.UploadLog, error) {
	return s.uploadLogRepo.List(ctx, limit)
}

// PreviousPrice 供应商对某配件、早于指定日期的上一次报价（只看启用批次）
func (s *PriceService) PreviousPrice(ctx context.Context, supplierID, partID int64, before time.Time) (*repository.Observation, error) {
	return s.priceRepo.PreviousObservation(ctx, supplierID, partID, before)
}

// ==================== 全目录比价 ====================

// SupplierQuote 汇总表里的一列：某供应商对该配件的最新报价
type SupplierQuote struct {
	SupplierID   int64     `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	RegionName   string    `json:"region_name"`
	Currency     string    `json:"currency"`
	Price        float64   `json:"price"`
	PriceBase    float64   `json:"price_base"` // 折算不了时为 0
	Converted    bool      `json:"converted"`
	UploadDate   time.Time `json:"upload_date"`
}

// PartPriceSummary 单配件的比价结果
type PartPriceSummary struct {
	PartID      int64           `json:"part_id"`
	Brand       string          `json:"brand"`
	MainArticle string          `json:"main_article"`
	NameRu      string          `json:"name_ru"`
	Weight      float64         `json:"weight"`
	Best        *Quote          `json:"best"`
	Quotes      []SupplierQuote `json:"quotes"`
}

// Analysis 全目录最优价汇总：每个有报价的配件取各供应商最新报价，选折算后最低
func (s *PriceService) Analysis(ctx context.Context) ([]PartPriceSummary, []string, error) {
	obs, err := s.priceRepo.ActiveAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	convert, err := s.currencySvc.Converter(ctx)
	if err != nil {
		return nil, nil, err
	}

	// 按配件分组，保持首次出现顺序
	grouped := make(map[int64][]repository.Observation)
	var partOrder []int64
	for _, o := range obs {
		if _, ok := grouped[o.PartID]; !ok {
			partOrder = append(partOrder, o.PartID)
		}
		grouped[o.PartID] = append(grouped[o.PartID], o)
	}

	parts, err := s.partRepo.ListByIDs(ctx, partOrder)
	if err != nil {
		return nil, nil, err
	}
	partByID := make(map[int64]*model.Part, len(parts))
	for i := range parts {
		partByID[parts[i].ID] = &parts[i]
	}

	var warnings []string
	seenMissing := make(map[string]bool)
	summaries := make([]PartPriceSummary, 0, len(partOrder))

	for _, partID := range partOrder {
		part := partByID[partID]
		if part == nil {
			continue
		}

		latest := LatestPerSupplier(grouped[partID])
		best, missing := BestQuote(latest, convert)
		for _, code := range missing {
			if !seenMissing[code] {
				seenMissing[code] = true
				warnings = append(warnings, code)
			}
		}

		summary := PartPriceSummary{
			PartID:      partID,
			MainArticle: part.MainArticle,
			NameRu:      part.NameRu,
			Weight:      part.Weight,
			Best:        best,
		}
		if part.Brand != nil {
			summary.Brand = part.Brand.Name
		}
		for _, o := range latest {
			base, ok := convert(o.Price, o.Currency)
			summary.Quotes = append(summary.Quotes, SupplierQuote{
				SupplierID:   o.SupplierID,
				SupplierName: o.SupplierName,
				RegionName:   o.RegionName,
				Currency:     o.Currency,
				Price:        o.Price,
				PriceBase:    base,
				Converted:    ok,
				UploadDate:   o.UploadDate,
			})
		}
		summaries = append(summaries, summary)
	}
	return summaries, warnings, nil
}

// ==================== 批次分析 ====================

// ListAnalysisRow 批次分析的一行：当前报价 vs 上次报价 vs 区域同行最优
type ListAnalysisRow struct {
	PartID      int64   `json:"part_id"`
	Brand       string  `json:"brand"`
	MainArticle string  `json:"main_article"`
	NameRu      string  `json:"name_ru"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	PriceBase   float64 `json:"price_base"`
	Converted   bool    `json:"converted"`

	PrevPrice       *float64   `json:"prev_price"`
	PrevDate        *time.Time `json:"prev_date"`
	ChangeVsPrevPct *float64   `json:"change_vs_prev_pct"`

	RegionalBest         *float64 `json:"regional_best"` // 折算到基准货币
	RegionalBestSupplier string   `json:"regional_best_supplier,omitempty"`
	DiffVsRegionalPct    *float64 `json:"diff_vs_regional_pct"`
}

// ListAnalysisStats 批次层面的统计
type ListAnalysisStats struct {
	Positions     int `json:"positions"`
	NewPositions  int `json:"new_positions"` // 该供应商首次报价的配件
	PriceIncrease int `json:"price_increase"`
	PriceDecrease int `json:"price_decrease"`
	PriceSame     int `json:"price_same"`
	CheaperThanRegion int `json:"cheaper_than_region"`
}

// ListAnalysis 批次分析结果
type ListAnalysis struct {
	List  *model.PriceList  `json:"list"`
	Rows  []ListAnalysisRow `json:"rows"`
	Stats ListAnalysisStats `json:"stats"`
}

// AnalyzeList 对一个批次做环比 + 区域对比分析
func (s *PriceService) AnalyzeList(ctx context.Context, listID int64) (*ListAnalysis, error) {
	list, err := s.GetPriceList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.Supplier == nil {
		return nil, ErrNotFound
	}

	obs, err := s.priceRepo.ForList(ctx, listID)
	if err != nil {
		return nil, err
	}
	convert, err := s.currencySvc.Converter(ctx)
	if err != nil {
		return nil, err
	}

	partIDs := make([]int64, 0, len(obs))
	for _, o := range obs {
		partIDs = append(partIDs, o.PartID)
	}
	parts, err := s.partRepo.ListByIDs(ctx, partIDs)
	if err != nil {
		return nil, err
	}
	partByID := make(map[int64]*model.Part, len(parts))
	for i := range parts {
		partByID[parts[i].ID] = &parts[i]
	}

	// 区域同行报价一次取全，内存里按配件比
	regionObs, err := s.priceRepo.ActiveForParts(ctx, partIDs)
	if err != nil {
		return nil, err
	}
	regionByPart := make(map[int64][]repository.Observation)
	for _, o := range regionObs {
		regionByPart[o.PartID] = append(regionByPart[o.PartID], o)
	}

	now := time.Now()
	analysis := &ListAnalysis{List: list}

	for _, o := range obs {
		part := partByID[o.PartID]
		if part == nil {
			continue
		}
		analysis.Stats.Positions++

		base, converted := convert(o.Price, o.Currency)
		row := ListAnalysisRow{
			PartID:      o.PartID,
			MainArticle: part.MainArticle,
			NameRu:      part.NameRu,
			Price:       o.Price,
			Currency:    o.Currency,
			PriceBase:   base,
			Converted:   converted,
		}
		if part.Brand != nil {
			row.Brand = part.Brand.Name
		}

		prev, err := s.PreviousPrice(ctx, list.SupplierID, o.PartID, list.UploadDate)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			analysis.Stats.NewPositions++
		} else {
			row.PrevPrice = &prev.Price
			row.PrevDate = &prev.UploadDate
			if prev.Price > 0 {
				pct := utils.Round2((o.Price - prev.Price) / prev.Price * 100)
				row.ChangeVsPrevPct = &pct
				switch {
				case pct > 0:
					analysis.Stats.PriceIncrease++
				case pct < 0:
					analysis.Stats.PriceDecrease++
				default:
					analysis.Stats.PriceSame++
				}
			}
		}

		regionalBest, _ := BestInRegion(
			regionByPart[o.PartID],
			list.Supplier.RegionID, list.SupplierID,
			s.maxAgeDays, now, convert,
		)
		if regionalBest != nil {
			best := utils.Round2(regionalBest.PriceBase)
			row.RegionalBest = &best
			row.RegionalBestSupplier = regionalBest.SupplierName
			if converted && regionalBest.PriceBase > 0 {
				diff := utils.Round2((base - regionalBest.PriceBase) / regionalBest.PriceBase * 100)
				row.DiffVsRegionalPct = &diff
				if diff < 0 {
					analysis.Stats.CheaperThanRegion++
				}
			}
		}

		analysis.Rows = append(analysis.Rows, row)
	}
	return analysis, nil
}

// ==================== 供应商对比 ====================

// SupplierCompareRow 两个供应商对同一配件的报价对比
type SupplierCompareRow struct {
	PartID      int64  `json:"part_id"`
	Brand       string `json:"brand"`
	MainArticle string `json:"main_article"`
	NameRu      string `json:"name_ru"`

	Price1     *float64 `json:"price1"`
	Price1Base *float64 `json:"price1_base"`
	Currency1  string   `json:"currency1,omitempty"`
	Price2     *float64 `json:"price2"`
	Price2Base *float64 `json:"price2_base"`
	Currency2  string   `json:"currency2,omitempty"`

	// (供应商2 - 供应商1) / 供应商1，基准货币口径
	DiffPct *float64 `json:"diff_pct"`
}

// CompareSuppliers 两供应商最新报价逐配件对比
// showAll=false 时只留两边都有报价的配件
func (s *PriceService) CompareSuppliers(ctx context.Context, supplier1ID, supplier2ID int64, showAll bool) ([]SupplierCompareRow, error) {
	if supplier1ID == supplier2ID {
		return nil, ErrInvalidInput
	}
	for _, id := range []int64{supplier1ID, supplier2ID} {
		supplier, err := s.supplierRepo.GetSupplier(ctx, id)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, ErrNotFound
		}
	}

	convert, err := s.currencySvc.Converter(ctx)
	if err != nil {
		return nil, err
	}

	latest1, order, err := s.latestByPart(ctx, supplier1ID)
	if err != nil {
		return nil, err
	}
	latest2, order2, err := s.latestByPart(ctx, supplier2ID)
	if err != nil {
		return nil, err
	}
	// 只在 supplier2 出现的配件补到末尾
	for _, partID := range order2 {
		if _, ok := latest1[partID]; !ok {
			order = append(order, partID)
		}
	}

	parts, err := s.partRepo.ListByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	partByID := make(map[int64]*model.Part, len(parts))
	for i := range parts {
		partByID[parts[i].ID] = &parts[i]
	}

	var rows []SupplierCompareRow
	for _, partID := range order {
		o1, ok1 := latest1[partID]
		o2, ok2 := latest2[partID]
		if !showAll && (!ok1 || !ok2) {
			continue
		}
		part := partByID[partID]
		if part == nil {
			continue
		}

		row := SupplierCompareRow{
			PartID:      partID,
			MainArticle: part.MainArticle,
			NameRu:      part.NameRu,
		}
		if part.Brand != nil {
			row.Brand = part.Brand.Name
		}
		if ok1 {
			row.Price1 = &o1.Price
			row.Currency1 = o1.Currency
			if base, ok := convert(o1.Price, o1.Currency); ok {
				b := utils.Round2(base)
				row.Price1Base = &b
			}
		}
		if ok2 {
			row.Price2 = &o2.Price
			row.Currency2 = o2.Currency
			if base, ok := convert(o2.Price, o2.Currency); ok {
				b := utils.Round2(base)
				row.Price2Base = &b
			}
		}
		if row.Price1Base != nil && row.Price2Base != nil && *row.Price1Base > 0 {
			diff := utils.Round2((*row.Price2Base - *row.Price1Base) / *row.Price1Base * 100)
			row.DiffPct = &diff
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// latestByPart 单供应商每个配件的最新报价；入参顺序保证升序，后行覆盖前行
func (s *PriceService) latestByPart(ctx context.Context, supplierID int64) (map[int64]repository.Observation, []int64, error) {
	obs, err := s.priceRepo.ActiveForSupplier(ctx, supplierID)
	if err != nil {
		return nil, nil, err
	}
	latest := make(map[int64]repository.Observation)
	var order []int64
	for _, o := range obs {
		if _, ok := latest[o.PartID]; !ok {
			order = append(order, o.PartID)
		}
		latest[o.PartID] = o
	}
	return latest, order, nil
}
