package service

import (
	"context"
	"testing"
	"time"

	"autoparts_erp_v1_202608/internal/ingest"
	"autoparts_erp_v1_202608/internal/repository"
)

func day(offset int) time.Time {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func passthrough(amount float64, currency string) (float64, bool) {
	if currency == "RUB" {
		return amount, true
	}
	return 0, false
}

// ==================== 纯函数 ====================

func TestLatestPerSupplier(t *testing.T) {
	obs := []repository.Observation{
		{SupplierID: 1, Price: 100, UploadDate: day(0)},
		{SupplierID: 2, Price: 50, UploadDate: day(1)},
		{SupplierID: 1, Price: 90, UploadDate: day(2)}, // 供应商 1 的新批次
	}

	latest := LatestPerSupplier(obs)
	if len(latest) != 2 {
		t.Fatalf("len = %d, want 2", len(latest))
	}
	// 顺序保持首次出现：供应商 1 在前，且只剩新价
	if latest[0].SupplierID != 1 || latest[0].Price != 90 {
		t.Errorf("latest[0] = %+v, want 供应商1 @90", latest[0])
	}
	if latest[1].SupplierID != 2 || latest[1].Price != 50 {
		t.Errorf("latest[1] = %+v, want 供应商2 @50", latest[1])
	}
}

func TestBestQuote_PicksLowestConverted(t *testing.T) {
	rates := map[string]float64{"CNY": 9}
	convert := func(amount float64, currency string) (float64, bool) {
		if currency == "RUB" {
			return amount, true
		}
		r, ok := rates[currency]
		return amount * r, ok
	}

	obs := []repository.Observation{
		{SupplierID: 1, SupplierName: "A", Currency: "RUB", Price: 95, UploadDate: day(0)},
		{SupplierID: 2, SupplierName: "B", Currency: "CNY", Price: 10, UploadDate: day(0)}, // 90 руб
		{SupplierID: 3, SupplierName: "C", Currency: "JPY", Price: 1, UploadDate: day(0)},  // 无汇率
	}

	best, missing := BestQuote(obs, convert)
	if best == nil || best.SupplierID != 2 {
		t.Fatalf("best = %+v, want 供应商2", best)
	}
	if best.PriceBase != 90 {
		t.Errorf("PriceBase = %v, want 90", best.PriceBase)
	}
	if len(missing) != 1 || missing[0] != "JPY" {
		t.Errorf("missing = %v, want [JPY]", missing)
	}
}

func TestBestQuote_TieBreaks(t *testing.T) {
	// 同价：批次新的赢
	obs := []repository.Observation{
		{SupplierID: 1, SupplierName: "A", Currency: "RUB", Price: 90, UploadDate: day(0)},
		{SupplierID: 2, SupplierName: "B", Currency: "RUB", Price: 90, UploadDate: day(5)},
	}
	best, _ := BestQuote(obs, passthrough)
	if best.SupplierID != 2 {
		t.Errorf("同价应取批次更新的, got 供应商%d", best.SupplierID)
	}

	// 同价同日期：供应商名字典序小的赢，保证结果稳定
	obs = []repository.Observation{
		{SupplierID: 1, SupplierName: "Zeta", Currency: "RUB", Price: 90, UploadDate: day(0)},
		{SupplierID: 2, SupplierName: "Alpha", Currency: "RUB", Price: 90, UploadDate: day(0)},
	}
	best, _ = BestQuote(obs, passthrough)
	if best.SupplierName != "Alpha" {
		t.Errorf("同价同日期应按名字排序, got %s", best.SupplierName)
	}
}

func TestFilterFresh(t *testing.T) {
	now := day(0)
	obs := []repository.Observation{
		{SupplierID: 1, UploadDate: now.AddDate(0, 0, -10)},
		{SupplierID: 2, UploadDate: now.AddDate(0, 0, -2000)}, // 过期
	}

	fresh := FilterFresh(obs, DefaultMaxAgeDays, now)
	if len(fresh) != 1 || fresh[0].SupplierID != 1 {
		t.Errorf("fresh = %+v, want 只剩供应商1", fresh)
	}

	// maxAgeDays <= 0 不过滤
	if got := FilterFresh(obs, 0, now); len(got) != 2 {
		t.Errorf("不限窗口 len = %d, want 2", len(got))
	}
}

func TestBestInRegion(t *testing.T) {
	now := day(10)
	obs := []repository.Observation{
		{SupplierID: 1, SupplierName: "A", RegionID: 1, Currency: "RUB", Price: 80, UploadDate: day(0)},
		{SupplierID: 2, SupplierName: "B", RegionID: 1, Currency: "RUB", Price: 70, UploadDate: day(0)},
		{SupplierID: 3, SupplierName: "C", RegionID: 2, Currency: "RUB", Price: 10, UploadDate: day(0)}, // 别的区域
	}

	// 区域 1 内、剔除供应商 2 后最优是 A
	best, _ := BestInRegion(obs, 1, 2, DefaultMaxAgeDays, now, passthrough)
	if best == nil || best.SupplierID != 1 {
		t.Fatalf("best = %+v, want 供应商1", best)
	}

	// 不剔除时 B 最优
	best, _ = BestInRegion(obs, 1, 0, DefaultMaxAgeDays, now, passthrough)
	if best == nil || best.SupplierID != 2 {
		t.Fatalf("best = %+v, want 供应商2", best)
	}

	// 没人在区域 3 报价
	if best, _ = BestInRegion(obs, 3, 0, DefaultMaxAgeDays, now, passthrough); best != nil {
		t.Errorf("区域3 best = %+v, want nil", best)
	}
}

// ==================== 导入 + 分析 ====================

func TestPriceService_ImportPriceList(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	region := ts.mustRegion(t, "Китай")
	supplier := ts.mustSupplier(t, "GuangzhouParts", region.ID, "CNY")

	table := ingest.Table{
		Headers: []string{"Артикул", "Бренд", "Цена", "Вес, кг"},
		Rows: [][]string{
			{"A-100", "Bosch", "95", "2,5"},
			{"B-200", "Sachs", "1200,50", ""},
			{"C-300", "Febi", "", ""},  // 无价格，跳过
			{"D-400", "", "10", ""},    // 无品牌，跳过
		},
	}

	list, report, err := ts.priceSvc.ImportPriceList(ctx, PriceListImport{
		SupplierID: supplier.ID,
		UploadDate: day(0),
		FileName:   "guangzhou.xlsx",
		Table:      table,
	})
	if err != nil {
		t.Fatalf("ImportPriceList() error = %v", err)
	}
	if report.Added != 2 || report.Skipped != 2 || report.Total != 4 {
		t.Errorf("report = %+v, want Added=2 Skipped=2 Total=4", report)
	}
	if list.ID == 0 || !list.IsActive {
		t.Errorf("批次 = %+v, want 已建且活跃", list)
	}

	// 配件自动建档并带上了重量
	part, err := ts.catalogSvc.FindPart(ctx, "Bosch", "A100", false)
	if err != nil {
		t.Fatalf("FindPart() error = %v", err)
	}
	if part.Weight != 2.5 {
		t.Errorf("Weight = %v, want 2.5", part.Weight)
	}

	obs, err := ts.priceRepo.ForList(ctx, list.ID)
	if err != nil {
		t.Fatalf("ForList() error = %v", err)
	}
	if len(obs) != 2 {
		t.Errorf("观测条数 = %d, want 2", len(obs))
	}
}

func TestPriceService_ImportPriceList_UnknownSupplier(t *testing.T) {
	ts := newTestServices(t)

	_, _, err := ts.priceSvc.ImportPriceList(context.Background(), PriceListImport{SupplierID: 999})
	if err != ErrNotFound {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestPriceService_Analysis_BestAcrossSuppliers(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	region := ts.mustRegion(t, "Китай")
	s1 := ts.mustSupplier(t, "Alpha", region.ID, "RUB")
	s2 := ts.mustSupplier(t, "Beta", region.ID, "CNY")
	ts.mustRate(t, "CNY", 9)

	part, _, err := ts.catalogSvc.ResolvePart(ctx, "Bosch", "A-100", false)
	if err != nil {
		t.Fatalf("ResolvePart() error = %v", err)
	}

	// Alpha 95 руб；Beta 10 CNY = 90 руб（更优）
	ts.mustPriceList(t, s1.ID, day(0), map[int64]float64{part.ID: 95})
	ts.mustPriceList(t, s2.ID, day(1), map[int64]float64{part.ID: 10})

	summaries, warnings, err := ts.priceSvc.Analysis(ctx)
	if err != nil {
		t.Fatalf("Analysis() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want 空", warnings)
	}
	if len(summaries) != 1 {
		t.Fatalf("汇总行数 = %d, want 1", len(summaries))
	}

	got := summaries[0]
	if got.Best == nil || got.Best.SupplierID != s2.ID {
		t.Fatalf("Best = %+v, want Beta", got.Best)
	}
	if got.Best.PriceBase != 90 {
		t.Errorf("Best.PriceBase = %v, want 90", got.Best.PriceBase)
	}
	if len(got.Quotes) != 2 {
		t.Errorf("报价列数 = %d, want 2", len(got.Quotes))
	}

	// 供应商换了新批次，最优价跟着走
	ts.mustPriceList(t, s2.ID, day(5), map[int64]float64{part.ID: 12}) // 108 руб
	summaries, _, _ = ts.priceSvc.Analysis(ctx)
	if summaries[0].Best.SupplierID != s1.ID {
		t.Errorf("新批次后 Best = %+v, want Alpha", summaries[0].Best)
	}
}

func TestPriceService_Analysis_InactiveListExcluded(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	region := ts.mustRegion(t, "Китай")
	supplier := ts.mustSupplier(t, "Alpha", region.ID, "RUB")
	part, _, _ := ts.catalogSvc.ResolvePart(ctx, "Bosch", "A-100", false)

	list := ts.mustPriceList(t, supplier.ID, day(0), map[int64]float64{part.ID: 95})

	if err := ts.priceSvc.SetListActive(ctx, list.ID, false); err != nil {
		t.Fatalf("SetListActive() error = %v", err)
	}
	summaries, _, err := ts.priceSvc.Analysis(ctx)
	if err != nil {
		t.Fatalf("Analysis() error = %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("停用批次后汇总行数 = %d, want 0", len(summaries))
	}

	// 恢复后报价重新参与
	ts.priceSvc.SetListActive(ctx, list.ID, true)
	summaries, _, _ = ts.priceSvc.Analysis(ctx)
	if len(summaries) != 1 {
		t.Errorf("恢复后汇总行数 = %d, want 1", len(summaries))
	}
}

func TestPriceService_AnalyzeList(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	region := ts.mustRegion(t, "Китай")
	supplier := ts.mustSupplier(t, "Alpha", region.ID, "RUB")
	rival := ts.mustSupplier(t, "Beta", region.ID, "RUB")

	part, _, _ := ts.catalogSvc.ResolvePart(ctx, "Bosch", "A-100", false)

	ts.mustPriceList(t, supplier.ID, day(0), map[int64]float64{part.ID: 100})
	ts.mustPriceList(t, rival.ID, day(1), map[int64]float64{part.ID: 95})
	current := ts.mustPriceList(t, supplier.ID, day(10), map[int64]float64{part.ID: 110})

	analysis, err := ts.priceSvc.AnalyzeList(ctx, current.ID)
	if err != nil {
		t.Fatalf("AnalyzeList() error = %v", err)
	}
	if analysis.Stats.Positions != 1 || analysis.Stats.PriceIncrease != 1 {
		t.Errorf("stats = %+v, want Positions=1 PriceIncrease=1", analysis.Stats)
	}

	row := analysis.Rows[0]
	if row.PrevPrice == nil || *row.PrevPrice != 100 {
		t.Fatalf("PrevPrice = %v, want 100", row.PrevPrice)
	}
	if row.ChangeVsPrevPct == nil || *row.ChangeVsPrevPct != 10 {
		t.Errorf("ChangeVsPrevPct = %v, want 10", row.ChangeVsPrevPct)
	}
	// 区域最优剔除了本供应商，应指向 Beta 的 95
	if row.RegionalBest == nil || *row.RegionalBest != 95 {
		t.Fatalf("RegionalBest = %v, want 95", row.RegionalBest)
	}
	if row.RegionalBestSupplier != "Beta" {
		t.Errorf("RegionalBestSupplier = %q, want Beta", row.RegionalBestSupplier)
	}
}

func TestPriceService_CompareSuppliers(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	region := ts.mustRegion(t, "Китай")
	s1 := ts.mustSupplier(t, "Alpha", region.ID, "RUB")
	s2 := ts.mustSupplier(t, "Beta", region.ID, "RUB")

	p1, _, _ := ts.catalogSvc.ResolvePart(ctx, "Bosch", "A-100", false)
	p2, _, _ := ts.catalogSvc.ResolvePart(ctx, "Bosch", "B-200", false)

	ts.mustPriceList(t, s1.ID, day(0), map[int64]float64{p1.ID: 100, p2.ID: 50})
	ts.mustPriceList(t, s2.ID, day(1), map[int64]float64{p1.ID: 110})

	// 默认只看两边都有报价的
	rows, err := ts.priceSvc.CompareSuppliers(ctx, s1.ID, s2.ID, false)
	if err != nil {
		t.Fatalf("CompareSuppliers() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("行数 = %d, want 1", len(rows))
	}
	if rows[0].DiffPct == nil || *rows[0].DiffPct != 10 {
		t.Errorf("DiffPct = %v, want 10", rows[0].DiffPct)
	}

	// showAll 带上只有一边的配件
	rows, _ = ts.priceSvc.CompareSuppliers(ctx, s1.ID, s2.ID, true)
	if len(rows) != 2 {
		t.Errorf("showAll 行数 = %d, want 2", len(rows))
	}

	if _, err := ts.priceSvc.CompareSuppliers(ctx, s1.ID, s1.ID, false); err != ErrInvalidInput {
		t.Errorf("自比较 error = %v, want ErrInvalidInput", err)
	}
}
