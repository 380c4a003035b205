package service

import (
	"context"
	"testing"

	"autoparts_erp_v1_202608/internal/model"
)

// 跨区域核价的完整场景：
// 配件 2.5 кг，广州供应商 95 CNY（汇率 9），中国区运费 max(500, 2.5×100)=500，
// 到岸 (855+500)/0.835 = 1622.75；预期售价 2000 → 利润 23.25%
func TestOrderService_PriceAcrossRegions(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	china := ts.mustRegion(t, "Китай")
	japan := ts.mustRegion(t, "Япония")
	cn := ts.mustSupplier(t, "GuangzhouParts", china.ID, "CNY")
	jp := ts.mustSupplier(t, "TokyoParts", japan.ID, "RUB")
	ts.mustRate(t, "CNY", 9)

	part, _, err := ts.catalogSvc.ResolvePart(ctx, "Bosch", "A-100", false)
	if err != nil {
		t.Fatalf("ResolvePart() error = %v", err)
	}
	ts.catalogSvc.Enrich(ctx, part.ID, PartFields{Weight: 2.5})

	ts.db.Create(&model.DeliveryCost{RegionID: china.ID, CostPerKg: 100, MinCost: 500})
	ts.db.Create(&model.DeliveryCost{RegionID: japan.ID, CostPerKg: 300, MinCost: 900})

	ts.mustPriceList(t, cn.ID, day(0), map[int64]float64{part.ID: 95})
	ts.mustPriceList(t, jp.ID, day(1), map[int64]float64{part.ID: 1500})

	ts.db.Create(&model.ExpectedSalePrice{
		BrandID: part.BrandID, MainArticle: part.MainArticle,
		PriceBase: 2000, EffectiveDate: day(0),
	})

	items := []OrderItem{{Brand: "bosch", Article: "a100", Quantity: 2}}
	priced, missing, err := ts.orderSvc.PriceAcrossRegions(ctx, items, OrderOptions{})
	if err != nil {
		t.Fatalf("PriceAcrossRegions() error = %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("missing = %v, want 空", missing)
	}
	if len(priced) != 1 || !priced[0].Found {
		t.Fatalf("priced = %+v, want 1 行且命中", priced)
	}

	item := priced[0]
	if item.Expected == nil || *item.Expected != 2000 {
		t.Errorf("Expected = %v, want 2000", item.Expected)
	}
	if len(item.Quotes) != 2 {
		t.Fatalf("区域报价数 = %d, want 2", len(item.Quotes))
	}

	var cnQuote, jpQuote *RegionQuote
	for i := range item.Quotes {
		switch item.Quotes[i].RegionID {
		case china.ID:
			cnQuote = &item.Quotes[i]
		case japan.ID:
			jpQuote = &item.Quotes[i]
		}
	}
	if cnQuote == nil || jpQuote == nil {
		t.Fatalf("缺少区域报价: %+v", item.Quotes)
	}

	if cnQuote.PriceBase != 855 {
		t.Errorf("中国区 PriceBase = %v, want 855", cnQuote.PriceBase)
	}
	if cnQuote.DeliveryCost != 500 {
		t.Errorf("中国区运费 = %v, want 500", cnQuote.DeliveryCost)
	}
	if cnQuote.LandedCost != 1622.75 {
		t.Errorf("中国区到岸 = %v, want 1622.75", cnQuote.LandedCost)
	}
	if cnQuote.ProfitPct == nil || *cnQuote.ProfitPct != 23.25 {
		t.Errorf("中国区利润率 = %v, want 23.25", cnQuote.ProfitPct)
	}
	if !cnQuote.HighProfit {
		t.Error("利润率 > 15% 应标记高利润")
	}

	// 日本区 (1500 + max(900, 2.5×300=750)) / 0.835 = 2874.25
	if jpQuote.LandedCost != 2874.25 {
		t.Errorf("日本区到岸 = %v, want 2874.25", jpQuote.LandedCost)
	}
	if jpQuote.HighProfit {
		t.Error("日本区利润率为负，不应标高利润")
	}

	// 到岸价低的区域标记 best
	if !cnQuote.Best || jpQuote.Best {
		t.Errorf("best 标记错误: 中国=%v 日本=%v", cnQuote.Best, jpQuote.Best)
	}
}

func TestOrderService_UnknownPartYieldsEmptyRow(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	ts.mustRegion(t, "Китай")

	priced, _, err := ts.orderSvc.PriceAcrossRegions(ctx, []OrderItem{
		{Brand: "Nobody", Article: "X-1", Quantity: 1},
	}, OrderOptions{})
	if err != nil {
		t.Fatalf("PriceAcrossRegions() error = %v", err)
	}
	if len(priced) != 1 {
		t.Fatalf("行数 = %d, want 1", len(priced))
	}
	if priced[0].Found || len(priced[0].Quotes) != 0 {
		t.Errorf("未知配件应返回空结果行: %+v", priced[0])
	}
	// 核价绝不顺手建品牌
	if _, err := ts.brandSvc.Resolve(ctx, "Nobody"); err != ErrNotFound {
		t.Errorf("核价后品牌 = %v, want 仍然不存在", err)
	}
}

func TestOrderService_MissingRateReported(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	region := ts.mustRegion(t, "ОАЭ")
	supplier := ts.mustSupplier(t, "DubaiParts", region.ID, "AED")

	part, _, _ := ts.catalogSvc.ResolvePart(ctx, "Bosch", "A-100", false)
	ts.mustPriceList(t, supplier.ID, day(0), map[int64]float64{part.ID: 100})

	priced, missing, err := ts.orderSvc.PriceAcrossRegions(ctx, []OrderItem{
		{Brand: "Bosch", Article: "A-100", Quantity: 1},
	}, OrderOptions{})
	if err != nil {
		t.Fatalf("PriceAcrossRegions() error = %v", err)
	}
	if len(missing) != 1 || missing[0] != "AED" {
		t.Errorf("missing = %v, want [AED]", missing)
	}
	// 折算不了的报价不参与结果
	if len(priced[0].Quotes) != 0 {
		t.Errorf("quotes = %+v, want 空", priced[0].Quotes)
	}
}

func TestOrderService_InvalidMargin(t *testing.T) {
	ts := newTestServices(t)

	_, _, err := ts.orderSvc.PriceAcrossRegions(context.Background(), nil, OrderOptions{MarginCoefficient: 1.5})
	if err != ErrInvalidInput {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestOrderService_PriceForSupplier(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	region := ts.mustRegion(t, "Китай")
	supplier := ts.mustSupplier(t, "GuangzhouParts", region.ID, "RUB")
	other := ts.mustSupplier(t, "Rival", region.ID, "RUB")

	part, _, _ := ts.catalogSvc.ResolvePart(ctx, "Bosch", "A-100", false)
	ts.mustPriceList(t, supplier.ID, day(0), map[int64]float64{part.ID: 1000})
	// 别家更便宜，但单供应商核价不看
	ts.mustPriceList(t, other.ID, day(1), map[int64]float64{part.ID: 1})

	priced, _, err := ts.orderSvc.PriceForSupplier(ctx, []OrderItem{
		{Brand: "Bosch", Article: "A-100", Quantity: 1},
	}, supplier.ID, OrderOptions{})
	if err != nil {
		t.Fatalf("PriceForSupplier() error = %v", err)
	}
	if len(priced) != 1 || len(priced[0].Quotes) != 1 {
		t.Fatalf("priced = %+v, want 1 行 1 报价", priced)
	}
	if priced[0].Quotes[0].SupplierID != supplier.ID {
		t.Errorf("SupplierID = %d, want %d", priced[0].Quotes[0].SupplierID, supplier.ID)
	}
	// 无运费规则时到岸 = 1000 / 0.835
	if priced[0].Quotes[0].LandedCost != 1197.6 {
		t.Errorf("LandedCost = %v, want 1197.6", priced[0].Quotes[0].LandedCost)
	}

	if _, _, err := ts.orderSvc.PriceForSupplier(ctx, nil, 999, OrderOptions{}); err != ErrNotFound {
		t.Errorf("未知供应商 error = %v, want ErrNotFound", err)
	}
}
