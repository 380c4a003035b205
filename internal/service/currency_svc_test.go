package service

import (
	"context"
	"errors"
	"testing"

	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/pkg/utils"
)

func TestCurrencyService_CurrentRate(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	// 基准货币恒为 1
	rate, err := ts.currencySvc.CurrentRate(ctx, "RUB")
	if err != nil || rate != 1 {
		t.Errorf("CurrentRate(RUB) = %v, %v, want 1, nil", rate, err)
	}

	// 没有记录的币种报 ErrMissingRate
	if _, err := ts.currencySvc.CurrentRate(ctx, "CNY"); !errors.Is(err, ErrMissingRate) {
		t.Errorf("CurrentRate(CNY) error = %v, want ErrMissingRate", err)
	}

	ts.mustRate(t, "CNY", 9.0)
	rate, err = ts.currencySvc.CurrentRate(ctx, "CNY")
	if err != nil || rate != 9.0 {
		t.Errorf("CurrentRate(CNY) = %v, %v, want 9, nil", rate, err)
	}

	// 新录入的汇率覆盖旧的，旧记录只留历史
	ts.mustRate(t, "CNY", 9.5)
	rate, _ = ts.currencySvc.CurrentRate(ctx, "CNY")
	if rate != 9.5 {
		t.Errorf("更新后 CurrentRate(CNY) = %v, want 9.5", rate)
	}
}

func TestCurrencyService_Converter(t *testing.T) {
	ts := newTestServices(t)
	ts.mustRate(t, "USD", 80)

	convert, err := ts.currencySvc.Converter(context.Background())
	if err != nil {
		t.Fatalf("Converter() error = %v", err)
	}

	if got, ok := convert(10, "USD"); !ok || got != 800 {
		t.Errorf("convert(10, USD) = %v, %v, want 800, true", got, ok)
	}
	if got, ok := convert(500, "RUB"); !ok || got != 500 {
		t.Errorf("convert(500, RUB) = %v, %v, want 500, true", got, ok)
	}
	if _, ok := convert(1, "JPY"); ok {
		t.Error("无汇率币种应返回 ok=false")
	}
}

func TestCurrencyService_DeliveryCost(t *testing.T) {
	ts := newTestServices(t)
	rule := &model.DeliveryCost{CostPerKg: 100, MinCost: 500}

	// 重量小，走最低运费
	if got := ts.currencySvc.DeliveryCost(2.5, rule); got != 500 {
		t.Errorf("DeliveryCost(2.5) = %v, want 500", got)
	}
	// 重量大，按公斤计
	if got := ts.currencySvc.DeliveryCost(8, rule); got != 800 {
		t.Errorf("DeliveryCost(8) = %v, want 800", got)
	}
	// 没有规则按 0 处理
	if got := ts.currencySvc.DeliveryCost(8, nil); got != 0 {
		t.Errorf("DeliveryCost(无规则) = %v, want 0", got)
	}
	if got := ts.currencySvc.DeliveryCost(0, rule); got != 0 {
		t.Errorf("DeliveryCost(无重量) = %v, want 0", got)
	}
}

func TestCurrencyService_LandedCost(t *testing.T) {
	ts := newTestServices(t)

	// 95 CNY × 9 = 855 руб + 500 руб 运费, 系数 0.835
	landed := utils.Round2(ts.currencySvc.LandedCost(855, 500, 0.835))
	if landed != 1622.75 {
		t.Errorf("LandedCost = %v, want 1622.75", landed)
	}
}

func TestCurrencyService_CheckRates(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	region := ts.mustRegion(t, "Китай")
	ts.mustSupplier(t, "CN-1", region.ID, "CNY")
	ts.mustSupplier(t, "RU-1", region.ID, "RUB")

	missing, err := ts.currencySvc.CheckRates(ctx)
	if err != nil {
		t.Fatalf("CheckRates() error = %v", err)
	}
	if len(missing) != 1 || missing[0] != "CNY" {
		t.Errorf("missing = %v, want [CNY]", missing)
	}

	ts.mustRate(t, "CNY", 9)
	missing, _ = ts.currencySvc.CheckRates(ctx)
	if len(missing) != 0 {
		t.Errorf("补录后 missing = %v, want 空", missing)
	}
}

func TestCurrencyService_UpsertDeliveryCost(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	region := ts.mustRegion(t, "Япония")

	if err := ts.currencySvc.UpsertDeliveryCost(ctx, &model.DeliveryCost{
		RegionID: region.ID, CostPerKg: 300, MinCost: 900,
	}); err != nil {
		t.Fatalf("UpsertDeliveryCost() error = %v", err)
	}

	// 同区域再次写入直接覆盖
	if err := ts.currencySvc.UpsertDeliveryCost(ctx, &model.DeliveryCost{
		RegionID: region.ID, CostPerKg: 350, MinCost: 1000,
	}); err != nil {
		t.Fatalf("二次 UpsertDeliveryCost() error = %v", err)
	}

	costs, err := ts.currencySvc.ListDeliveryCosts(ctx)
	if err != nil {
		t.Fatalf("ListDeliveryCosts() error = %v", err)
	}
	if len(costs) != 1 {
		t.Fatalf("规则条数 = %d, want 1", len(costs))
	}
	if costs[0].CostPerKg != 350 || costs[0].MinCost != 1000 {
		t.Errorf("覆盖后规则 = %+v, want 350/1000", costs[0])
	}
}
