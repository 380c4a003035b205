package service

import (
	"context"
	"testing"

	"autoparts_erp_v1_202608/internal/ingest"
)

func TestExpectedPriceService_SetAndCurrent(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	if _, err := ts.expectedSvc.Set(ctx, "Bosch", "A-100", 2000, day(0), ""); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// 新生效日期的记录接管"当前售价"，历史保留
	if _, err := ts.expectedSvc.Set(ctx, "Bosch", "A-100", 2200, day(10), ""); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	current, err := ts.expectedSvc.Current(ctx, "BOSCH", "a100")
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.PriceBase != 2200 {
		t.Errorf("当前售价 = %v, want 2200", current.PriceBase)
	}

	history, err := ts.expectedSvc.History(ctx, "Bosch", "A-100")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Errorf("历史条数 = %d, want 2", len(history))
	}
}

func TestExpectedPriceService_Set_Invalid(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	if _, err := ts.expectedSvc.Set(ctx, "Bosch", "", 100, day(0), ""); err != ErrInvalidInput {
		t.Errorf("空货号 error = %v, want ErrInvalidInput", err)
	}
	if _, err := ts.expectedSvc.Set(ctx, "Bosch", "A-100", 0, day(0), ""); err != ErrInvalidInput {
		t.Errorf("零价格 error = %v, want ErrInvalidInput", err)
	}
}

func TestExpectedPriceService_Import(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	table := ingest.Table{
		Headers: []string{"Артикул", "Бренд", "Цена", "Дата"},
		Rows: [][]string{
			{"A-100", "Bosch", "2000", "2026-08-01"},
			{"B-200", "Sachs", "1500,50", ""},
			{"C-300", "Febi", "", ""}, // 无价格
		},
	}

	report, err := ts.expectedSvc.Import(ctx, table, "prices.xlsx")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if report.Added != 2 || report.Skipped != 1 {
		t.Errorf("report = %+v, want Added=2 Skipped=1", report)
	}

	current, err := ts.expectedSvc.Current(ctx, "Sachs", "B200")
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.PriceBase != 1500.5 {
		t.Errorf("PriceBase = %v, want 1500.5", current.PriceBase)
	}
}

func TestExpectedPriceService_ListCurrent(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	ts.expectedSvc.Set(ctx, "Bosch", "A-100", 2000, day(0), "")
	ts.expectedSvc.Set(ctx, "Bosch", "A-100", 2100, day(5), "")
	ts.expectedSvc.Set(ctx, "Sachs", "B-200", 900, day(0), "")

	prices, err := ts.expectedSvc.ListCurrent(ctx)
	if err != nil {
		t.Fatalf("ListCurrent() error = %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("条数 = %d, want 每个配件一条", len(prices))
	}
	for _, p := range prices {
		if p.MainArticle == "A100" && p.PriceBase != 2100 {
			t.Errorf("A100 当前售价 = %v, want 2100", p.PriceBase)
		}
	}
}
