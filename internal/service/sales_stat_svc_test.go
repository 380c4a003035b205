package service

import (
	"context"
	"testing"

	"autoparts_erp_v1_202608/internal/ingest"
	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
)

func TestNormalizeVolumeGroup(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Топ продаж", model.VolumeGroupTop},
		{"top", model.VolumeGroupTop},
		{"Хороший спрос", model.VolumeGroupGood},
		{"низкий", model.VolumeGroupLow},
		{"Спрос отсутствует", model.VolumeGroupNoDemand},
		{"no demand", model.VolumeGroupNoDemand},
		{"", ""},
		{"что-то странное", ""},
	}
	for _, c := range cases {
		if got := NormalizeVolumeGroup(c.in); got != c.want {
			t.Errorf("NormalizeVolumeGroup(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSalesStatService_Import_UpsertByKey(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	table := ingest.Table{
		Headers: []string{"Артикул", "Бренд", "Период", "Количество, шт", "Группа"},
		Rows: [][]string{
			{"A-100", "Bosch", "2026-07-01", "42", "Топ продаж"},
		},
	}

	report, err := ts.statSvc.Import(ctx, table, "sales.xlsx", model.StatTypeOwnSales, "1С")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if report.Added != 1 {
		t.Errorf("Added = %d, want 1", report.Added)
	}

	// 同键重复导入走更新，不产生新行
	table.Rows[0][3] = "50"
	report, err = ts.statSvc.Import(ctx, table, "sales.xlsx", model.StatTypeOwnSales, "1С")
	if err != nil {
		t.Fatalf("重复 Import() error = %v", err)
	}
	if report.Updated != 1 || report.Added != 0 {
		t.Errorf("report = %+v, want Updated=1 Added=0", report)
	}

	stats, err := ts.statSvc.List(ctx, repository.SalesStatFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("条数 = %d, want 1", len(stats))
	}
	if stats[0].Quantity != 50 {
		t.Errorf("Quantity = %v, want 50", stats[0].Quantity)
	}
	if stats[0].VolumeGroup != model.VolumeGroupTop {
		t.Errorf("VolumeGroup = %q, want top_sales", stats[0].VolumeGroup)
	}

	// 不同来源同键互不影响
	report, _ = ts.statSvc.Import(ctx, table, "sales.xlsx", model.StatTypeCompetitorSales, "конкурент")
	if report.Added != 1 {
		t.Errorf("其他来源 Added = %d, want 1", report.Added)
	}
}

func TestSalesStatService_Import_UnknownDataType(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.statSvc.Import(context.Background(), ingest.Table{}, "x.xlsx", "bogus", "")
	if err != ErrInvalidInput {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestSalesStatService_Aggregated(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	for _, period := range []string{"2026-06-01", "2026-07-01"} {
		table := ingest.Table{
			Headers: []string{"Артикул", "Бренд", "Период", "Количество"},
			Rows:    [][]string{{"A-100", "Bosch", period, "10"}},
		}
		if _, err := ts.statSvc.Import(ctx, table, "s.xlsx", model.StatTypeOwnSales, ""); err != nil {
			t.Fatalf("Import(%s) error = %v", period, err)
		}
	}

	agg, err := ts.statSvc.Aggregated(ctx)
	if err != nil {
		t.Fatalf("Aggregated() error = %v", err)
	}
	if len(agg) != 1 {
		t.Fatalf("聚合条数 = %d, want 每个键最新周期一条", len(agg))
	}
	if agg[0].Period.Month() != 7 {
		t.Errorf("Period = %v, want 七月", agg[0].Period)
	}
}

func TestSalesStatService_Update(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	table := ingest.Table{
		Headers: []string{"Артикул", "Бренд", "Количество", "Группа"},
		Rows:    [][]string{{"A-100", "Bosch", "42", "Топ продаж"}},
	}
	if _, err := ts.statSvc.Import(ctx, table, "s.xlsx", model.StatTypeOwnSales, ""); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	stats, err := ts.statSvc.List(ctx, repository.SalesStatFilter{})
	if err != nil || len(stats) != 1 {
		t.Fatalf("List() = %d 条, err = %v", len(stats), err)
	}

	updated, err := ts.statSvc.Update(ctx, stats[0].ID, StatFields{
		Quantity:    60,
		VolumeGroup: "низкий спрос",
		Notes:       "ручная правка",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Quantity != 60 {
		t.Errorf("Quantity = %v, want 60", updated.Quantity)
	}
	if updated.VolumeGroup != model.VolumeGroupLow {
		t.Errorf("VolumeGroup = %q, want low_demand", updated.VolumeGroup)
	}

	if _, err := ts.statSvc.Update(ctx, 99999, StatFields{}); err != ErrNotFound {
		t.Errorf("不存在的记录 error = %v, want ErrNotFound", err)
	}
	if _, err := ts.statSvc.Update(ctx, stats[0].ID, StatFields{Quantity: -1}); err != ErrInvalidInput {
		t.Errorf("负数量 error = %v, want ErrInvalidInput", err)
	}
}
