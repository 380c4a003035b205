package service

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.Brand{},
		&model.BrandSynonym{},
		&model.Part{},
		&model.Region{},
		&model.Supplier{},
		&model.DeliveryCost{},
		&model.PriceList{},
		&model.Price{},
		&model.CurrencyRate{},
		&model.ExpectedSalePrice{},
		&model.SalesStatistic{},
		&model.UploadLog{},
		&model.SysUser{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// testServices 一次装配好全套服务，测试按需取用
type testServices struct {
	db          *gorm.DB
	brandSvc    *BrandService
	catalogSvc  *CatalogService
	currencySvc *CurrencyService
	priceSvc    *PriceService
	orderSvc    *OrderService
	expectedSvc *ExpectedPriceService
	statSvc     *SalesStatService
	supplierSvc *SupplierService

	brandRepo    repository.BrandRepository
	partRepo     repository.PartRepository
	priceRepo    repository.PriceRepository
	rateRepo     repository.RateRepository
	deliveryRepo repository.DeliveryCostRepository
	supplierRepo repository.SupplierRepository
	expectedRepo repository.ExpectedPriceRepository
}

func newTestServices(t *testing.T) *testServices {
	db := setupTestDB(t)

	brandRepo := repository.NewBrandRepository(db)
	partRepo := repository.NewPartRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	rateRepo := repository.NewRateRepository(db)
	deliveryRepo := repository.NewDeliveryCostRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	expectedRepo := repository.NewExpectedPriceRepository(db)
	statRepo := repository.NewSalesStatRepository(db)
	uploadLogRepo := repository.NewUploadLogRepository(db)

	brandSvc := NewBrandService(brandRepo)
	catalogSvc := NewCatalogService(brandSvc, partRepo, priceRepo, uploadLogRepo)
	currencySvc := NewCurrencyService(rateRepo, deliveryRepo, "RUB")
	priceSvc := NewPriceService(catalogSvc, brandSvc, currencySvc,
		priceRepo, partRepo, supplierRepo, uploadLogRepo, nil, 0)
	orderSvc := NewOrderService(brandSvc, currencySvc,
		partRepo, priceRepo, supplierRepo, deliveryRepo, expectedRepo)

	return &testServices{
		db:          db,
		brandSvc:    brandSvc,
		catalogSvc:  catalogSvc,
		currencySvc: currencySvc,
		priceSvc:    priceSvc,
		orderSvc:    orderSvc,
		expectedSvc: NewExpectedPriceService(brandSvc, expectedRepo, uploadLogRepo),
		statSvc:     NewSalesStatService(brandSvc, statRepo, uploadLogRepo),
		supplierSvc: NewSupplierService(supplierRepo, priceRepo),

		brandRepo:    brandRepo,
		partRepo:     partRepo,
		priceRepo:    priceRepo,
		rateRepo:     rateRepo,
		deliveryRepo: deliveryRepo,
		supplierRepo: supplierRepo,
		expectedRepo: expectedRepo,
	}
}

// mustRegion / mustSupplier 测试数据快捷构造

func (ts *testServices) mustRegion(t *testing.T, name string) *model.Region {
	region := &model.Region{Name: name}
	if err := ts.db.Create(region).Error; err != nil {
		t.Fatalf("创建区域失败: %v", err)
	}
	return region
}

func (ts *testServices) mustSupplier(t *testing.T, name string, regionID int64, currency string) *model.Supplier {
	supplier := &model.Supplier{Name: name, RegionID: regionID, Currency: currency}
	if err := ts.db.Create(supplier).Error; err != nil {
		t.Fatalf("创建供应商失败: %v", err)
	}
	return supplier
}

func (ts *testServices) mustRate(t *testing.T, code string, rate float64) {
	if err := ts.db.Create(&model.CurrencyRate{CurrencyCode: code, RateToBase: rate}).Error; err != nil {
		t.Fatalf("创建汇率失败: %v", err)
	}
}

// mustPriceList 建批次并塞入 (partID, price) 报价
func (ts *testServices) mustPriceList(t *testing.T, supplierID int64, uploadDate time.Time, prices map[int64]float64) *model.PriceList {
	list := &model.PriceList{
		SupplierID: supplierID,
		UploadDate: uploadDate,
		IsActive:   true,
	}
	if err := ts.db.Create(list).Error; err != nil {
		t.Fatalf("创建价格表失败: %v", err)
	}
	for partID, price := range prices {
		if err := ts.db.Create(&model.Price{PriceListID: list.ID, PartID: partID, Price: price}).Error; err != nil {
			t.Fatalf("创建报价失败: %v", err)
		}
	}
	return list
}
