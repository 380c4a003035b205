package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autoparts_erp_v1_202608/internal/model"
)

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
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}
