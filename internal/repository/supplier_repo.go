package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autoparts_erp_v1_202608/internal/model"
)

// SupplierRepository 供应商与区域
type SupplierRepository interface {
	CreateSupplier(ctx context.Context, supplier *model.Supplier) error
	GetSupplier(ctx context.Context, id int64) (*model.Supplier, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error

	CreateRegion(ctx context.Context, region *model.Region) error
	ListRegions(ctx context.Context) ([]model.Region, error)
	DeleteRegion(ctx context.Context, id int64) error
	CountSuppliersInRegion(ctx context.Context, regionID int64) (int64, error)
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) CreateSupplier(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepo) GetSupplier(ctx context.Context, id int64) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.WithContext(ctx).Preload("Region").First(&supplier, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).
		Preload("Region").
		Order("name").
		Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) DeleteSupplier(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Supplier{}, id).Error
}

func (r *supplierRepo) CreateRegion(ctx context.Context, region *model.Region) error {
	return r.db.WithContext(ctx).Create(region).Error
}

func (r *supplierRepo) ListRegions(ctx context.Context) ([]model.Region, error) {
	var regions []model.Region
	err := r.db.WithContext(ctx).Order("name").Find(&regions).Error
	return regions, err
}

func (r *supplierRepo) DeleteRegion(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Region{}, id).Error
}

func (r *supplierRepo) CountSuppliersInRegion(ctx context.Context, regionID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Supplier{}).
		Where("region_id = ?", regionID).
		Count(&count).Error
	return count, err
}
