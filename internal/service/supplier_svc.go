package service

import (
	"context"
	"strings"

	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
)

// SupplierService 供应商与采购区域维护
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	priceRepo    repository.PriceRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository, priceRepo repository.PriceRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		priceRepo:    priceRepo,
	}
}

func (s *SupplierService) CreateSupplier(ctx context.Context, supplier *model.Supplier) error {
	supplier.Name = strings.TrimSpace(supplier.Name)
	if supplier.Name == "" || supplier.RegionID == 0 {
		return ErrInvalidInput
	}
	if supplier.Currency == "" {
		supplier.Currency = DefaultBaseCurrency
	}
	return s.supplierRepo.CreateSupplier(ctx, supplier)
}

func (s *SupplierService) GetSupplier(ctx context.Context, id int64) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrNotFound
	}
	return supplier, nil
}

func (s *SupplierService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	return s.supplierRepo.ListSuppliers(ctx)
}

// DeleteSupplier 已有价格表的供应商不能删，历史报价要留
func (s *SupplierService) DeleteSupplier(ctx context.Context, id int64) error {
	if _, err := s.GetSupplier(ctx, id); err != nil {
		return err
	}
	count, err := s.priceRepo.CountListsForSupplier(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return s.supplierRepo.DeleteSupplier(ctx, id)
}

func (s *SupplierService) CreateRegion(ctx context.Context, region *model.Region) error {
	region.Name = strings.TrimSpace(region.Name)
	if region.Name == "" {
		return ErrInvalidInput
	}
	return s.supplierRepo.CreateRegion(ctx, region)
}

func (s *SupplierService) ListRegions(ctx context.Context) ([]model.Region, error) {
	return s.supplierRepo.ListRegions(ctx)
}

// DeleteRegion 还挂着供应商的区域不能删
func (s *SupplierService) DeleteRegion(ctx context.Context, id int64) error {
	count, err := s.supplierRepo.CountSuppliersInRegion(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return s.supplierRepo.DeleteRegion(ctx, id)
}
