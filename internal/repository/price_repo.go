package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"autoparts_erp_v1_202608/internal/model"
)

// Observation 报价观测的展平视图：价格 + 供应商/区域/币种元数据
// 比价逻辑只消费这个结构，不直接碰表
type Observation struct {
	PartID       int64
	SupplierID   int64
	SupplierName string
	RegionID     int64
	RegionName   string
	Currency     string
	Price        float64
	PriceListID  int64
	UploadDate   time.Time
}

// PriceRepository 价格存储：批次 + 只追加的观测记录
type PriceRepository interface {
	CreateList(ctx context.Context, list *model.PriceList) error
	GetList(ctx context.Context, id int64) (*model.PriceList, error)
	ListLists(ctx context.Context) ([]model.PriceList, error)
	SetListActive(ctx context.Context, id int64, active bool) error
	UpdateListDescription(ctx context.Context, id int64, description string) error
	CountListsForSupplier(ctx context.Context, supplierID int64) (int64, error)

	InsertObservation(ctx context.Context, price *model.Price) error
	CountForPart(ctx context.Context, partID int64) (int64, error)

	// ActiveAll 全部活跃观测，按批次日期升序（同日期按插入顺序）
	ActiveAll(ctx context.Context) ([]Observation, error)
	// ActiveForParts 指定配件的全部活跃观测，排序同上
	ActiveForParts(ctx context.Context, partIDs []int64) ([]Observation, error)
	// ActiveForSupplier 指定供应商的全部活跃观测
	ActiveForSupplier(ctx context.Context, supplierID int64) ([]Observation, error)
	// ForList 指定批次的观测（不看 is_active，分析批次本身时用）
	ForList(ctx context.Context, priceListID int64) ([]Observation, error)
	// PreviousObservation 严格早于 before 的最近一次活跃报价，用于环比
	PreviousObservation(ctx context.Context, supplierID, partID int64, before time.Time) (*Observation, error)
}

type priceRepo struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepo{db: db}
}

func (r *priceRepo) CreateList(ctx context.Context, list *model.PriceList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *priceRepo) GetList(ctx context.Context, id int64) (*model.PriceList, error) {
	var list model.PriceList
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Supplier.Region").
		First(&list, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *priceRepo) ListLists(ctx context.Context) ([]model.PriceList, error) {
	var lists []model.PriceList
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Supplier.Region").
		Order("upload_date DESC").
		Find(&lists).Error
	return lists, err
}

func (r *priceRepo) SetListActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.PriceList{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *priceRepo) UpdateListDescription(ctx context.Context, id int64, description string) error {
	return r.db.WithContext(ctx).
		Model(&model.PriceList{}).
		Where("id = ?", id).
		Update("description", description).Error
}

func (r *priceRepo) CountListsForSupplier(ctx context.Context, supplierID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PriceList{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count, err
}

func (r *priceRepo) InsertObservation(ctx context.Context, price *model.Price) error {
	return r.db.WithContext(ctx).Create(price).Error
}

func (r *priceRepo) CountForPart(ctx context.Context, partID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Price{}).
		Where("part_id = ?", partID).
		Count(&count).Error
	return count, err
}

// observationQuery 观测视图的公共 join 部分
func (r *priceRepo) observationQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Price{}).
		Select(`prices.part_id AS part_id,
			suppliers.id AS supplier_id,
			suppliers.name AS supplier_name,
			suppliers.region_id AS region_id,
			regions.name AS region_name,
			suppliers.currency AS currency,
			prices.price AS price,
			price_lists.id AS price_list_id,
			price_lists.upload_date AS upload_date`).
		Joins("JOIN price_lists ON price_lists.id = prices.price_list_id AND price_lists.deleted_at IS NULL").
		Joins("JOIN suppliers ON suppliers.id = price_lists.supplier_id").
		Joins("JOIN regions ON regions.id = suppliers.region_id")
}

func (r *priceRepo) ActiveAll(ctx context.Context) ([]Observation, error) {
	var obs []Observation
	err := r.observationQuery(ctx).
		Where("price_lists.is_active = ?", true).
		Order("price_lists.upload_date ASC, prices.id ASC").
		Scan(&obs).Error
	return obs, err
}

func (r *priceRepo) ActiveForParts(ctx context.Context, partIDs []int64) ([]Observation, error) {
	if len(partIDs) == 0 {
		return nil, nil
	}
	var obs []Observation
	err := r.observationQuery(ctx).
		Where("price_lists.is_active = ?", true).
		Where("prices.part_id IN ?", partIDs).
		Order("price_lists.upload_date ASC, prices.id ASC").
		Scan(&obs).Error
	return obs, err
}

func (r *priceRepo) ActiveForSupplier(ctx context.Context, supplierID int64) ([]Observation, error) {
	var obs []Observation
	err := r.observationQuery(ctx).
		Where("price_lists.is_active = ?", true).
		Where("price_lists.supplier_id = ?", supplierID).
		Order("price_lists.upload_date ASC, prices.id ASC").
		Scan(&obs).Error
	return obs, err
}

func (r *priceRepo) ForList(ctx context.Context, priceListID int64) ([]Observation, error) {
	var obs []Observation
	err := r.observationQuery(ctx).
		Where("price_lists.id = ?", priceListID).
		Order("prices.id ASC").
		Scan(&obs).Error
	return obs, err
}

func (r *priceRepo) PreviousObservation(ctx context.Context, supplierID, partID int64, before time.Time) (*Observation, error) {
	var obs []Observation
	err := r.observationQuery(ctx).
		Where("price_lists.is_active = ?", true).
		Where("price_lists.supplier_id = ?", supplierID).
		Where("prices.part_id = ?", partID).
		Where("price_lists.upload_date < ?", before).
		Order("price_lists.upload_date DESC, prices.id DESC").
		Limit(1).
		Scan(&obs).Error
	if err != nil || len(obs) == 0 {
		return nil, err
	}
	return &obs[0], nil
}
