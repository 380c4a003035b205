package service

import (
	"context"
	"log"
	"strings"

	"autoparts_erp_v1_202608/internal/model"
	"autoparts_erp_v1_202608/internal/repository"
	"autoparts_erp_v1_202608/pkg/utils"
)

// BrandService 品牌识别：把供应商文件里的各种品牌写法归一到唯一品牌 ID
type BrandService struct {
	brandRepo repository.BrandRepository
}

func NewBrandService(brandRepo repository.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// Resolve 按归一化键查品牌：先查主表（UPPER(TRIM(name))），再查同义词表
// 找不到返回 ErrNotFound，不会创建任何记录
func (s *BrandService) Resolve(ctx context.Context, rawName string) (int64, error) {
	key := utils.NormalizeBrandKey(rawName)
	if key == "" {
		return 0, ErrNotFound
	}

	brand, err := s.brandRepo.FindByNormalizedName(ctx, key)
	if err != nil {
		return 0, err
	}
	if brand != nil {
		return brand.ID, nil
	}

	synonym, err := s.brandRepo.FindSynonym(ctx, key)
	if err != nil {
		return 0, err
	}
	if synonym != nil {
		return synonym.BrandID, nil
	}
	return 0, ErrNotFound
}

// ResolveOrCreate 查不到就建：展示名保留去空格后的原始大小写；
// 当归一化键和原始大写形式不一致时，顺手登记一条同义词
// 返回 (brandID, created, err)
func (s *BrandService) ResolveOrCreate(ctx context.Context, rawName string) (int64, bool, error) {
	key := utils.NormalizeBrandKey(rawName)
	if key == "" {
		return 0, false, ErrInvalidInput
	}

	id, err := s.Resolve(ctx, rawName)
	if err == nil {
		return id, false, nil
	}
	if err != ErrNotFound {
		return 0, false, err
	}

	brand := &model.Brand{Name: strings.TrimSpace(rawName)}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		// 唯一约束撞车：并发导入同时建同一个品牌，重查一次
		if id, rerr := s.Resolve(ctx, rawName); rerr == nil {
			return id, false, nil
		}
		return 0, false, err
	}
	log.Printf("[BrandService] 新建品牌: %s (ID=%d)", brand.Name, brand.ID)

	if key != strings.ToUpper(rawName) {
		if err := s.brandRepo.CreateSynonym(ctx, brand.ID, key); err != nil {
			return 0, false, err
		}
	}
	return brand.ID, true, nil
}

// ResolveOrCreateCached 带批次缓存的版本，导入循环里用，避免每行都打两次库
func (s *BrandService) ResolveOrCreateCached(ctx context.Context, rawName string, cache *utils.BrandCache) (int64, bool, error) {
	key := utils.NormalizeBrandKey(rawName)
	if cache != nil {
		if id, ok := cache.Get(key); ok {
			return id, false, nil
		}
	}

	id, created, err := s.ResolveOrCreate(ctx, rawName)
	if err != nil {
		return 0, false, err
	}
	if cache != nil {
		cache.Set(key, id)
	}
	return id, created, nil
}

// AddSynonym 手工给已有品牌挂别名，存的是归一化键
func (s *BrandService) AddSynonym(ctx context.Context, brandID int64, rawName string) error {
	key := utils.NormalizeBrandKey(rawName)
	if key == "" {
		return ErrInvalidInput
	}

	brand, err := s.brandRepo.GetByID(ctx, brandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrNotFound
	}

	// 别名不能撞到别的品牌头上
	if existingID, err := s.Resolve(ctx, rawName); err == nil && existingID != brandID {
		return ErrConflict
	}
	return s.brandRepo.CreateSynonym(ctx, brandID, key)
}

func (s *BrandService) DeleteSynonym(ctx context.Context, id int64) error {
	return s.brandRepo.DeleteSynonym(ctx, id)
}

func (s *BrandService) List(ctx context.Context) ([]model.Brand, error) {
	return s.brandRepo.List(ctx)
}

func (s *BrandService) ListSynonyms(ctx context.Context) ([]model.BrandSynonym, error) {
	return s.brandRepo.ListSynonyms(ctx)
}

func (s *BrandService) Get(ctx context.Context, id int64) (*model.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrNotFound
	}
	return brand, nil
}
