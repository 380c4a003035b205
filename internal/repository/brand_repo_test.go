package repository

import (
	"context"
	"testing"

	"autoparts_erp_v1_202608/internal/model"
)

func TestBrandRepo_FindByNormalizedName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBrandRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &model.Brand{Name: "Bosch"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 查找键是归一化后的大写形式
	brand, err := repo.FindByNormalizedName(ctx, "BOSCH")
	if err != nil {
		t.Fatalf("FindByNormalizedName() error = %v", err)
	}
	if brand == nil || brand.Name != "Bosch" {
		t.Errorf("brand = %+v, want Bosch", brand)
	}

	// 未命中返回 (nil, nil) 而不是错误
	brand, err = repo.FindByNormalizedName(ctx, "SACHS")
	if err != nil || brand != nil {
		t.Errorf("未命中 = (%+v, %v), want (nil, nil)", brand, err)
	}
}

func TestBrandRepo_CreateSynonym_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBrandRepository(db)
	ctx := context.Background()

	brand := &model.Brand{Name: "Mercedes-Benz"}
	repo.Create(ctx, brand)

	if err := repo.CreateSynonym(ctx, brand.ID, "MB"); err != nil {
		t.Fatalf("CreateSynonym() error = %v", err)
	}
	// 重复创建按成功处理
	if err := repo.CreateSynonym(ctx, brand.ID, "MB"); err != nil {
		t.Fatalf("重复 CreateSynonym() error = %v", err)
	}

	synonyms, err := repo.ListSynonyms(ctx)
	if err != nil {
		t.Fatalf("ListSynonyms() error = %v", err)
	}
	if len(synonyms) != 1 {
		t.Errorf("同义词条数 = %d, want 1", len(synonyms))
	}

	found, err := repo.FindSynonym(ctx, "MB")
	if err != nil {
		t.Fatalf("FindSynonym() error = %v", err)
	}
	if found == nil || found.BrandID != brand.ID {
		t.Errorf("synonym = %+v, want 指向品牌 %d", found, brand.ID)
	}
}
