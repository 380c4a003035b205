package utils

import (
	"sync"
	"time"
)

// BrandCache 单次导入批次内的品牌缓存
// 同一批次里同名品牌只查一次库；缓存对象由调用方创建并随批次丢弃，
// 不做跨请求的全局缓存（避免脏读刚改过的同义词配置）
type BrandCache struct {
	mu    sync.Mutex
	items map[string]brandCacheItem
	ttl   time.Duration
}

type brandCacheItem struct {
	brandID    int64
	expiration int64
}

// NewBrandCache 创建批次缓存，ttl <= 0 时默认 10 分钟（足够处理一个大文件）
func NewBrandCache(ttl time.Duration) *BrandCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &BrandCache{
		items: make(map[string]brandCacheItem),
		ttl:   ttl,
	}
}

// Get 按归一化键取品牌 ID
func (c *BrandCache) Get(key string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return 0, false
	}
	if time.Now().Unix() > item.expiration {
		delete(c.items, key) // 懒删除
		return 0, false
	}
	return item.brandID, true
}

// Set 记录归一化键 -> 品牌 ID
func (c *BrandCache) Set(key string, brandID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = brandCacheItem{
		brandID:    brandID,
		expiration: time.Now().Add(c.ttl).Unix(),
	}
}
