package utils

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// Cache 本地 LRU 缓存，条目带 TTL。
// 每次 Purge 都会让代数 +1，读库前取到的代数过期后写入会被丢弃。
type Cache[V any] struct {
	lruCache *lru.Cache[string, CacheItem[V]]
	ttl      time.Duration

	mu  sync.Mutex
	gen uint64
}

// NewCache 创建容量为 size 的缓存
func NewCache[V any](size int, ttl time.Duration) (*Cache[V], error) {
	l, err := lru.New[string, CacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lruCache: l, ttl: ttl}, nil
}

// Generation 返回当前代数，在读取数据源之前调用
func (c *Cache[V]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Set 写入缓存；gen 之后发生过 Purge 则放弃写入并返回 false
func (c *Cache[V]) Set(key string, data V, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.lruCache.Add(key, CacheItem[V]{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	})
	return true
}

// Get 获取缓存，若不存在或已过期则 ok 为 false
func (c *Cache[V]) Get(key string) (v V, ok bool) {
	val, found := c.lruCache.Get(key)
	if !found {
		return v, false
	}

	// 检查过期
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return v, false
	}

	return val.Data, true
}

// Purge 清空全部缓存
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lruCache.Purge()
}
