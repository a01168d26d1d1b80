package utils

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheTTL 读缓存默认有效期
const DefaultCacheTTL = time.Hour

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// TagCache 全局本地缓存封装
// 每个 key 可以挂在一个或多个逻辑 tag 下，写操作按 tag 整体失效，
// 宁可多清也不提供过期数据
type TagCache struct {
	lruCache *lru.Cache[string, CacheItem]

	mu      sync.Mutex
	tagKeys map[string]map[string]struct{} // tag -> keys
	keyTags map[string][]string            // key -> tags，用于淘汰时清理索引
}

var (
	cacheInstance *TagCache
	cacheOnce     sync.Once
)

// GetCache 获取单例缓存实例
func GetCache() *TagCache {
	cacheOnce.Do(func() {
		c := &TagCache{
			tagKeys: make(map[string]map[string]struct{}),
			keyTags: make(map[string][]string),
		}
		// 容量 500，LRU 淘汰时同步清理 tag 索引
		l, err := lru.NewWithEvict[string, CacheItem](500, func(key string, _ CacheItem) {
			c.mu.Lock()
			c.forgetKeyLocked(key)
			c.mu.Unlock()
		})
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		c.lruCache = l
		cacheInstance = c
	})
	return cacheInstance
}

// Set 设置缓存并注册到对应的 tag 下
func (c *TagCache) Set(key string, data interface{}, ttl time.Duration, tags ...string) {
	c.mu.Lock()
	c.forgetKeyLocked(key)
	for _, tag := range tags {
		if c.tagKeys[tag] == nil {
			c.tagKeys[tag] = make(map[string]struct{})
		}
		c.tagKeys[tag][key] = struct{}{}
	}
	c.keyTags[key] = tags
	c.mu.Unlock()

	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *TagCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	// 检查过期
	if time.Now().After(val.ExpiresAt) {
		c.Delete(key)
		return nil
	}

	return val.Data
}

// Delete 删除指定缓存
func (c *TagCache) Delete(key string) {
	c.lruCache.Remove(key)
	c.mu.Lock()
	c.forgetKeyLocked(key)
	c.mu.Unlock()
}

// InvalidateTags 使若干 tag 下的全部缓存失效
func (c *TagCache) InvalidateTags(tags ...string) {
	c.mu.Lock()
	var keys []string
	for _, tag := range tags {
		for key := range c.tagKeys[tag] {
			keys = append(keys, key)
		}
		delete(c.tagKeys, tag)
	}
	for _, key := range keys {
		delete(c.keyTags, key)
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.lruCache.Remove(key)
	}
}

// Purge 清空全部缓存（测试用）
func (c *TagCache) Purge() {
	c.lruCache.Purge()
	c.mu.Lock()
	c.tagKeys = make(map[string]map[string]struct{})
	c.keyTags = make(map[string][]string)
	c.mu.Unlock()
}

// forgetKeyLocked 从 tag 索引中移除 key，调用方必须持有 c.mu
func (c *TagCache) forgetKeyLocked(key string) {
	for _, tag := range c.keyTags[key] {
		if keys := c.tagKeys[tag]; keys != nil {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tagKeys, tag)
			}
		}
	}
	delete(c.keyTags, key)
}
