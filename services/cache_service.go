package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService = read cache บน Redis + invalidation หลัง mutation
// ถ้าไม่ตั้ง REDIS_ADDR จะเป็น no-op ทั้งตัว ระบบหลักต้องทำงานได้โดยไม่มี cache
type CacheService struct {
	client *redis.Client
}

const cacheOpTimeout = 2 * time.Second

func NewCacheService(addr, password string, db int) *CacheService {
	if addr == "" {
		return &CacheService{}
	}
	return &CacheService{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *CacheService) Enabled() bool { return c.client != nil }

// GetJSON อ่าน key แล้ว unmarshal ใส่ dest — คืน false ถ้า miss
func (c *CacheService) GetJSON(key string, dest any) bool {
	if c.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *CacheService) SetJSON(key string, v any, ttl time.Duration) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("cache encode %s: %v", key, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

// Invalidate ลบ key หลัง mutation — พังก็แค่ log ห้ามลาม business operation
func (c *CacheService) Invalidate(keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidate %v: %v", keys, err)
	}
}

func (c *CacheService) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
