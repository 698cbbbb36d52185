package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"

	"bloodbank-backend/shared/config"
)

// CacheManager holds the Redis connection used for dashboard stats snapshots.
// Redis being unreachable degrades every lookup to a miss.
type CacheManager struct {
	client *redis.Client
	ctx    context.Context
}

const statsKey = "bloodbank:stats:snapshot"

var globalCacheManager *CacheManager

// InitCacheManager initializes the global cache manager
func InitCacheManager() error {
	cfg := config.GetConfig()

	redisDB, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		log.Printf("❌ Invalid Redis DB number: %s, using default 0", cfg.RedisDB)
		redisDB = 0
	}

	// Create Redis client
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       redisDB,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	globalCacheManager = &CacheManager{
		client: client,
		ctx:    ctx,
	}

	log.Printf("✅ Redis Cache Manager initialized successfully - %s:%s DB:%d",
		cfg.RedisHost, cfg.RedisPort, redisDB)

	return nil
}

// GetCacheManager returns the global cache manager instance, or nil when
// Redis is not available.
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		if err := InitCacheManager(); err != nil {
			log.Printf("❌ Failed to initialize cache manager: %v", err)
			return nil
		}
	}
	return globalCacheManager
}

// GetStats loads the cached stats snapshot into out; false means miss.
func (cm *CacheManager) GetStats(out interface{}) bool {
	if cm == nil {
		return false
	}

	data, err := cm.client.Get(cm.ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("❌ Stats cache read failed: %v", err)
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("❌ Stats cache payload invalid, dropping: %v", err)
		cm.InvalidateStats()
		return false
	}

	return true
}

// SetStats stores a stats snapshot with the configured TTL.
func (cm *CacheManager) SetStats(v interface{}) {
	if cm == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("❌ Stats cache marshal failed: %v", err)
		return
	}

	ttl := config.GetConfig().GetStatsCacheTTL()
	if err := cm.client.Set(cm.ctx, statsKey, data, ttl).Err(); err != nil {
		log.Printf("❌ Stats cache write failed: %v", err)
	}
}

// InvalidateStats drops the cached snapshot; called after lifecycle mutations.
func (cm *CacheManager) InvalidateStats() {
	if cm == nil {
		return
	}

	if err := cm.client.Del(cm.ctx, statsKey).Err(); err != nil {
		log.Printf("❌ Stats cache invalidation failed: %v", err)
	}
}

// Close closes the Redis connection
func (cm *CacheManager) Close() error {
	if cm == nil || cm.client == nil {
		return nil
	}
	return cm.client.Close()
}
