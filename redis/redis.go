package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

const slotCacheTTL = 60 * time.Second

// DayVersion returns the cache version for a professional's day. Slot cache
// keys embed the version, so bumping it on every booking write invalidates
// all cached slot lists for that day without key scans.
func DayVersion(ctx context.Context, companyID, professionalID uint, date string) int64 {
	if Client == nil {
		return 0
	}
	v, err := Client.Get(ctx, versionKey(companyID, professionalID, date)).Int64()
	if err != nil {
		return 0
	}
	return v
}

// BumpDayVersion invalidates cached slot lists for a professional's day.
func BumpDayVersion(ctx context.Context, companyID, professionalID uint, date string) {
	if Client == nil {
		return
	}
	Client.Incr(ctx, versionKey(companyID, professionalID, date))
}

// GetCachedSlots fetches a cached slot list; ok is false on miss or when
// redis is unavailable.
func GetCachedSlots(ctx context.Context, key string) ([]string, bool) {
	if Client == nil {
		return nil, false
	}
	raw, err := Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// StoreCachedSlots caches a slot list with a short TTL; slot lists are
// advisory, so staleness past the version bump is tolerable.
func StoreCachedSlots(ctx context.Context, key string, slots []string) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	Client.Set(ctx, key, raw, slotCacheTTL)
}

// SlotCacheKey builds the versioned cache key for one professional's slot
// list.
func SlotCacheKey(companyID, professionalID uint, date, service string, duration int, version int64) string {
	return fmt.Sprintf("slots:%d:%d:%s:%s:%d:v%d", companyID, professionalID, date, service, duration, version)
}

func versionKey(companyID, professionalID uint, date string) string {
	return fmt.Sprintf("slotsver:%d:%d:%s", companyID, professionalID, date)
}
