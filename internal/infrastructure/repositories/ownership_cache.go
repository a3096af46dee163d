package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/agrialert/domain"
)

// OwnershipCacheImpl implements domain.OwnershipCache using Redis. It holds
// resolved farm->farmer and device->farmer lookups so repeated alert
// visibility checks avoid a database round-trip. Entries expire on TTL;
// device entries are invalidated explicitly when a device is reassigned or
// deleted. Farm ownership is immutable, so farm entries only ever expire.
type OwnershipCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOwnershipCache creates a new Redis-backed ownership cache
func NewOwnershipCache(client *redis.Client, ttl time.Duration) domain.OwnershipCache {
	return &OwnershipCacheImpl{client: client, ttl: ttl}
}

func farmOwnerKey(farmID uint) string  { return fmt.Sprintf("own:farm:%d", farmID) }
func deviceOwnerKey(devID uint) string { return fmt.Sprintf("own:device:%d", devID) }

// GetFarmOwner implements domain.OwnershipCache
func (c *OwnershipCacheImpl) GetFarmOwner(ctx context.Context, farmID uint) (uint, bool, error) {
	return c.get(ctx, farmOwnerKey(farmID))
}

// SetFarmOwner implements domain.OwnershipCache
func (c *OwnershipCacheImpl) SetFarmOwner(ctx context.Context, farmID, farmerID uint) error {
	return c.client.Set(ctx, farmOwnerKey(farmID), strconv.FormatUint(uint64(farmerID), 10), c.ttl).Err()
}

// GetDeviceOwner implements domain.OwnershipCache
func (c *OwnershipCacheImpl) GetDeviceOwner(ctx context.Context, deviceID uint) (uint, bool, error) {
	return c.get(ctx, deviceOwnerKey(deviceID))
}

// SetDeviceOwner implements domain.OwnershipCache
func (c *OwnershipCacheImpl) SetDeviceOwner(ctx context.Context, deviceID, farmerID uint) error {
	return c.client.Set(ctx, deviceOwnerKey(deviceID), strconv.FormatUint(uint64(farmerID), 10), c.ttl).Err()
}

// InvalidateDevice implements domain.OwnershipCache
func (c *OwnershipCacheImpl) InvalidateDevice(ctx context.Context, deviceID uint) error {
	return c.client.Del(ctx, deviceOwnerKey(deviceID)).Err()
}

func (c *OwnershipCacheImpl) get(ctx context.Context, key string) (uint, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt ownership cache entry %s: %w", key, err)
	}
	return uint(id), true, nil
}
