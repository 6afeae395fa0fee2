package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Inventory item caching
	GetItem(ctx context.Context, businessID, itemID uuid.UUID) (*models.InventoryItem, error)
	SetItem(ctx context.Context, businessID uuid.UUID, item *models.InventoryItem, ttl time.Duration) error
	DeleteItem(ctx context.Context, businessID, itemID uuid.UUID) error

	// Product caching
	GetProduct(ctx context.Context, businessID, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, businessID uuid.UUID, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, businessID, productID uuid.UUID) error

	// Dashboard summary caching
	GetSummary(ctx context.Context, businessID uuid.UUID) (map[string]interface{}, error)
	SetSummary(ctx context.Context, businessID uuid.UUID, summary map[string]interface{}, ttl time.Duration) error
	DeleteSummary(ctx context.Context, businessID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) error

	// Generic string operations for refresh token storage
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port URLs as well as plain host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetItem(ctx context.Context, businessID, itemID uuid.UUID) (*models.InventoryItem, error) {
	key := fmt.Sprintf("restomart:item:%s:%s", businessID.String(), itemID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var item models.InventoryItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *redisCacheService) SetItem(ctx context.Context, businessID uuid.UUID, item *models.InventoryItem, ttl time.Duration) error {
	key := fmt.Sprintf("restomart:item:%s:%s", businessID.String(), item.ID.String())
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteItem(ctx context.Context, businessID, itemID uuid.UUID) error {
	key := fmt.Sprintf("restomart:item:%s:%s", businessID.String(), itemID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetProduct(ctx context.Context, businessID, productID uuid.UUID) (*models.Product, error) {
	key := fmt.Sprintf("restomart:product:%s:%s", businessID.String(), productID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, businessID uuid.UUID, product *models.Product, ttl time.Duration) error {
	key := fmt.Sprintf("restomart:product:%s:%s", businessID.String(), product.ID.String())
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, businessID, productID uuid.UUID) error {
	key := fmt.Sprintf("restomart:product:%s:%s", businessID.String(), productID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetSummary(ctx context.Context, businessID uuid.UUID) (map[string]interface{}, error) {
	key := fmt.Sprintf("restomart:summary:%s", businessID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var summary map[string]interface{}
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *redisCacheService) SetSummary(ctx context.Context, businessID uuid.UUID, summary map[string]interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("restomart:summary:%s", businessID.String())
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteSummary(ctx context.Context, businessID uuid.UUID) error {
	key := fmt.Sprintf("restomart:summary:%s", businessID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Get(ctx, "restomart:ratelimit:"+key).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= limit, nil
}

func (r *redisCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	fullKey := "restomart:ratelimit:" + key
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, window)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
