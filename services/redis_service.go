package services

import (
	"context"
	"encoding/json"
	"fmt"
	"reims-http-service/config"
	"time"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheKPISnapshot(snapshot interface{}, expiration time.Duration) error
	GetKPISnapshot(dest interface{}) error
	CacheFinancialSeries(propertyID uint, series interface{}, expiration time.Duration) error
	GetFinancialSeries(propertyID uint, dest interface{}) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheKPISnapshot caches the dashboard KPI snapshot with expiration
func (s *RedisService) CacheKPISnapshot(snapshot interface{}, expiration time.Duration) error {
	return s.Set("kpi:financial", snapshot, expiration)
}

// GetKPISnapshot gets the dashboard KPI snapshot from cache
func (s *RedisService) GetKPISnapshot(dest interface{}) error {
	return s.Get("kpi:financial", dest)
}

// CacheFinancialSeries caches a property's monthly financial series
func (s *RedisService) CacheFinancialSeries(propertyID uint, series interface{}, expiration time.Duration) error {
	return s.Set(financialSeriesKey(propertyID), series, expiration)
}

// GetFinancialSeries gets a property's monthly financial series from cache
func (s *RedisService) GetFinancialSeries(propertyID uint, dest interface{}) error {
	return s.Get(financialSeriesKey(propertyID), dest)
}

func financialSeriesKey(propertyID uint) string {
	return fmt.Sprintf("financials:%d", propertyID)
}
