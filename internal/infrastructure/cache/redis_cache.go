// Package cache implementa ports.SuggestionCache: Redis cuando hay REDIS_ADDR, no-op si no.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/SellerOps-api/internal/application/ports"
	"github.com/jhoicas/SellerOps-api/pkg/config"
)

var (
	_ ports.SuggestionCache = (*RedisSuggestionCache)(nil)
	_ ports.SuggestionCache = NoopSuggestionCache{}
)

const keyPrefix = "sellerops:suggestion"

// RedisSuggestionCache guarda la última recomendación por usuario y tipo con TTL.
type RedisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSuggestionCache crea el cliente. No conecta hasta la primera operación.
func NewRedisSuggestionCache(cfg config.RedisConfig) *RedisSuggestionCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisSuggestionCache{client: client, ttl: cfg.TTL}
}

// Key clave Redis de la recomendación de un usuario.
func Key(userID, recType string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, recType)
}

// Get devuelve ports.ErrCacheMiss si la clave no existe o expiró.
func (c *RedisSuggestionCache) Get(ctx context.Context, userID, recType string) (string, error) {
	val, err := c.client.Get(ctx, Key(userID, recType)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

// Set reemplaza el valor y renueva el TTL. TTL 0 = sin expiración.
func (c *RedisSuggestionCache) Set(ctx context.Context, userID, recType, content string) error {
	if err := c.client.Set(ctx, Key(userID, recType), content, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping verifica la conexión (keep-alive).
func (c *RedisSuggestionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close libera las conexiones.
func (c *RedisSuggestionCache) Close() error {
	return c.client.Close()
}

// NoopSuggestionCache caché deshabilitada: siempre miss, Set descarta.
type NoopSuggestionCache struct{}

func (NoopSuggestionCache) Get(_ context.Context, _, _ string) (string, error) {
	return "", ports.ErrCacheMiss
}

func (NoopSuggestionCache) Set(_ context.Context, _, _, _ string) error { return nil }

func (NoopSuggestionCache) Ping(_ context.Context) error { return nil }
