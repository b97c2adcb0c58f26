// Package sessionstore adaptadores de persistencia de sesiones: memoria (una instancia)
// y Redis (varias instancias detrás de un balanceador).
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/micla/access-console/internal/application/ports"
	"github.com/micla/access-console/internal/domain"
	"github.com/micla/access-console/internal/domain/entity"
)

// RedisConfig conexión a Redis.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Redis store de sesiones en Redis: una clave por sesión con el JSON de la sesión y ttl.
type Redis struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedis conecta y hace ping con timeout corto.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return NewRedisWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisWithClient usa un cliente ya creado.
func NewRedisWithClient(client *redis.Client, keyPrefix string) *Redis {
	if keyPrefix == "" {
		keyPrefix = "console:session:"
	}
	return &Redis{client: client, keyPrefix: keyPrefix}
}

func (r *Redis) key(id string) string {
	return r.keyPrefix + id
}

// Get lee y decodifica la sesión; redis.Nil se traduce a domain.ErrNoSession.
func (r *Redis) Get(ctx context.Context, id string) (*entity.Session, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get: %w", err)
	}
	var s entity.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("redis: decodificar sesión: %w", err)
	}
	return &s, nil
}

// Save guarda la sesión con ttl.
func (r *Redis) Save(ctx context.Context, s *entity.Session, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redis: codificar sesión: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set: %w", err)
	}
	return nil
}

// Delete elimina la sesión.
func (r *Redis) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis: del: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (r *Redis) Close() error {
	return r.client.Close()
}

var _ ports.SessionStore = (*Redis)(nil)
