package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"cinecluster/internal/logging"
)

// lo que vive en memoria cuando el valor vino de Redis
const backfillTTL = time.Minute

// Cache guarda valores JSON en dos niveles: memoria local (ristretto) y,
// si está configurado, Redis compartido entre réplicas.
type Cache struct {
	mem *ristretto.Cache[string, []byte]
	rdb *redis.Client
}

// New crea la cache. rdb puede ser nil (solo memoria).
func New(rdb *redis.Client) (*Cache, error) {
	mem, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 100_000,
		MaxCost:     32 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creando cache en memoria: %w", err)
	}
	return &Cache{mem: mem, rdb: rdb}, nil
}

// ConnectRedis abre el cliente y hace ping. addr vacío = sin Redis.
func ConnectRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectando a Redis %s: %w", addr, err)
	}

	logging.Info().Str("addr", addr).Msg("[cache] Redis OK")
	return client, nil
}

// =======================================================
//  Helpers JSON para usar desde los servicios
// =======================================================

// GetJSON busca la key; si existe deserializa el JSON en `dest`.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if b, ok := c.mem.Get(key); ok {
		return true, json.Unmarshal(b, dest)
	}
	if c.rdb == nil {
		return false, nil
	}

	val, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	c.mem.SetWithTTL(key, val, int64(len(val)), backfillTTL)
	c.mem.Wait()
	return true, nil
}

// SetJSON serializa `value` y lo guarda con el TTL dado en ambos niveles.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mem.SetWithTTL(key, b, int64(len(b)), ttl)
	c.mem.Wait()

	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// Delete borra la key de ambos niveles.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mem.Del(key)
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}

func (c *Cache) Close() error {
	c.mem.Close()
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}
