// Package redis implementa la caché de saldos del libro de stock sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	appinv "github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/application/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/logger"
)

// KeyPrefix prefijo de las claves de saldo.
const KeyPrefix = "estoque:saldo:"

var _ appinv.BalanceCache = (*BalanceCache)(nil)

// BalanceCache guarda saldos serializados en JSON con TTL.
type BalanceCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
	log    *logger.Logger
}

// NewBalanceCache construye la caché. ttl <= 0 deja las claves sin expiración.
func NewBalanceCache(client goredis.UniversalClient, ttl time.Duration, log *logger.Logger) *BalanceCache {
	if ttl < 0 {
		ttl = 0
	}
	return &BalanceCache{client: client, ttl: ttl, log: log.Component("balance_cache")}
}

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Key clave de Redis para el saldo de un producto.
func Key(productID string) string { return KeyPrefix + productID }

// VersionKey clave del contador de invalidaciones de un producto.
func VersionKey(productID string) string { return KeyPrefix + "ver:" + productID }

// Get devuelve (saldo, true) en acierto y (cero, false) en fallo de caché.
func (c *BalanceCache) Get(ctx context.Context, productID string) (inventory.Balance, bool, error) {
	data, err := c.client.Get(ctx, Key(productID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return inventory.Balance{}, false, nil
		}
		return inventory.Balance{}, false, fmt.Errorf("redis get: %w", err)
	}
	var b inventory.Balance
	if err := json.Unmarshal(data, &b); err != nil {
		// Entrada corrupta: se descarta y se trata como fallo
		c.log.Warn().Err(err).Str("product_id", productID).Msg("saldo en caché ilegible")
		_ = c.client.Del(ctx, Key(productID)).Err()
		return inventory.Balance{}, false, nil
	}
	return b, true, nil
}

// Version devuelve la versión actual del saldo; 0 si nunca se invalidó.
func (c *BalanceCache) Version(ctx context.Context, productID string) (int64, error) {
	v, err := c.client.Get(ctx, VersionKey(productID)).Int64()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get version: %w", err)
	}
	return v, nil
}

// SetIfVersion guarda el saldo solo si la versión no cambió desde que se leyó.
// Devuelve false cuando una invalidación se adelantó al cálculo.
func (c *BalanceCache) SetIfVersion(ctx context.Context, productID string, balance inventory.Balance, version int64) (bool, error) {
	data, err := json.Marshal(balance)
	if err != nil {
		return false, fmt.Errorf("marshal balance: %w", err)
	}
	verKey := VersionKey(productID)
	stored := false
	err = c.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, Key(productID), data, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, verKey)
	if errors.Is(err, goredis.TxFailedErr) {
		stored, err = false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis set: %w", err)
	}
	if !stored {
		c.log.Debug().Str("product_id", productID).Int64("version", version).Msg("saldo obsoleto descartado")
		return false, nil
	}
	c.log.Debug().Str("product_id", productID).Dur("ttl", c.ttl).Msg("saldo en caché")
	return true, nil
}

// Invalidate borra los saldos de los productos indicados y avanza su versión.
func (c *BalanceCache) Invalidate(ctx context.Context, productIDs ...string) error {
	if len(productIDs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, id := range productIDs {
			pipe.Incr(ctx, VersionKey(id))
			pipe.Del(ctx, Key(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}
