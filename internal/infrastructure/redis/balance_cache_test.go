package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/domain/inventory"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/internal/infrastructure/redis"
	"github.com/ICEI-PUC-Minas-PSG-ADS-TI/psg-ads-2025-2-p5-proj-tiai-t1-brechobeneficente-sub000/pkg/logger"
)

func newCache(t *testing.T, ttl time.Duration) (*redis.BalanceCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewBalanceCache(client, ttl, logger.Nop()), mr
}

// set guarda el saldo con la versión vigente.
func set(t *testing.T, cache *redis.BalanceCache, id string, b inventory.Balance) {
	t.Helper()
	ctx := context.Background()
	v, err := cache.Version(ctx, id)
	require.NoError(t, err)
	stored, err := cache.SetIfVersion(ctx, id, b, v)
	require.NoError(t, err)
	require.True(t, stored)
}

func TestBalanceCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t, time.Minute)

	_, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	want := inventory.Balance{Entradas: 10, Saidas: 3, Total: 7}
	stored, err := cache.SetIfVersion(ctx, "p1", want, 0)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.True(t, mr.Exists("estoque:saldo:p1"))

	got, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestBalanceCache_TTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t, 30*time.Second)

	set(t, cache, "p1", inventory.Balance{Entradas: 1, Total: 1})
	assert.Equal(t, 30*time.Second, mr.TTL("estoque:saldo:p1"))

	mr.FastForward(31 * time.Second)
	_, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBalanceCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t, time.Minute)

	set(t, cache, "p1", inventory.Balance{Total: 1})
	set(t, cache, "p2", inventory.Balance{Total: 2})
	require.NoError(t, cache.Invalidate(ctx, "p1", "p2", "p3"))
	require.NoError(t, cache.Invalidate(ctx))

	for _, id := range []string{"p1", "p2"} {
		_, ok, err := cache.Get(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok, id)
	}
}

func TestBalanceCache_InvalidateRechazaVersionAnterior(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t, time.Minute)

	v0, err := cache.Version(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v0)

	// Un escritor confirma e invalida mientras el lector calcula con v0.
	require.NoError(t, cache.Invalidate(ctx, "p1"))
	v1, err := cache.Version(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	stored, err := cache.SetIfVersion(ctx, "p1", inventory.Balance{Entradas: 5, Total: 5}, v0)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists("estoque:saldo:p1"))

	stored, err = cache.SetIfVersion(ctx, "p1", inventory.Balance{Entradas: 5, Saidas: 5}, v1)
	require.NoError(t, err)
	assert.True(t, stored)
	got, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, inventory.Balance{Entradas: 5, Saidas: 5}, got)
}

func TestBalanceCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t, time.Minute)

	require.NoError(t, mr.Set("estoque:saldo:p1", "{no-json"))
	_, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("estoque:saldo:p1"))
}

func TestBalanceCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t, time.Minute)
	mr.Close()

	_, _, err := cache.Get(ctx, "p1")
	assert.Error(t, err)
}
