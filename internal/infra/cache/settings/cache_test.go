package settings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	_, found, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	err = cache.Set(ctx, &domain.Settings{
		BookingDurationDays: 5,
		CommissionPercentages: map[int]decimal.Decimal{
			1: decimal.NewFromInt(10),
			2: decimal.RequireFromString("2.5"),
		},
	})
	require.NoError(t, err)
	assert.True(t, mr.Exists(DefaultKey))

	got, found, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 5, got.BookingDurationDays)
	pct, ok := got.CommissionPercentage(2)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("2.5").Equal(pct))
}

func TestCache_TTLAndInvalidate(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, domain.DefaultSettings()))
	assert.Equal(t, time.Minute, mr.TTL(DefaultKey))

	require.NoError(t, cache.Invalidate(ctx))
	_, found, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, domain.DefaultSettings()))
	mr.FastForward(2 * time.Minute)
	_, found, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Errors(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(DefaultKey, "{not json"))
	_, _, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCorruptedEntry)

	require.NoError(t, mr.Set(DefaultKey, `{"bookingDurationDays":0,"commissionPercentages":{}}`))
	_, found, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCorruptedEntry)
	assert.False(t, found)

	mr.Close()
	_, _, err = cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheUnavailable)
}
