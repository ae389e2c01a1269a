package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/coldchain/dispatch-optimizer/internal/inventory"
	"github.com/coldchain/dispatch-optimizer/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOracle struct {
	calls  int
	assets []inventory.AssetAvailability
	err    error
}

func (f *fakeOracle) Lookup(_ context.Context, _, _ string) ([]inventory.AssetAvailability, error) {
	f.calls++
	return f.assets, f.err
}

func TestCachedOracle_MissThenHit(t *testing.T) {
	s := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: s.Addr()})

	inner := &fakeOracle{assets: []inventory.AssetAvailability{
		{AssetID: "X", CurrentQuantity: model.Quantity{Value: 5, Unit: "kg"}},
	}}
	cached := inventory.NewCachedOracle(inner, redisClient, time.Minute)

	first, err := cached.Lookup(context.Background(), "W1", "A")
	require.NoError(t, err)
	assert.Equal(t, inner.assets, first)
	assert.Equal(t, 1, inner.calls)

	second, err := cached.Lookup(context.Background(), "W1", "A")
	require.NoError(t, err)
	assert.Equal(t, inner.assets, second)
	assert.Equal(t, 1, inner.calls, "second lookup should be served from cache")
}

func TestCachedOracle_InnerErrorIsNotCached(t *testing.T) {
	s := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: s.Addr()})

	inner := &fakeOracle{err: errors.New("boom")}
	cached := inventory.NewCachedOracle(inner, redisClient, time.Minute)

	_, err := cached.Lookup(context.Background(), "W1", "A")
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)

	_, err = cached.Lookup(context.Background(), "W1", "A")
	assert.Error(t, err)
	assert.Equal(t, 2, inner.calls, "an error response must not be cached")
}

func TestCachedOracle_NilRedisIsPassthrough(t *testing.T) {
	inner := &fakeOracle{assets: []inventory.AssetAvailability{{AssetID: "X"}}}
	cached := inventory.NewCachedOracle(inner, nil, time.Minute)

	_, err := cached.Lookup(context.Background(), "W1", "A")
	require.NoError(t, err)
	_, err = cached.Lookup(context.Background(), "W1", "A")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
