package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
)

const testProductID = "7a0f2d5e-9c41-4f7b-8a36-5d1e9b7c2f10"

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr
}

func TestGetProductCacheHit(t *testing.T) {
	setupRedis(t)

	pid, err := gocql.ParseUUID(testProductID)
	require.NoError(t, err)
	seeded := models.Product{
		ID:    pid,
		Name:  "huipil",
		Slug:  "huipil",
		Price: decimal.RequireFromString("120.50"),
		Stock: 3,
	}
	seeded.Derive()
	data, err := json.Marshal(seeded)
	require.NoError(t, err)
	require.NoError(t, database.Redis.Set(context.Background(),
		"product:"+testProductID, data, time.Minute).Err())

	product, err := GetProduct(testProductID)
	require.NoError(t, err)
	assert.Equal(t, "huipil", product.Name)
	assert.Equal(t, "120.50", product.Price.StringFixed(2))
	assert.True(t, product.InStock)
}

func TestGetProductRejectsBadID(t *testing.T) {
	setupRedis(t)

	_, err := GetProduct("pas-un-uuid")
	assert.Error(t, err)
}

func TestInvalidateProduct(t *testing.T) {
	mr := setupRedis(t)
	mr.Set("product:"+testProductID, `{"name":"huipil"}`)

	InvalidateProduct(testProductID)
	assert.False(t, mr.Exists("product:"+testProductID))
}
