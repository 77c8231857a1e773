package repository

import (
	"context"
	"os"
	"testing"

	"go_4_vocab_learn/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// REDIS_ADDR が設定されているときだけ実行する
func Test_redisKeyValueRepository(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, addr, 0)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	repo := NewRedisKeyValueRepository(rdb)
	key := "test:" + uuid.NewString()
	t.Cleanup(func() { rdb.Del(context.Background(), key) })

	require.NoError(t, repo.Ping(ctx))

	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.Set(ctx, key, "v1"))
	require.NoError(t, repo.Set(ctx, key, "v2"))
	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}

func TestNewRedisClient_MissingAddr(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "", 0)
	assert.Error(t, err)
}
