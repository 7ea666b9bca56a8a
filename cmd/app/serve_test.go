package main

import (
	"context"
	"testing"

	dbadapter "postboard/internal/adapters/database"
	memadapter "postboard/internal/adapters/memory"
	"postboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStoreMemory(t *testing.T) {
	repo, closeStore, err := openStore(context.Background(), &config.Config{StoreDriver: config.DriverMemory})
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &memadapter.PostRepositoryMemory{}, repo)
}

func TestOpenStoreSQLite(t *testing.T) {
	repo, closeStore, err := openStore(context.Background(), &config.Config{
		StoreDriver: config.DriverSQLite,
		DBDSN:       "file:serve_test?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &dbadapter.PostRepositoryDatabase{}, repo)

	p, err := repo.Create(context.Background(), "alice", "hello")
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Content)
}

func TestOpenStoreRedisUnreachable(t *testing.T) {
	_, _, err := openStore(context.Background(), &config.Config{
		StoreDriver: config.DriverRedis,
		RedisAddr:   "127.0.0.1:1",
	})
	assert.Error(t, err)
}
