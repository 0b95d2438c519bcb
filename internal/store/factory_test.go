package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperialtrucks/truck-market/internal/config"
	"github.com/imperialtrucks/truck-market/internal/images"
)

func TestNewFromConfig_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	imgs := images.NewManager(dir)

	s, err := NewFromConfig(ctx, &config.Config{StoreBackend: config.BackendMemory}, imgs)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = NewFromConfig(ctx, &config.Config{StoreBackend: config.BackendIndex, DataDir: dir}, imgs)
	require.NoError(t, err)
	assert.IsType(t, &Index{}, s)

	s, err = NewFromConfig(ctx, &config.Config{StoreBackend: config.BackendFiles, DataDir: dir}, imgs)
	require.NoError(t, err)
	assert.IsType(t, &Files{}, s)

	s, err = NewFromConfig(ctx, &config.Config{StoreBackend: config.BackendRemote, RemoteAPIURL: "http://localhost:9999/api"}, imgs)
	require.NoError(t, err)
	assert.IsType(t, &Remote{}, s)
}

func TestNewFromConfig_RemoteRequiresURL(t *testing.T) {
	_, err := NewFromConfig(context.Background(), &config.Config{StoreBackend: config.BackendRemote}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMOTE_API_URL")
}

func TestNewFromConfig_MongoRequiresURI(t *testing.T) {
	_, err := NewFromConfig(context.Background(), &config.Config{StoreBackend: config.BackendMongo}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}

func TestNewFromConfig_UnknownBackend(t *testing.T) {
	_, err := NewFromConfig(context.Background(), &config.Config{StoreBackend: "cloud"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}
