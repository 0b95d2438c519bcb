package store

import (
	"context"
	"fmt"

	"github.com/imperialtrucks/truck-market/internal/config"
	"github.com/imperialtrucks/truck-market/internal/images"
	"github.com/imperialtrucks/truck-market/internal/truck"
)

// NewFromConfig creates the storage backend selected by cfg.StoreBackend.
func NewFromConfig(ctx context.Context, cfg *config.Config, imgs *images.Manager) (truck.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendIndex:
		return NewIndex(cfg.DataDir, imgs)
	case config.BackendFiles:
		return NewFiles(cfg.DataDir, imgs)
	case config.BackendRemote:
		if cfg.RemoteAPIURL == "" {
			return nil, fmt.Errorf("remote backend requires REMOTE_API_URL to be set")
		}
		return NewRemote(cfg.RemoteAPIURL), nil
	case config.BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("mongo backend requires MONGO_URI to be set")
		}
		client, err := ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return NewMongo(client.Database(cfg.MongoDB).Collection("trucks")), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}
