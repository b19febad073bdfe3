package server

import (
	"context"
	"fmt"

	"github.com/helmward/helmboard/pkg/cache"
	"github.com/helmward/helmboard/pkg/store"
)

// OpenStore constructs the record store named by the config.
func OpenStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case StoreMemory:
		if cfg.Fixture != "" {
			return store.LoadFile(cfg.Fixture)
		}
		return store.NewMemoryStore(), nil
	case StoreMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// OpenCache constructs the view cache named by the config.
func OpenCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case CacheNone, "":
		return cache.NewNullCache(), nil
	case CacheFile:
		return cache.NewFileCache(cfg.Dir)
	case CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
