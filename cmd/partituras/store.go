package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"partituras/internal/catalog"
	"partituras/internal/catalog/jsonl"
	redisstore "partituras/internal/catalog/redis"
	"partituras/internal/catalog/sqlite"
	"partituras/internal/config"
)

// openStore selects the catalog adapter named in cfg.
func openStore(cfg *config.AppConfig) (catalog.Store, error) {
	switch cfg.Catalog.Type {
	case config.StoreJSONL, "":
		return jsonl.New(cfg.Catalog.Path), nil
	case config.StoreSQLite:
		return sqlite.Open(cfg.Catalog.Path)
	case config.StoreRedis:
		rc := cfg.Catalog.Redis
		if rc == nil {
			return nil, fmt.Errorf("redis config missing")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password(),
			DB:       rc.DB,
		})
		return redisstore.New(client, rc.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown catalog type: %s", cfg.Catalog.Type)
	}
}

// storeName describes where scores are kept, for command output.
func storeName(cfg *config.AppConfig) string {
	if cfg.Catalog.Type == config.StoreRedis && cfg.Catalog.Redis != nil {
		return "redis://" + cfg.Catalog.Redis.Addr
	}
	return cfg.Catalog.Type + ":" + cfg.Catalog.Path
}
