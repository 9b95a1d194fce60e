package api

import (
	"skyward-mro/shopfloor/internal/auth"
	"skyward-mro/shopfloor/internal/common"
	"skyward-mro/shopfloor/internal/config"
	"skyward-mro/shopfloor/internal/db"
	"skyward-mro/shopfloor/internal/db/repositories"
	"skyward-mro/shopfloor/internal/metrics"
	"skyward-mro/shopfloor/internal/notify"
	"skyward-mro/shopfloor/internal/registry"
	"skyward-mro/shopfloor/internal/snapshot"
	"skyward-mro/shopfloor/internal/stats"
)

type Repositories struct {
	Snapshot *repositories.SnapshotRepositoryGORM
	History  *repositories.HistoryRepository
}

type Services struct {
	Cache     common.CacheInterface
	Tokens    *auth.TokenService
	Stats     *stats.Service
	Evaluator *notify.Evaluator
	Snapshot  *snapshot.Service
}

type Dependencies struct {
	Registry *registry.Registry
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires the service graph. Redis is used for caching
// when configured, the in-memory cache otherwise; repositories stay nil
// in a memory-only deployment.
func InitDependencies(cfg *config.Config, reg *registry.Registry, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	var cacheSvc common.CacheInterface
	if cfg.RedisAddr != "" {
		redisCache, err := common.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		cacheSvc = redisCache
	} else {
		cacheSvc = common.NewCacheService(60, 600)
	}

	repos := &Repositories{}
	var snapStore snapshot.Store
	if cfg.DatabaseDSN != "" {
		repos.Snapshot = repositories.NewSnapshotRepositoryGORM(db.ORM)
		snapStore = repos.Snapshot
		if db.DB != nil {
			repos.History = repositories.NewHistoryRepository(db.DB)
		}
	}

	services := &Services{
		Cache:     cacheSvc,
		Tokens:    auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Stats:     stats.NewService(cacheSvc, cfg.StatsTTL),
		Evaluator: notify.NewEvaluator(cacheSvc, cfg.NotifyCooldown),
		Snapshot:  snapshot.NewService(reg, snapStore),
	}

	return &Dependencies{
		Registry: reg,
		Repo:     repos,
		Services: services,
		Metrics:  metricsReg,
	}, nil
}
