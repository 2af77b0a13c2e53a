package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/formkit/internal/formspec"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/lookup"
)

// connectBackends opens the Redis, Postgres and Mongo connections the spec's lookups
// need. The returned func closes them.
func connectBackends(ctx context.Context, spec *formspec.Spec, log *slog.Logger) (formspec.Backends, func(), error) {
	var (
		b       formspec.Backends
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	needs := make(map[string]bool)
	for _, l := range spec.Lookups {
		needs[l.Type] = true
	}

	if needs[formspec.LookupRedis] {
		var cfg lookup.RedisConfig
		if err := config.Load(&cfg); err != nil {
			return b, closeAll, fmt.Errorf("failed to load redis config: %w", err)
		}
		client, err := lookup.ConnectRedis(ctx, cfg)
		if err != nil {
			return b, closeAll, err
		}
		log.DebugContext(ctx, "connected to redis", logger.Component("lookup"))
		b.Redis = client
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				log.WarnContext(ctx, "failed to close redis client", logger.Error(err))
			}
		})
	}

	if needs[formspec.LookupPostgres] {
		var cfg lookup.PostgresConfig
		if err := config.Load(&cfg); err != nil {
			closeAll()
			return b, func() {}, fmt.Errorf("failed to load postgres config: %w", err)
		}
		pool, err := lookup.ConnectPostgres(ctx, cfg)
		if err != nil {
			closeAll()
			return b, func() {}, err
		}
		log.DebugContext(ctx, "connected to postgres", logger.Component("lookup"))
		b.Postgres = pool
		closers = append(closers, pool.Close)
	}

	if needs[formspec.LookupMongo] {
		var cfg lookup.MongoConfig
		if err := config.Load(&cfg); err != nil {
			closeAll()
			return b, func() {}, fmt.Errorf("failed to load mongo config: %w", err)
		}
		client, err := lookup.ConnectMongo(ctx, cfg)
		if err != nil {
			closeAll()
			return b, func() {}, err
		}
		log.DebugContext(ctx, "connected to mongo", logger.Component("lookup"), slog.String("database", cfg.Database))
		b.Mongo = client.Database(cfg.Database)
		closers = append(closers, func() {
			if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil {
				log.WarnContext(ctx, "failed to disconnect mongo client", logger.Error(err))
			}
		})
	}

	return b, closeAll, nil
}
