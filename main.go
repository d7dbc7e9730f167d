package main

import (
	"context"
	"time"

	"github.com/cppla/subforum/config"
	"github.com/cppla/subforum/routes"
	"github.com/cppla/subforum/services"
	"github.com/cppla/subforum/store"
	"github.com/cppla/subforum/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		utils.Sugar.Fatalf("failed to open database: %v", err)
	}

	ctx := context.Background()
	s := store.New(db)
	if err := s.Initialize(ctx); err != nil {
		utils.Sugar.Fatalf("failed to initialize store: %v", err)
	}

	// Redis is optional; a cache without a client is a no-op.
	rdb := utils.NewRedis(cfg)
	cache := utils.NewRedisCache(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)

	if cfg.SeedDemo {
		if err := services.SeedDemo(ctx, s, services.NewForumService(s, cache)); err != nil {
			utils.Sugar.Fatalf("failed to seed demo data: %v", err)
		}
	}

	r := routes.SetupRouter(cfg, s, cache)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	err = utils.GraceServer(":"+cfg.AppPort, r,
		func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
		func() {
			if rdb != nil {
				_ = rdb.Close()
			}
		},
		func() { _ = utils.Logger.Sync() },
	)
	if err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
