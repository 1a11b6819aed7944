package main

import (
	"context"
	"log"

	"github.com/jevi-chat/console/config"
	httpapi "github.com/jevi-chat/console/internal/api/http"
	"github.com/jevi-chat/console/internal/bootstrap"
	"github.com/jevi-chat/console/internal/upstream"
)

const serviceName = "jevi-console"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	rdb, err := bootstrap.OpenRedis(context.Background(), bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	up := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, cfg.Upstream.ChatTimeout)

	probe := httpapi.NewUpstreamProbe(up)
	cronRunner := probe.Start()
	defer cronRunner.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Cfg:         cfg,
		RDB:         rdb,
		Upstream:    up,
		Probe:       probe,
	})

	log.Printf("%s listening on :%s (upstream %s)", serviceName, cfg.Server.Port, cfg.Upstream.BaseURL)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
