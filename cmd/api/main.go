package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"hotelavail/internal/adapters/availxml"
	server "hotelavail/internal/adapters/http_server"
	"hotelavail/internal/adapters/observability"
	redisad "hotelavail/internal/adapters/redis"
	"hotelavail/internal/app"
	"hotelavail/internal/domain"
	"hotelavail/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	rules := domain.DefaultRules()
	rules.EnforceChildAccompaniment = cfg.EnforceChildAccompaniment

	// deps; cache is optional and only wired when Redis is configured
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rc.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		log.Info().Msg("redis connection ok")
		cache = rc
	}
	svc := app.NewAvailabilityService(availxml.New(), rules, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.RateRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Bool("accompaniment_rule", rules.EnforceChildAccompaniment).
		Msg("availability API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
