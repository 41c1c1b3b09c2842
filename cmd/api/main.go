package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"hotel_chat/internal/adapters/googlemaps"
	server "hotel_chat/internal/adapters/http_server"
	"hotel_chat/internal/adapters/observability"
	redisad "hotel_chat/internal/adapters/redis"
	"hotel_chat/internal/app"
	"hotel_chat/internal/domain"
	"hotel_chat/internal/shared"
	"hotel_chat/internal/storage/memory"
)

func main() {
	cfg := shared.Load(".env")

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// deps
	maps, err := googlemaps.New(cfg.MapsBase, cfg.MapsKey, cfg.MapsRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Google Maps client")
	}
	sessions := newSessions(ctx, cfg)
	chat := app.NewChatService(maps, cfg.SearchRadius)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Chat:     chat,
		Sessions: sessions,
		Turns:    semaphore.NewWeighted(int64(cfg.MaxConcurrentTurns)),
	})
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func newSessions(ctx context.Context, cfg shared.Config) domain.SessionStore {
	if cfg.SessionStore != "redis" {
		log.Info().Msg("using in-memory session store")
		return memory.New()
	}
	rs := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.SessionTTL)
	if err := rs.Ping(ctx); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis session store ok")
	return rs
}
