package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ishashanknigam/Peer-Connect/internal/config"
	"github.com/ishashanknigam/Peer-Connect/internal/handler"
	"github.com/ishashanknigam/Peer-Connect/internal/hub"
	"github.com/ishashanknigam/Peer-Connect/internal/kafka"
	"github.com/ishashanknigam/Peer-Connect/internal/relay"
	"github.com/ishashanknigam/Peer-Connect/internal/store"
	pkglog "github.com/ishashanknigam/Peer-Connect/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		pkglog.L().Fatal().Err(err).Msg("failed to load configuration")
	}

	pkglog.Init(pkglog.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, ServiceName: "peer-connect"})
	logger := pkglog.L()

	logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting signaling relay")

	relayOpts := []relay.Option{}

	// Optional presence event stream. The relay works without Kafka.
	var producer kafka.PresenceEventProducer
	if cfg.Kafka.Enabled {
		producer, err = kafka.NewConfluentProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Partitions)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to create kafka producer, presence events disabled")
			producer = nil
		} else {
			defer producer.Close()
			logger.Info().Str("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("connected to kafka")
			relayOpts = append(relayOpts, relay.WithEvents(producer))
		}
	}

	// Optional best-effort presence mirror in Redis.
	var presence store.PresenceStore
	if cfg.Redis.Enabled {
		presence, err = store.NewRedisStore(store.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to redis, presence mirror disabled")
			presence = nil
		} else {
			defer presence.Close()
			logger.Info().Str("address", cfg.Redis.Address).Msg("connected to redis")
			relayOpts = append(relayOpts, relay.WithPresence(presence))
		}
	}

	wsHub := hub.NewHub(cfg.WebSocket)
	roomRelay := relay.New(wsHub, relayOpts...)

	wsHandler := handler.NewWSHandler(wsHub, roomRelay)

	iceServers, err := cfg.WebRTC.GetICEServers()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to resolve ICE servers")
	}
	iceHandler := handler.NewICEHandler(iceServers)

	mux := http.NewServeMux()
	wsHandler.RegisterRoutes(mux)
	iceHandler.RegisterRoutes(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      pkglog.HTTPMiddleware(*logger)(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("signaling relay listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down signaling relay")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("signaling relay stopped")
}
