package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/leaderboard/internal/api"
	"example.com/leaderboard/internal/config"
	"example.com/leaderboard/internal/domain"
	"example.com/leaderboard/internal/events"
	"example.com/leaderboard/internal/observability"
	"example.com/leaderboard/internal/roster"
	"example.com/leaderboard/internal/source"
	httptransport "example.com/leaderboard/internal/transport/http"
)

func main() {
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reader, closeSource, err := source.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open source: %v", err)
	}
	defer closeSource()

	cache := source.NewCache(reader, cfg.SnapshotTTL)

	opts := []domain.Option{domain.WithMetrics(observability.Recorder{})}
	if !cfg.ChallengeEnd.IsZero() {
		opts = append(opts, domain.WithChallengeEnd(cfg.ChallengeEnd))
	}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventsTopic)
		defer publisher.Close()
		opts = append(opts, domain.WithNotifier(publisher))
	}
	service := domain.NewService(cache, opts...)

	if cfg.RosterPath != "" {
		rosters, err := roster.Load(cfg.RosterPath)
		if err != nil {
			log.Fatalf("failed to load rosters: %v", err)
		}
		service.SetStaticRosters(rosters)

		logger := log.New(os.Stderr, "[roster] ", log.LstdFlags)
		go func() {
			if err := roster.Watch(ctx, cfg.RosterPath, logger, service.SetStaticRosters); err != nil {
				logger.Printf("roster watch stopped: %v", err)
			}
		}()
	}

	handler := api.NewHandler(service, api.Limits{Runners: cfg.RunnerLimit, Combined: cfg.CombinedLimit})
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Simple CORS middleware for local dev
	cors := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, httptransport.RequestLogger(log.Default(), cors(mux)))

	log.Printf("leaderboard api listening on %s (source=%s, ttl=%s)", cfg.HTTPAddress, cfg.SourceKind, cfg.SnapshotTTL)
	if err := httptransport.Serve(ctx, server, 15*time.Second); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
