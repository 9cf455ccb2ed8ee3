package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	"example.com/leaderboard/internal/config"
	"example.com/leaderboard/internal/ingest"
	"example.com/leaderboard/internal/persistence/postgres"
	httptransport "example.com/leaderboard/internal/transport/http"
)

func main() {
	cfg := config.Load()
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := postgres.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	metricsSrv := httptransport.NewServer(httptransport.ServerConfig{Address: cfg.MetricsAddress}, promhttp.Handler())
	go func() {
		log.Printf("ingest metrics listening on %s", cfg.MetricsAddress)
		if err := httptransport.Serve(ctx, metricsSrv, 10*time.Second); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         cfg.KafkaBrokers,
		GroupID:         cfg.ConsumerGroupID,
		Topic:           cfg.IngestTopic,
		MinBytes:        1e3,
		MaxBytes:        10e6,
		CommitInterval:  time.Second,
		ReadLagInterval: -1,
	})
	defer reader.Close()

	proc := ingest.NewProcessor(reader, ingest.NewPersistenceHandler(repo))

	log.Printf("ingest started (topic=%s, group=%s)", cfg.IngestTopic, cfg.ConsumerGroupID)
	if err := proc.Run(ctx); err != nil && err != context.Canceled {
		log.Printf("ingest stopped with error: %v", err)
	}
	log.Println("ingest shutdown complete")
}
