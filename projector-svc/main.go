package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"foodhub/config"
	"foodhub/projector-svc/internal/service"
	"foodhub/projector-svc/internal/storage"
)

func main() {
	cfg := config.Load()
	if !config.KafkaConfigured() || !config.RedisConfigured() {
		log.Fatal("Projector Service needs KAFKA_BROKER and REDIS_HOST")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	var db *sql.DB
	if config.PostgresConfigured() {
		db = config.MustInitPostgres()
		defer db.Close()
	}

	reader := config.NewKafkaReader(cfg.KafkaTopic, cfg.KafkaGroupID)
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(db, rdb), cfg.Location)
	consumer.Start(ctx)
}
