package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/autoshop/autoshop-api/internal/config"
	"github.com/autoshop/autoshop-api/internal/fulfillment"
	kafkax "github.com/autoshop/autoshop-api/internal/kafka"
	"github.com/autoshop/autoshop-api/internal/orders"
	"github.com/autoshop/autoshop-api/internal/postgres"
	"github.com/autoshop/autoshop-api/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("service", cfg.ServiceName+"-fulfillment"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down...")
		cancel()
	}()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicStockReleased, 1024, logger)
	prod.Start(ctx)

	svc := &fulfillment.Service{
		Orders:      &orders.Service{Store: &orders.Repo{DB: db}, Log: logger},
		Redis:       redisx.Cache{R: rdb},
		Producer:    prod,
		Log:         logger,
		ServiceName: cfg.ServiceName + "-fulfillment",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.FulfillmentGroup, orders.TopicOrderCancelled, cfg.FulfillmentWorkers, logger)
	logger.Info("consuming",
		zap.String("topic", orders.TopicOrderCancelled),
		zap.String("group", cfg.FulfillmentGroup),
		zap.Int("workers", cfg.FulfillmentWorkers))
	if err := cons.Start(ctx, svc.HandleOrderCancelled); err != nil {
		logger.Error("consumer exit", zap.Error(err))
	}

	prod.Close()
	prod.WaitClosed()
	cancel()
}
