package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/autoshop/autoshop-api/internal/auth"
	"github.com/autoshop/autoshop-api/internal/cart"
	"github.com/autoshop/autoshop-api/internal/catalog"
	"github.com/autoshop/autoshop-api/internal/config"
	"github.com/autoshop/autoshop-api/internal/httpx"
	kafkax "github.com/autoshop/autoshop-api/internal/kafka"
	"github.com/autoshop/autoshop-api/internal/orders"
	"github.com/autoshop/autoshop-api/internal/postgres"
	"github.com/autoshop/autoshop-api/internal/redisx"
	"github.com/autoshop/autoshop-api/internal/reviews"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("service", cfg.ServiceName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("schema", zap.Error(err))
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for order.placed
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024, logger)
	prod.Start(ctx)

	// Services
	issuer := auth.Issuer{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL}
	usersRepo := &auth.Repo{DB: db}
	catalogRepo := &catalog.Repo{DB: db}
	cartSvc := &cart.Service{Store: &cart.Repo{DB: db}, Catalog: catalogRepo}
	orderSvc := &orders.Service{Store: &orders.Repo{DB: db}, Log: logger}
	reviewsHandler := &httpx.ReviewsHandler{Reviews: &reviews.Repo{DB: db}, Catalog: catalogRepo, Log: logger}
	authHandler := &httpx.AuthHandler{Users: usersRepo, Issuer: issuer, Redis: rdb, Log: logger}

	// Router
	met := httpx.NewMetrics("api")
	router := httpx.NewRouter(logger, met)
	authHandler.Register(router)
	(&httpx.CatalogHandler{Catalog: catalogRepo, Redis: rdb, Log: logger}).Register(router)
	reviewsHandler.Register(router)

	authmw := &httpx.Auth{Issuer: issuer, Redis: rdb}
	router.Group(func(r chi.Router) {
		r.Use(authmw.Require)
		authHandler.RegisterProtected(r)
		(&httpx.UsersHandler{Users: usersRepo, Log: logger}).Register(r)
		(&httpx.CartHandler{Cart: cartSvc, Log: logger}).Register(r)
		(&httpx.OrdersHandler{
			Orders:   orderSvc,
			Producer: prod,
			Redis:    rdb,
			Log:      logger,
			Service:  cfg.ServiceName,
		}).Register(r)
		reviewsHandler.RegisterProtected(r)
	})

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	metSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: httpx.MetricsHandler()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
		if err := metSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
			logger.Info("shutting down...")
		case <-gctx.Done():
		}
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = apiSrv.Shutdown(ctx2)
		_ = metSrv.Shutdown(ctx2)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", zap.Error(err))
	}

	prod.Close()      // stop accepting, flush the inbox
	prod.WaitClosed() // drain
	cancel()
}
