package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/atelierlane/storefront/internal/auth"
	"github.com/atelierlane/storefront/internal/events"
	"github.com/atelierlane/storefront/internal/httpserver"
	"github.com/atelierlane/storefront/internal/mailer"
	"github.com/atelierlane/storefront/internal/metrics"
	"github.com/atelierlane/storefront/internal/ratelimit"
	"github.com/atelierlane/storefront/internal/repo"
	"github.com/atelierlane/storefront/internal/search"
	"github.com/atelierlane/storefront/internal/service"
	"github.com/atelierlane/storefront/internal/storage"
	"github.com/atelierlane/storefront/pkg/config"
	"github.com/atelierlane/storefront/pkg/db"
	"github.com/atelierlane/storefront/pkg/logging"
	loggingmw "github.com/atelierlane/storefront/pkg/middleware/logging"
)

const (
	trackLimit  = 10
	trackWindow = time.Minute
)

func newSearchClient(cfg config.Config) (*elasticsearch.Client, error) {
	if cfg.ESURL == "" {
		return nil, nil
	}
	return search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
}

func main() {
	cfg := config.Load()
	cfg.MustRequire()
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	Repo := repo.New(gormDB)

	es, err := newSearchClient(cfg)
	if err != nil {
		logger.Warn("elasticsearch unavailable, product search disabled", "error", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	mail := mailer.NewClient(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom)
	signer := storage.NewSigner(cfg.StorageURL, cfg.StorageBucket, cfg.StorageSigningSecret)

	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = ratelimit.NewRedis(rdb, trackLimit, trackWindow)
	} else {
		mem := ratelimit.NewMemory(trackLimit, trackWindow)
		defer mem.Close()
		limiter = mem
	}

	fulfillment := &service.FulfillmentService{
		Repo:    Repo,
		Mail:    mail,
		Events:  producer,
		SiteURL: cfg.SiteURL,
	}

	checkout := &service.CheckoutService{
		Repo:        Repo,
		Mail:        mail,
		Events:      producer,
		Fulfillment: fulfillment,
		AdminEmail:  cfg.AdminEmail,
		SiteURL:     cfg.SiteURL,
	}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:     &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: Repo, JWTSecret: cfg.JWTSecret}},
		CartHandler:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: Repo}},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: checkout},
		OrderHandler: &httpserver.OrderHTTP{
			Tracking:    &service.TrackingService{Repo: Repo},
			Fulfillment: fulfillment,
			Status:      &service.OrderStatusService{Repo: Repo, Mail: mail, Events: producer},
			Notify:      &service.NotificationService{Repo: Repo, Mail: mail},
			Limiter:     limiter,
		},
		DownloadHandler: &httpserver.DownloadHTTP{Svc: &service.DownloadService{Repo: Repo, Signer: signer}},
		ProductHandler:  &httpserver.ProductHTTP{Repo: Repo, ES: es},
		AuthMW:          auth.NewMiddleware(cfg.JWTSecret),
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err == nil {
		sqlDB.Close()
	}

	logger.Info("server stopped")
}
