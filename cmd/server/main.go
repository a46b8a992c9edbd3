package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shopme/shopme-backend/internal/config"
	"github.com/shopme/shopme-backend/internal/es"
	"github.com/shopme/shopme-backend/internal/handlers"
	"github.com/shopme/shopme-backend/internal/logging"
	authmw "github.com/shopme/shopme-backend/internal/middleware/auth"
	"github.com/shopme/shopme-backend/internal/mykafka"
	"github.com/shopme/shopme-backend/internal/service/coupon"
	"github.com/shopme/shopme-backend/internal/service/order"
	"github.com/shopme/shopme-backend/internal/service/search"
	httpserver "github.com/shopme/shopme-backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := config.InitDB(ctx, configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}

	logger := logging.New(os.Getenv("LOG_LEVEL"))

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.Middleware(logger))

	verifier := &authmw.TokenVerifier{JWTSecret: jwtSecret}
	orderSvc := &order.Service{DB: db}
	couponSvc := &coupon.Service{DB: db}

	deps := httpserver.Deps{
		Verifier: verifier,
		AuthHandler: &handlers.AuthHandler{
			DB:            db,
			JWTSecret:     jwtSecret,
			Producer:      prod,
			AdminEmail:    configuration.ADMIN_EMAIL,
			AdminPassword: configuration.ADMIN_PASSWORD,
		},
		ProductHandler:  &handlers.ProductHandler{DB: db, Producer: prod, ES: esClient},
		CartHandler:     &handlers.CartHandler{DB: db, Producer: prod},
		OrderHandler:    &handlers.OrderHandler{Svc: orderSvc, Producer: prod},
		WishlistHandler: &handlers.WishlistHandler{DB: db},
		ReviewHandler:   &handlers.ReviewHandler{DB: db},
		CouponHandler:   &handlers.CouponHandler{Svc: couponSvc},
		SearchHandler:   &handlers.SearchHandler{ES: esClient, Index: search.Index},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.HTTP_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
