package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/store_api/internal/config"
	"github.com/Skotchmaster/store_api/internal/es"
	"github.com/Skotchmaster/store_api/internal/handlers"
	"github.com/Skotchmaster/store_api/internal/hash"
	"github.com/Skotchmaster/store_api/internal/logging"
	loggingmw "github.com/Skotchmaster/store_api/internal/middleware/logging"
	"github.com/Skotchmaster/store_api/internal/mykafka"
	httpserver "github.com/Skotchmaster/store_api/internal/transport/http"
)

const productIndex = "products"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, configuration)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := config.EnsureAdmin(db, configuration, hash.HashPassword); err != nil {
		log.Fatalf("admin bootstrap error: %v", err)
	}

	prod := mykafka.NewProducer(configuration.KafkaBrokers)

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"*"},
		AllowHeaders: []string{"*"},
	}))
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:        db,
		JWTSecret: jwtSecret,
		AuthHandler: &handlers.AuthHandler{
			DB:             db,
			JWTSecret:      jwtSecret,
			AccessTokenTTL: configuration.AccessTokenTTL,
			Producer:       prod,
		},
		UserHandler:      &handlers.UserHandler{DB: db, Producer: prod},
		ProductHandler:   &handlers.ProductHandler{DB: db},
		InventoryHandler: &handlers.InventoryHandler{DB: db, Producer: prod, ES: esClient, Index: productIndex},
		CartHandler:      &handlers.CartHandler{DB: db, Producer: prod},
		CheckoutHandler:  &handlers.CheckoutHandler{DB: db, Producer: prod},
		SearchHandler:    &handlers.SearchHandler{ES: esClient, Index: productIndex},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.ServerPort),
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
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
