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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shopfront/internal/config"
	"shopfront/internal/es"
	"shopfront/internal/handlers"
	"shopfront/internal/logging"
	"shopfront/internal/mykafka"
	"shopfront/internal/render"
	"shopfront/internal/repo"
	"shopfront/internal/service"
	"shopfront/internal/session"
	httpserver "shopfront/internal/transport/http"
	"shopfront/internal/upload"
	"shopfront/internal/validate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir error: %v", err)
	}

	prod := mykafka.NewProducer([]string{cfg.KafkaAddress})

	var indexer *es.Indexer
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatal(err)
		}
		indexer = &es.Indexer{Client: esClient, Index: "product"}
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.Validator = validate.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	r := &repo.GormRepo{DB: db}
	sessions := &session.Manager{Repo: r, TTL: cfg.SessionTTL(), Secure: cfg.SecureCookies}
	catalog := &service.CatalogService{Repo: r}

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Auth: &service.AuthService{Repo: r}, Sessions: sessions, Producer: prod},
		ProductHandler: &handlers.ProductHandler{Catalog: catalog, Uploads: uploads, Producer: prod, Indexer: indexer},
		SearchHandler:  &handlers.SearchHandler{Catalog: catalog, Indexer: indexer},
		Sessions:       sessions,
		StaticDir:      cfg.StaticDir,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.Addr,
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
