package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lipinotes/backend/internal/config"
	"github.com/lipinotes/backend/internal/ocr"
	"github.com/lipinotes/backend/internal/server"
	"github.com/lipinotes/backend/internal/storage/postgres"
	"github.com/lipinotes/backend/internal/upload"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	uploads, err := upload.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("init upload dir: %v", err)
	}

	extractor := ocr.NewOpenAIExtractor(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)

	srv := server.New(cfg, store, extractor, uploads)

	go func() {
		log.Printf("lipinotes backend listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
