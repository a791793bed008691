package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pantrybase/backend/config"
	"github.com/pantrybase/backend/internal/database"
	"github.com/pantrybase/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without rate limiting and token revocation: %v", err)
		redisClient = nil
	}

	s3cfg, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("S3 unavailable, continuing without photo upload: %v", err)
		s3cfg = nil
	} else if err := s3cfg.SetupBucketPolicy(context.Background()); err != nil {
		log.Printf("Could not apply public-read bucket policy, photo URLs may need presigning: %v", err)
	}

	srv := server.New(cfg, db, redisClient, s3cfg)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
