// Command dbcheck verifies database connectivity with the configured
// credentials and prints a short diagnostic report. Useful when the server
// fails at startup with a connection error.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cinebox/cinebox/internal/config"
	"github.com/cinebox/cinebox/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[dbcheck] ", log.LstdFlags)

	password := "(empty)"
	if cfg.DBPassword != "" {
		password = "***"
	}
	logger.Printf("target: %s:%d database=%s user=%s password=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, password)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := store.New(ctx, cfg.DatabaseURL(), store.Options{
		MaxConns:    1,
		ConnTimeout: time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		Logger:      logger,
	})
	if err != nil {
		logger.Printf("connection failed: %v", err)
		logger.Println("check that the database is running and the DB_* environment variables match its credentials")
		os.Exit(1)
	}
	defer st.Close()

	var exists bool
	err = st.Pool().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'movies')`).Scan(&exists)
	switch {
	case err != nil:
		logger.Printf("schema check failed: %v", err)
		os.Exit(1)
	case !exists:
		logger.Println("connected, but the movies table is missing; start the server once to apply migrations")
	default:
		var count int64
		if err := st.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
			logger.Printf("count movies failed: %v", err)
			os.Exit(1)
		}
		logger.Printf("connected: movies table present with %d rows", count)
	}

	fmt.Println("ok")
}
