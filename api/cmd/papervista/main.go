package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/jiyanshuj/PaperVista/api/internal/config"
	"github.com/jiyanshuj/PaperVista/api/internal/exam"
	"github.com/jiyanshuj/PaperVista/api/internal/handle"
	"github.com/jiyanshuj/PaperVista/api/internal/httpserver"
	"github.com/jiyanshuj/PaperVista/api/internal/llm"
	"github.com/jiyanshuj/PaperVista/api/internal/store"
)

func main() {
	cfg := config.Load()

	engine := llm.NewGemini(cfg.GeminiAPIKey)
	inv := llm.NewInvoker(engine)
	if cfg.GeminiModel != "" {
		inv.Models = []string{cfg.GeminiModel}
		log.Printf("model pinned via GEMINI_MODEL: %s", cfg.GeminiModel)
	}
	builder := exam.NewBuilder(inv)

	var repo *store.ExamRepo
	if cfg.DatabaseURL != "" {
		repo = store.NewExamRepo(openDB(cfg.DatabaseURL))
		go purgeLoop(repo)
	}

	h := handle.New(engine, builder, repo)

	addr := "0.0.0.0:" + cfg.Port
	log.Fatal(httpserver.Start(addr, h, cfg.AllowedOrigins()))
}

const (
	archiveRetention = 30 * 24 * time.Hour
	purgeInterval    = 24 * time.Hour
)

// purgeLoop trims the paper archive once a day so the table does not
// grow without bound.
func purgeLoop(repo *store.ExamRepo) {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		n, err := repo.PurgeOlderThan(ctx, archiveRetention)
		cancel()
		if err != nil {
			log.Printf("archive purge: %v", err)
		} else if n > 0 {
			log.Printf("archive purge: removed %d papers", n)
		}
		time.Sleep(purgeInterval)
	}
}

func openDB(dsn string) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("db.Ping: %v", err)
	}
	log.Printf("db connected")
	return db
}
