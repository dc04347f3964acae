package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"versus-web/internal/adapters/crawler"
	logger_adapter "versus-web/internal/adapters/logger"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/port"

	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен, SITE_URL можно передать флагом
	_ = godotenv.Load()

	defaultURL := os.Getenv("SITE_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3000"
	}

	startURL := flag.String("url", defaultURL, "site root to crawl")
	depth := flag.Int("depth", 3, "max link depth, 0 for unlimited")
	parallelism := flag.Int("parallel", 4, "concurrent requests")
	delay := flag.Duration("delay", 100*time.Millisecond, "delay between requests")
	maxPages := flag.Int("max-pages", 500, "stop after this many requests, 0 for unlimited")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall timeout")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Level: level, UseColor: true}).
		WithFields(port.Fields{"service_name": "cache-warmer"})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	warmer, err := crawler.NewSiteWarmer(crawler.Config{
		StartURL:    *startURL,
		MaxDepth:    *depth,
		Parallelism: *parallelism,
		Delay:       *delay,
		MaxPages:    *maxPages,
	})
	if err != nil {
		log.Fatalf("Failed to create warmer: %v", err)
	}

	report, err := warmer.Warm(ctx)
	if err != nil {
		logger.Error("Warm-up interrupted", err, nil)
	}
	if report == nil {
		os.Exit(1)
	}

	logger.Info("Warm-up report", port.Fields{
		"visited":  report.Visited,
		"statuses": report.Statuses,
		"failures": report.Failures,
	})
	if len(report.Failures) > 0 {
		os.Exit(2)
	}
}
