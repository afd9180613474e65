// Command running-data builds the static events dataset served by
// running-events: it walks the upstream WordPress API, parses calendar
// exports, geocodes locations, and writes events.json.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"portugalRunning/internal/lib/logger/sl"
	"portugalRunning/internal/pipeline"
	"portugalRunning/internal/pipeline/geocoding"
	"portugalRunning/internal/pipeline/wpapi"
)

func main() {
	var (
		baseURL    = flag.String("base-url", wpapi.DefaultBaseURL, "upstream WordPress site")
		cacheDir   = flag.String("cache-dir", "./cache", "response cache directory")
		out        = flag.String("out", "./data/events.json", "output dataset path")
		limit      = flag.Int("limit", 0, "cap the number of events (0 = all)")
		geocodeKey = flag.String("geocode-key", os.Getenv("GEOCODING_API_KEY"), "Google Geocoding API key (empty skips geocoding)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, *baseURL, *cacheDir, *out, *geocodeKey, *limit); err != nil {
		log.Error("dataset build failed", sl.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, baseURL, cacheDir, out, geocodeKey string, limit int) error {
	source, err := wpapi.New(baseURL, filepath.Join(cacheDir, "wp"), log)
	if err != nil {
		return err
	}

	var geocoder pipeline.Geocoder
	if geocodeKey != "" {
		g, err := geocoding.New(geocodeKey, filepath.Join(cacheDir, "geocoding"), log)
		if err != nil {
			return err
		}
		geocoder = g
	} else {
		log.Warn("no geocoding key, events will lack coordinates")
	}

	builder := pipeline.NewBuilder(source, geocoder, log, limit)

	events, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := pipeline.WriteDataset(out, events); err != nil {
		return err
	}

	log.Info("dataset written", slog.String("path", out), slog.Int("events", len(events)))

	return nil
}
