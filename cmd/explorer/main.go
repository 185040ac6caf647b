package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/yosef-segev/Seaborn-Web-Explorer/dataset"
	"github.com/yosef-segev/Seaborn-Web-Explorer/reports"
	"github.com/yosef-segev/Seaborn-Web-Explorer/web"
)

// ============================================================================
// EXPLORER — web UI for browsing and analyzing a reference dataset
// ============================================================================

const version = "0.1.0"

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	datasetName := flag.String("dataset", "titanic", "Reference dataset to load")
	dataDir := flag.String("data-dir", "data", "On-disk cache for downloaded datasets")
	staticDir := flag.String("static-dir", "static", "Directory for generated static assets (chart PNGs)")
	catalogURL := flag.String("catalog", "", "Override the dataset catalog base URL")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Seaborn Web Explorer — browse and analyze a reference dataset

Usage:
  explorer --dataset titanic --addr :8080

Flags:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("explorer %s\n", version)
		os.Exit(0)
	}

	// ── Dataset (fatal on failure — the process has no purpose without it) ─
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	table, err := dataset.Load(ctx, *datasetName, dataset.LoadOptions{
		CatalogURL: *catalogURL,
		CacheDir:   *dataDir,
	})
	cancel()
	if err != nil {
		fatalf("Failed to load dataset %q: %v", *datasetName, err)
	}
	log.Printf("📊 Dataset %q loaded: %d rows, %d columns", table.Name(), table.NumRows(), len(table.ColumnNames()))

	// ── Services ──────────────────────────────────────────────────────────
	plotsDir := filepath.Join(*staticDir, "plots")
	runner, err := reports.NewRunner(table, plotsDir)
	if err != nil {
		fatalf("Failed to set up reports: %v", err)
	}

	server, err := web.NewServer(table, runner, plotsDir)
	if err != nil {
		fatalf("Failed to set up web server: %v", err)
	}

	// ── HTTP server with graceful shutdown ────────────────────────────────
	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("🚀 Explorer listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatalf("Server failed: %v", err)
		}
	}()

	<-done
	log.Printf("🛑 Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatalf("Shutdown failed: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
