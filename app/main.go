package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/skybrief/app/api"
	"github.com/lysyi3m/skybrief/app/cfg"
	"github.com/lysyi3m/skybrief/app/digest"
	"github.com/lysyi3m/skybrief/app/feed"
	"github.com/lysyi3m/skybrief/app/tasks"
)

func main() {
	setupLogger(os.Stdout, false)

	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(os.Stdout, appCfg.Debug)

	if err := run(appCfg); err != nil {
		slog.Error("SkyBrief build failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func run(appCfg *cfg.Cfg) error {
	catalog, err := feed.LoadCatalog(appCfg.SourcesFile)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	slog.Info("Starting SkyBrief build",
		"version", appCfg.Version,
		"feeds", len(catalog.Feeds),
		"references", len(catalog.References),
		"timezone", appCfg.Location.String())

	fetcher := feed.NewFetcher(feed.NewParser(), appCfg.UserAgent, appCfg.FetchTimeout())
	normalizer := feed.NewNormalizer(appCfg.TitleLimit, appCfg.SummaryLimit, appCfg.Location)
	builder := digest.NewBuilder(fetcher, normalizer,
		digest.Limits{PerFeed: appCfg.MaxItemsPerFeed, Total: appCfg.MaxItems},
		digest.Metadata{
			Project:   appCfg.Project,
			Headline:  appCfg.Headline,
			Window:    appCfg.Window,
			Generator: fmt.Sprintf("skybrief/%s + gofeed", appCfg.Version),
			Location:  appCfg.Location,
		})

	task := tasks.NewBuildDigestTask(catalog, builder, feed.NewGenerator(), digest.NewWriter(appCfg.OutputPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tasks.Run(ctx, task); err != nil {
		return err
	}

	if appCfg.PreviewAddr == "" {
		return nil
	}

	return servePreview(ctx, appCfg.PreviewAddr, task)
}

func servePreview(ctx context.Context, addr string, task *tasks.BuildDigestTask) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(api.NewHandler(task)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", "addr", addr, "snapshot", "/update.json", "health", "/health")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down preview server")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	return nil
}
