// Command dnswatch runs the passive DNS tap: it listens on a UDP socket,
// decodes every datagram, persists capture summaries to SQLite, and
// optionally serves the browse API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jroosing/dnswire/internal/api"
	"github.com/jroosing/dnswire/internal/config"
	"github.com/jroosing/dnswire/internal/logging"
	"github.com/jroosing/dnswire/internal/stats"
	"github.com/jroosing/dnswire/internal/store"
	"github.com/jroosing/dnswire/internal/watch"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to JSON configuration file (or set DNSWIRE_CONFIG)")
		listen     = flag.String("listen", "", "Override UDP listen address")
		storePath  = flag.String("store", "", "Override capture database path")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Watch.Listen = *listen
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *jsonLogs {
		cfg.Logging.Format = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	logger := logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		IncludePID:  cfg.Logging.IncludePID,
		ExtraFields: cfg.Logging.ExtraFields,
	})
	logger.Info("dnswatch starting",
		"listen", cfg.Watch.Listen,
		"store", cfg.Store.Path,
		"api", cfg.API.Enabled,
	)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open capture store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	decodeStats := stats.NewDecodeStats()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.API.Enabled {
		handler := api.New(st, decodeStats, logger)
		apiAddr := net.JoinHostPort(cfg.API.Host, strconv.Itoa(cfg.API.Port))
		srv := &http.Server{Addr: apiAddr, Handler: handler.Router()}
		go func() {
			logger.Info("api listening", "addr", apiAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("api server failed", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
	}

	tap := &watch.Tap{
		Logger:     logger,
		Store:      st,
		Stats:      decodeStats,
		BufferSize: cfg.Watch.BufferSize,
	}
	if err := tap.Run(ctx, cfg.Watch.Listen); err != nil {
		fmt.Fprintf(os.Stderr, "tap exited with error: %v\n", err)
		os.Exit(1)
	}

	snap := decodeStats.Snapshot()
	logger.Info("dnswatch stopped",
		"messages", snap.MessagesTotal,
		"failures", snap.DecodeFailures,
	)
}
