package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sir_venger/filekeeper/internal/app/storagehttp"
	"github.com/sir_venger/filekeeper/internal/config"
)

const (
	defaultStorageAddr   = ":8081"
	dataDirEnv           = "DATA_DIR"
	gcTTLHoursEnv        = "GC_TTL_HOURS"
	gcIntervalMinEnv     = "GC_INTERVAL_MIN"
	defaultDataDir       = "/data"
	defaultGCTTLHours    = 24
	defaultGCIntervalMin = 30
)

func main() {
	addr := flag.String("addr", defaultStorageAddr, "listen address")
	flag.Parse()

	logger := config.SetupLogger(&config.Config{
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: os.Getenv("LOG_FORMAT"),
	})

	dataDir := os.Getenv(dataDirEnv)
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Error("failed to prepare data dir", slog.String("error", err.Error()))
		os.Exit(1)
	}

	h := storagehttp.New(dataDir, logger)

	// Фоновый GC брошенных загрузок из .incoming.
	gcTTLHours := envInt(gcTTLHoursEnv, defaultGCTTLHours)
	gcEveryMin := envInt(gcIntervalMinEnv, defaultGCIntervalMin)
	stopGC := storagehttp.StartGC(dataDir, time.Duration(gcTTLHours)*time.Hour, time.Duration(gcEveryMin)*time.Minute, logger)
	defer stopGC()

	server := &http.Server{Addr: *addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("storage shutdown error", slog.String("error", err.Error()))
		}
	}()

	logger.Info("storage listening",
		slog.String("addr", *addr),
		slog.String("data_dir", dataDir),
		slog.Int("gc_ttl_hours", gcTTLHours),
		slog.Int("gc_every_min", gcEveryMin),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("storage server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// envInt возвращает целочисленное значение из переменной окружения либо дефолт.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
