package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/vncsmyrnk/tamaire/internal/adapters/handler/http"
	"github.com/vncsmyrnk/tamaire/internal/adapters/repository"
	"github.com/vncsmyrnk/tamaire/internal/adapters/repository/keyvalue"
	"github.com/vncsmyrnk/tamaire/internal/app"
	"github.com/vncsmyrnk/tamaire/internal/config"
	"github.com/vncsmyrnk/tamaire/internal/metrics"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.Logger(os.Stdout)
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closer, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	gateway := keyvalue.NewGateway(store, keyvalue.Keys{Votes: cfg.VotesKey, Comments: cfg.CommentsKey}, logger)
	widget := app.New(ctx, gateway, logger)

	handler := http.NewHandler(widget, http.Options{
		CORSOrigins: cfg.CORSOrigins,
		VoteRate:    rate.Every(time.Minute / time.Duration(cfg.VoteRatePerMinute)),
		VoteBurst:   3,
		TrustProxy:  cfg.TrustProxy,
		Store:       store,
		Logger:      logger,
	})
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	go func() {
		logger.Info("listening", "addr", cfg.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
