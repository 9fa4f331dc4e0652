package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mobisync/internal/app/server"
	"mobisync/internal/app/server/config"
	"mobisync/internal/utils/logger"

	"golang.org/x/exp/slog"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, conf, log)
	if err != nil {
		log.Error("init server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("server stopped")
}
