package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/goserg/rosterserver/internal/config"
	"github.com/goserg/rosterserver/internal/logger"
	"github.com/goserg/rosterserver/internal/metrics"
	"github.com/goserg/rosterserver/internal/service"
	"github.com/goserg/rosterserver/internal/storage"
	"github.com/goserg/rosterserver/internal/storage/mem"
	"github.com/goserg/rosterserver/internal/storage/sqlite"
	"github.com/goserg/rosterserver/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("server-config", "configs/server.toml", "path to server config")
	flag.Parse()

	cfg, err := config.New(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	l := logger.New(cfg.Server.LogLevel)

	playerStorage, err := newStorage(l, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer func() {
		if err := playerStorage.Close(); err != nil {
			l.WithError(err).Error("close storage")
		}
	}()

	rec := metrics.NewRecorder()
	playerService := service.New(playerStorage, cfg.Server, l, rec)
	if cfg.Server.SeedDemo {
		n, err := playerService.Seed(context.Background(), service.DemoPlayers)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		if n > 0 {
			l.WithField("players", n).Info("demo players added")
		}
	}

	server, err := web.New(playerService, cfg.Server, l, rec)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		l.Info("shutting down")
		return errors.Join(server.Shutdown(), <-serveErr)
	}
}

func newStorage(l *logrus.Logger, cfg config.Storage) (storage.PlayerStorage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return mem.New(), nil
	default:
		return sqlite.New(l, cfg.SqliteFile)
	}
}
