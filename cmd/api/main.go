package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/duis-detector/config"
	"github.com/GoSim-25-26J-441/duis-detector/internal/bootstrap"
	"github.com/GoSim-25-26J-441/duis-detector/internal/logging"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logging.Setup(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	rules, err := detection.LoadConfig(cfg.Detection.RulesFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load rule config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	if db != nil {
		defer db.Close()
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config: cfg,
		Rules:  rules,
		DB:     db,
		Redis:  rdb,
		Log:    log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":    cfg.Server.Port,
			"env":     cfg.App.Environment,
			"version": cfg.App.Version,
		}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
