package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	gosync "sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"movietier/internal/auth"
	"movietier/internal/metrics"
	"movietier/internal/omdb"
	"movietier/internal/server"
	"movietier/internal/sync"
	"movietier/pkg/database"
	"movietier/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		panic(err)
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg := database.DefaultConfig(cfg.DBPath)
	db, err := database.OpenAndMigrate(ctx, dbCfg)
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}
	defer db.Close()

	if cfg.OMDBAPIKey == "" {
		logger.Warn("MOVIETIER_OMDB_API_KEY not set; movie search will fail")
	}

	hub := sync.NewHub(logger)
	router := server.NewRouter(server.Deps{
		DB:      db,
		Hub:     hub,
		Metrics: metrics.NewRecorder(),
		Movies: omdb.NewClient(omdb.Options{
			BaseURL:  cfg.OMDBBaseURL,
			APIKey:   cfg.OMDBAPIKey,
			Timeout:  cfg.OMDBTimeout,
			CacheTTL: cfg.OMDBCacheTTL,
			Logger:   logger,
		}),
		Tokens: auth.TokenService{
			Secret:   []byte(cfg.JWTSecret),
			Issuer:   cfg.JWTIssuer,
			Duration: cfg.JWTDuration,
		},
		Logger:    logger,
		DBPath:    dbCfg.Path,
		StartedAt: time.Now(),
	})

	tcpSrv := sync.NewServer(cfg.SyncTCPAddr, hub, logger)
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	var wg gosync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.WithField("addr", cfg.HTTPAddr).Info("HTTP API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.WithError(err).Error("server error")
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("http shutdown")
	}

	wg.Wait()
	logger.Info("servers stopped")
}
