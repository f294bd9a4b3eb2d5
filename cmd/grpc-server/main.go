package main

import (
	"context"
	"net"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"movietier/internal/grpcserver"
	"movietier/pkg/database"
	"movietier/pkg/utils"
)

func main() {
	cfg, err := utils.Load()
	if err != nil {
		panic(err)
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.OpenAndMigrate(ctx, database.DefaultConfig(cfg.DBPath))
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}
	defer db.Close()

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.WithError(err).Fatal("grpc listen failed")
	}

	srv := grpc.NewServer()
	health := grpcserver.NewHealthServer(db, 0, logger)
	health.Register(srv)
	go health.Run(ctx)

	go func() {
		<-ctx.Done()
		logger.Info("stopping gRPC server")
		srv.GracefulStop()
	}()

	logger.WithField("addr", cfg.GRPCAddr).Info("gRPC health server listening")
	if err := srv.Serve(listener); err != nil {
		logger.WithError(err).Fatal("grpc server stopped")
	}
}
