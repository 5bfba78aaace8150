package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wfunc/drawguess/broadcast"
	"github.com/wfunc/drawguess/config"
	"github.com/wfunc/drawguess/game"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/monitor"
	"github.com/wfunc/drawguess/persistence"
	"github.com/wfunc/drawguess/room"
	"github.com/wfunc/drawguess/rpc"
	"github.com/wfunc/drawguess/server"
	"github.com/wfunc/drawguess/services"
	"github.com/wfunc/drawguess/session"
	"github.com/wfunc/drawguess/words"
)

const (
	eventQueueSize  = 1024
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Init(false)
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.Log.Development)
	defer logger.Sync()

	// Initialize Database
	var db persistence.Database
	if cfg.Database.Enabled {
		db, err = persistence.Open(
			cfg.Database.Driver,
			cfg.Database.Postgres.Host,
			cfg.Database.Postgres.Port,
			cfg.Database.Postgres.User,
			cfg.Database.Postgres.Password,
			cfg.Database.Postgres.DBName,
		)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful.")
	} else {
		db = persistence.NewMemory()
		logger.Log.Info("Database disabled, keeping game history in memory.")
	}
	defer db.Close()

	history := services.NewHistoryService(db)
	mon := monitor.NewMonitor(cfg.Metrics.Namespace, prometheus.NewRegistry())
	sessions := session.NewManager()

	registry := room.NewRegistry(room.NewCodeGenerator(), room.Rules{
		TotalRounds:  cfg.Game.TotalRounds,
		DrawerPoints: cfg.Game.DrawerPoints,
	})
	handler := game.NewHandler(
		registry,
		broadcast.NewRoomBroadcaster(sessions),
		words.Default(),
		game.WithMetrics(mon),
		game.WithRecorder(history),
	)
	loop := game.NewLoop(handler, eventQueueSize, mon)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()

	// Admin RPC
	var rpcServer *rpc.Server
	if cfg.Server.RPCAddress != "" {
		rpcServer, err = rpc.NewServer(cfg.Server.RPCAddress, rpc.NewGameService(loop, history))
		if err != nil {
			logger.Log.Fatalf("Failed to start RPC server: %v", err)
		}
		go rpcServer.Start()
	}

	gameServer := server.NewGameServer(cfg.Server, loop, sessions, mon)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- gameServer.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Log.Errorf("Game server stopped: %v", err)
		}
		stop()
	case <-ctx.Done():
		logger.Log.Info("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := gameServer.Shutdown(shutdownCtx); err != nil {
		logger.Log.Warnf("Game server shutdown: %v", err)
	}
	if rpcServer != nil {
		rpcServer.Stop()
	}
	<-loopDone
	history.Wait()
	logger.Log.Info("Server stopped.")
}
