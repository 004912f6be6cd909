package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fairychess/internal/catalog"
	"fairychess/internal/clock"
	"fairychess/internal/config"
	"fairychess/internal/engine"
	"fairychess/internal/logging"
	"fairychess/internal/rng"
	"fairychess/internal/room"
	"fairychess/internal/session"
	"fairychess/internal/transport/httpapi"
	"fairychess/internal/transport/ws"
)

func main() {
	dev := flag.Bool("dev", false, "use development (console) logging instead of production JSON")
	flag.Parse()

	log, err := logging.New(*dev)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	table := catalog.NewTable()
	eng := engine.NewEngine(table)

	var dispatcher *session.Dispatcher
	hub := ws.NewHub(log, func(connID string, raw []byte) {
		dispatcher.HandleMessage(connID, raw)
	}, func(connID string) {
		dispatcher.Disconnect(connID)
	})

	dir := room.NewDirectory(table, eng, nil, clock.Real{}, rng.Real{}, cfg.RoomCollisionRetries)
	dispatcher = session.NewDispatcher(dir, hub, session.RealNowMs, session.RoomDefaults{
		Budget:                 cfg.DefaultBudget,
		Files:                  cfg.DefaultFiles,
		Ranks:                  cfg.DefaultRanks,
		DraftTimeoutSeconds:    cfg.DraftTimeoutSeconds,
		CountdownSeconds:       cfg.CountdownSeconds,
		RevealSeconds:          cfg.RevealSeconds,
		DisconnectGraceSeconds: cfg.DisconnectGraceSeconds,
	})
	dir.SetBroadcaster(dispatcher)
	dir.StartSweeper()
	defer dir.StopSweeper()

	router := httpapi.NewRouter(hub, dispatcher, log)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
