package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VitorSouza2004/SouzaTec/internal/config"
	"github.com/VitorSouza2004/SouzaTec/internal/database"
	"github.com/VitorSouza2004/SouzaTec/internal/intake"
	"github.com/VitorSouza2004/SouzaTec/internal/notify"
	"github.com/VitorSouza2004/SouzaTec/internal/queue"
	"github.com/VitorSouza2004/SouzaTec/internal/repository/postgres"
	"github.com/VitorSouza2004/SouzaTec/internal/router"
	"github.com/VitorSouza2004/SouzaTec/internal/syncer"
	"github.com/VitorSouza2004/SouzaTec/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// hosted db
	pool, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()
	if err := database.InitSchema(context.Background(), pool); err != nil {
		// the queue keeps accepting submissions while the db is away
		l.Warn().Err(err).Msg("schema init failed, running degraded until connectivity returns")
	}

	// local durable queue
	q, err := queue.Open(cfg.QueuePath)
	if err != nil {
		l.Fatal().Err(err).Str("path", cfg.QueuePath).Msg("queue open failed")
	}
	defer q.Close()

	// staff notifications (optional)
	var notifier intake.Notifier
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger.Component(l, "notify"))
		if err != nil {
			l.Warn().Err(err).Msg("telegram notifier unavailable")
		} else {
			notifier = tg
		}
	}

	// sync coordinator: drain the queue whenever the db is reachable
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon := syncer.NewMonitor(pool.Ping, 30*time.Second, logger.Component(l, "connectivity"))
	coord := syncer.New(q, postgres.NewRequestRepo(pool), logger.Component(l, "sync"))
	go mon.Run(ctx)
	go coord.Run(ctx, mon, cfg.SyncStartup, cfg.SyncInterval)

	// http
	r := router.New(l, pool, q, notifier, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown; queued submissions stay on disk for the next boot
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()
	sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()
	_ = srv.Shutdown(sctx)
	l.Info().Msg("shutdown complete")
}
