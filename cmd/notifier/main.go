package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notification-service/internal/api/handlers/notification"
	"github.com/aliskhannn/notification-service/internal/api/router"
	"github.com/aliskhannn/notification-service/internal/api/server"
	"github.com/aliskhannn/notification-service/internal/channel"
	"github.com/aliskhannn/notification-service/internal/config"
	"github.com/aliskhannn/notification-service/internal/delivery"
	"github.com/aliskhannn/notification-service/internal/model"
	notifrepo "github.com/aliskhannn/notification-service/internal/repository/notification"
	notifsvc "github.com/aliskhannn/notification-service/internal/service/notification"
	"github.com/aliskhannn/notification-service/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.Must()
	val := validator.New()

	repo := notifrepo.NewRepository()

	channels := make(map[model.Type]channel.Channel, len(model.Types))
	for _, t := range model.Types {
		channels[t] = channel.NewSimulated(
			string(t),
			channel.WithFailureRate(cfg.Channel.FailureRate),
			channel.WithLatency(cfg.Channel.Latency),
		)
	}

	sched := delivery.NewScheduler(repo, cfg.Retry)
	dispatcher := worker.NewDispatcher(cfg.Workers.Count, cfg.Workers.QueueSize)
	engine := delivery.NewEngine(repo, channel.NewRouter(channels), sched, delivery.WithSubmitter(dispatcher))

	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	dispatched := make(chan struct{})
	go func() {
		dispatcher.Run(dispatchCtx, engine)
		close(dispatched)
	}()

	service := notifsvc.NewService(repo, dispatcher)
	notifHandler := notification.NewHandler(service, val)

	r := router.New(notifHandler)
	s := server.New(cfg.Server.Addr(), r)

	go func() {
		zlog.Logger.Info().Str("addr", s.Addr).Msg("starting server")
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if n := sched.Stop(); n > 0 {
		zlog.Logger.Info().Int("cancelled", n).Msg("cancelled pending retries")
	}

	cancelDispatch()
	<-dispatched
}
