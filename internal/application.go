package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/events"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/rest"
	"github.com/rocketscienceinc/tictactoe-rooms/transport/websocket"
)

// RunApp - runs the application until a signal arrives or a server fails.
func RunApp(parent context.Context, logger *slog.Logger, conf *config.Config, version string) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	publisher, err := newPublisher(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = publisher.Close(); err != nil {
			log.Error("could not close event publisher", "error", err)
		}
	}()

	roomRepo := repository.NewRoomRepository()
	hub := websocket.NewHub(logger)
	gameManager := usecase.NewGameManager(logger, roomRepo, hub, publisher)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, roomRepo, hub, conf.PublicURL, version)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, hub, gameManager, conf.Socket)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newPublisher - picks the room event sink. Broker publishers run behind a worker pool.
func newPublisher(ctx context.Context, logger *slog.Logger, conf *config.Config) (events.Publisher, error) {
	var next events.Publisher

	switch conf.Events.Driver {
	case config.EventsDriverRedis:
		client, err := events.ConnectRedis(ctx, conf.Redis)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis: %w", err)
		}

		next = events.NewRedisPublisher(client, conf.Events.Channel)
	case config.EventsDriverNATS:
		conn, err := events.ConnectNATS(logger, conf.NATS)
		if err != nil {
			return nil, fmt.Errorf("could not connect to nats: %w", err)
		}

		next = events.NewNATSPublisher(conn, conf.Events.Channel)
	default:
		return events.NewNop(), nil
	}

	logger.Info("Publishing room events", "driver", conf.Events.Driver, "channel", conf.Events.Channel)

	return events.NewAsync(logger, next, conf.Events.Workers, conf.Events.QueueSize), nil
}
