package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type natsPublisher struct {
	conn   *nats.Conn
	prefix string
}

// ConnectNATS - connects with reconnect handling logged through logger.
func ConnectNATS(logger *slog.Logger, conf config.NATS) (*nats.Conn, error) {
	log := logger.With("component", "nats")

	conn, err := nats.Connect(conf.URL,
		nats.Name(conf.Name),
		nats.MaxReconnects(conf.MaxReconnects),
		nats.ReconnectWait(conf.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("disconnected from nats", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("reconnected to nats", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return conn, nil
}

// NewNATSPublisher - publishes each event on <prefix>.<room id>.
func NewNATSPublisher(conn *nats.Conn, prefix string) Publisher {
	return &natsPublisher{
		conn:   conn,
		prefix: prefix,
	}
}

func (that *natsPublisher) Publish(_ context.Context, event entity.RoomEvent) error {
	data, err := encode(event)
	if err != nil {
		return err
	}

	subject := that.prefix + "." + event.RoomID
	if err = that.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to nats subject %s: %w", subject, err)
	}

	return nil
}

// Close - flushes pending messages before closing the connection.
func (that *natsPublisher) Close() error {
	if err := that.conn.Drain(); err != nil {
		return fmt.Errorf("could not drain nats connection: %w", err)
	}

	return nil
}
