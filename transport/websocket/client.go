package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
)

// Client - one upgraded connection with its outbound queue.
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger

	closeOnce sync.Once
}

func newClient(logger *slog.Logger, id string, conn *websocket.Conn, buffer int) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, buffer),
		logger: logger.With("conn_id", id),
	}
}

func (that *Client) enqueue(data []byte) bool {
	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

func (that *Client) closeSend() {
	that.closeOnce.Do(func() {
		close(that.send)
	})
}

// readPump - blocks until the peer goes away or stops answering pings.
func (that *Client) readPump(conf config.Socket, onMessage func(data []byte)) {
	that.conn.SetReadLimit(conf.MaxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(conf.PongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(conf.PongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.logger.Warn("connection closed unexpectedly", "error", err)
			}

			return
		}

		_ = that.conn.SetReadDeadline(time.Now().Add(conf.PongWait))
		onMessage(data)
	}
}

func (that *Client) writePump(conf config.Socket) {
	ticker := time.NewTicker(conf.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(conf.WriteWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				that.logger.Debug("write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(conf.WriteWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
