package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/ids"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	Connect(connID string)
	Disconnect(ctx context.Context, connID string)

	QuickMatch(ctx context.Context, connID string) error
	CreateRoom(ctx context.Context, connID string) error
	JoinRoom(ctx context.Context, connID, roomID string) error
	MakeMove(ctx context.Context, connID string, index int) error
	PlayAgain(ctx context.Context, connID string) error
	LeaveRoom(ctx context.Context, connID string) error
}

type handler func(ctx context.Context, client *Client, message *Message) error

type Server struct {
	logger   *slog.Logger
	hub      *Hub
	uGame    uGame
	conf     config.Socket
	upgrader websocket.Upgrader

	handlers map[string]handler
}

func New(logger *slog.Logger, hub *Hub, uGame uGame, conf config.Socket) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		hub:    hub,
		uGame:  uGame,
		conf:   conf,

		handlers: make(map[string]handler),
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	server.handlers[entity.ActionQuickMatch] = server.handleQuickMatch
	server.handlers[entity.ActionCreateRoom] = server.handleCreateRoom
	server.handlers[entity.ActionJoinRoom] = server.handleJoinRoom
	server.handlers[entity.ActionMakeMove] = server.handleMakeMove
	server.handlers[entity.ActionPlayAgain] = server.handlePlayAgain
	server.handlers[entity.ActionLeaveRoom] = server.handleLeaveRoom

	return server
}

func (that *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/ws", that.ServeWS)

	return router
}

// Start - starts WebSocket server and stops it once ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}

		that.hub.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeWS - upgrades the request and serves the connection until it closes.
func (that *Server) ServeWS(writer http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		that.logger.Debug("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(that.logger, ids.NewConnectionID(), conn, that.conf.SendBuffer)

	that.hub.register(client)
	that.uGame.Connect(client.id)
	client.logger.Info("connection established")

	go client.writePump(that.conf)

	ctx := req.Context()
	client.readPump(that.conf, func(data []byte) {
		that.dispatch(ctx, client, data)
	})

	that.uGame.Disconnect(context.WithoutCancel(ctx), client.id)
	that.hub.unregister(client)
	client.logger.Info("connection closed")
}

func (that *Server) dispatch(ctx context.Context, client *Client, data []byte) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		that.reject(client, fmt.Errorf("%w: malformed message: %w", apperror.ErrBadRequest, err))
		return
	}

	handle, ok := that.handlers[message.Action]
	if !ok {
		that.reject(client, fmt.Errorf("%w: unknown action %q", apperror.ErrBadRequest, message.Action))
		return
	}

	if err := handle(ctx, client, &message); err != nil {
		client.logger.Debug("action rejected", "action", message.Action, "error", err)
	}
}

func (that *Server) reject(client *Client, err error) {
	client.logger.Debug("bad request", "error", err)
	that.hub.Send(client.id, entity.ActionError, entity.ErrorMessage{Message: apperror.Message(err)})
}

func (that *Server) checkOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}

	return slices.Contains(that.conf.AllowedOrigins, "*") || slices.Contains(that.conf.AllowedOrigins, origin)
}
