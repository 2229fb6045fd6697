package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type roomFinder interface {
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	Stats(ctx context.Context) entity.RoomStats
}

type connCounter interface {
	Count() int
}

type Server struct {
	logger    *slog.Logger
	rooms     roomFinder
	conns     connCounter
	publicURL string
	version   string
}

func New(logger *slog.Logger, rooms roomFinder, conns connCounter, publicURL, version string) *Server {
	return &Server{
		logger:    logger.With("component", "rest"),
		rooms:     rooms,
		conns:     conns,
		publicURL: publicURL,
		version:   version,
	}
}

func (that *Server) Handler() http.Handler {
	router := httprouter.New()

	router.GET("/ping", that.ping)
	router.GET("/healthz", that.healthz)
	router.GET("/version", that.versionInfo)
	router.GET("/stats", that.stats)
	router.GET("/rooms/:id/qr", that.roomQR)

	return router
}

// Start - serves the REST API until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown http server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
