package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const qrSize = 256

type statsResponse struct {
	entity.RoomStats
	Connections int `json:"connections"`
}

func (that *Server) ping(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

func (that *Server) healthz(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	that.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (that *Server) versionInfo(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	that.writeJSON(w, http.StatusOK, map[string]string{"version": that.version})
}

func (that *Server) stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	that.writeJSON(w, http.StatusOK, statsResponse{
		RoomStats:   that.rooms.Stats(r.Context()),
		Connections: that.conns.Count(),
	})
}

// roomQR - PNG QR code pointing at the join link of a live room.
func (that *Server) roomQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := that.rooms.GetByID(r.Context(), ps.ByName("id"))
	if errors.Is(err, apperror.ErrRoomNotFound) {
		http.Error(w, apperror.Message(err), http.StatusNotFound)
		return
	}

	if err != nil {
		that.logger.Error("failed to find room", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	png, err := qrcode.Encode(that.joinURL(room.ID()), qrcode.Medium, qrSize)
	if err != nil {
		that.logger.Error("qr generation failed", "room_id", room.ID(), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

func (that *Server) joinURL(roomID string) string {
	return strings.TrimSuffix(that.publicURL, "/") + "/?room=" + url.QueryEscape(roomID)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
