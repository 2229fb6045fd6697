package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
)

type staticCounter int

func (that staticCounter) Count() int {
	return int(that)
}

func newTestServer(t *testing.T) (*httptest.Server, repository.RoomRepository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rooms := repository.NewRoomRepository()

	srv := httptest.NewServer(New(logger, rooms, staticCounter(3), "http://play.example/", "v1.2.3").Handler())
	t.Cleanup(srv.Close)

	return srv, rooms
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func TestServer_Ping(t *testing.T) {
	srv, _ := newTestServer(t)

	// When: /ping is requested
	resp, body := get(t, srv.URL+"/ping")

	// Then: pong is returned
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestServer_Info(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		path string
		want map[string]string
	}{
		{path: "/healthz", want: map[string]string{"status": "ok"}},
		{path: "/version", want: map[string]string{"version": "v1.2.3"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var got map[string]string
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServer_Stats(t *testing.T) {
	ctx := context.Background()
	srv, rooms := newTestServer(t)

	// Given: one waiting room
	room, err := rooms.Create(ctx)
	require.NoError(t, err)
	_, _, err = room.AddPlayer("a")
	require.NoError(t, err)

	// When: /stats is requested
	resp, body := get(t, srv.URL+"/stats")

	// Then: registry counters and connections are reported
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]int
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 1, got["rooms"])
	assert.Equal(t, 1, got["waiting"])
	assert.Equal(t, 0, got["playing"])
	assert.Equal(t, 1, got["players"])
	assert.Equal(t, 3, got["connections"])
}

func TestServer_RoomQR(t *testing.T) {
	t.Run("RoomQR_Success", func(t *testing.T) {
		ctx := context.Background()
		srv, rooms := newTestServer(t)

		// Given: a live room
		room, err := rooms.Create(ctx)
		require.NoError(t, err)

		// When: its QR code is requested in lowercase
		resp, body := get(t, srv.URL+"/rooms/"+strings.ToLower(room.ID())+"/qr")

		// Then: a decodable PNG is returned
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		img, err := png.Decode(bytes.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, qrSize, img.Bounds().Dx())
	})

	t.Run("RoomQR_NotFound", func(t *testing.T) {
		srv, _ := newTestServer(t)

		// When: the QR code of an unknown room is requested
		resp, body := get(t, srv.URL+"/rooms/ZZZZZ/qr")

		// Then: 404 is returned
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(body), "room not found")
	})
}

func TestServer_JoinURL(t *testing.T) {
	srv := &Server{publicURL: "http://play.example/"}

	assert.Equal(t, "http://play.example/?room=AB12C", srv.joinURL("AB12C"))
}
