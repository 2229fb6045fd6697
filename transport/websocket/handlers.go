package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

func (that *Server) handleQuickMatch(ctx context.Context, client *Client, _ *Message) error {
	return that.uGame.QuickMatch(ctx, client.id)
}

func (that *Server) handleCreateRoom(ctx context.Context, client *Client, _ *Message) error {
	return that.uGame.CreateRoom(ctx, client.id)
}

func (that *Server) handleJoinRoom(ctx context.Context, client *Client, message *Message) error {
	var payload JoinRoomPayload
	if err := that.decode(client, message, &payload); err != nil {
		return err
	}

	if payload.RoomID == "" {
		err := fmt.Errorf("%w: room id is required", apperror.ErrBadRequest)
		that.reject(client, err)

		return err
	}

	return that.uGame.JoinRoom(ctx, client.id, payload.RoomID)
}

func (that *Server) handleMakeMove(ctx context.Context, client *Client, message *Message) error {
	var payload MovePayload
	if err := that.decode(client, message, &payload); err != nil {
		return err
	}

	if payload.Index == nil {
		err := fmt.Errorf("%w: cell index is required", apperror.ErrBadRequest)
		that.reject(client, err)

		return err
	}

	return that.uGame.MakeMove(ctx, client.id, *payload.Index)
}

func (that *Server) handlePlayAgain(ctx context.Context, client *Client, _ *Message) error {
	return that.uGame.PlayAgain(ctx, client.id)
}

func (that *Server) handleLeaveRoom(ctx context.Context, client *Client, _ *Message) error {
	return that.uGame.LeaveRoom(ctx, client.id)
}

func (that *Server) decode(client *Client, message *Message, target any) error {
	if len(message.Payload) == 0 {
		err := fmt.Errorf("%w: %s needs a payload", apperror.ErrBadRequest, message.Action)
		that.reject(client, err)

		return err
	}

	if err := json.Unmarshal(message.Payload, target); err != nil {
		err = fmt.Errorf("%w: malformed %s payload: %w", apperror.ErrBadRequest, message.Action, err)
		that.reject(client, err)

		return err
	}

	return nil
}
