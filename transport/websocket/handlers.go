package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

func (that *Server) handleGameState(ctx context.Context, conn *connection, msg *Message) error {
	game, err := that.games.GetGame(ctx, conn.gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: game})
}

func (that *Server) handleGameMove(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleGameMove", "gameID", conn.gameID)

	var payloadReq MovePayload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil || payloadReq.Row == nil || payloadReq.Col == nil {
		log.Debug("invalid move payload")
		return that.sendErrorResponse(conn, msg.Action, "payload must be {\"row\": int, \"col\": int}")
	}

	outcome, err := that.games.MakeMove(ctx, conn.gameID, *payloadReq.Row, *payloadReq.Col)
	if err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	payloadResp := ResponsePayload{Move: outcome}
	if !outcome.Accepted {
		payloadResp.Error = outcome.Reason.String()
	}

	return that.sendMessage(conn, msg.Action, payloadResp)
}

func (that *Server) handleGameUndo(ctx context.Context, conn *connection, msg *Message) error {
	outcome, err := that.games.UndoMove(ctx, conn.gameID)
	if err != nil {
		return fmt.Errorf("failed to undo move: %w", err)
	}

	payloadResp := ResponsePayload{Undo: outcome}
	if !outcome.Undone {
		payloadResp.Error = "nothing_to_undo"
	}

	return that.sendMessage(conn, msg.Action, payloadResp)
}

func (that *Server) handleGameReset(ctx context.Context, conn *connection, msg *Message) error {
	game, err := that.games.ResetGame(ctx, conn.gameID)
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: game})
}
