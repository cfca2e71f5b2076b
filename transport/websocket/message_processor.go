package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

const (
	actionGameState = "game:state"
	actionGameMove  = "game:move"
	actionGameUndo  = "game:undo"
	actionGameReset = "game:reset"
	actionGameEvent = "game:event"
	actionError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type ResponsePayload struct {
	Game  *usecase.GameState  `json:"game,omitempty"`
	Move  *gomoku.MoveOutcome `json:"move,omitempty"`
	Undo  *gomoku.UndoOutcome `json:"undo,omitempty"`
	Event *gomoku.Event       `json:"event,omitempty"`
	Error string              `json:"error,omitempty"`
}

func (that *Server) sendMessage(conn *connection, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	if err = conn.writeJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *connection, action, errorMessage string) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: errorMessage})
}
