package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

type EventType string

const (
	EventReset EventType = "reset"
	EventMove  EventType = "move"
	EventUndo  EventType = "undo"
)

// Event describes a completed state change for renderers.
type Event struct {
	Type EventType    `json:"type"`
	Move *MoveOutcome `json:"move,omitempty"`
	Undo *UndoOutcome `json:"undo,omitempty"`
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Board         [entity.Size][entity.Size]entity.Stone `json:"board"`
	CurrentPlayer entity.Stone                           `json:"current_player"`
	Status        entity.Status                          `json:"status"`
	Winner        entity.Stone                           `json:"winner,omitempty"`
	WinningLine   *entity.Line                           `json:"winning_line,omitempty"`
	MoveCount     int                                    `json:"move_count"`
	History       []entity.Move                          `json:"history"`
	Accepting     bool                                   `json:"accepting"`
}
