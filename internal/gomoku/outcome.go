package gomoku

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var errUnknownRejectReason = errors.New("unknown reject reason")

// RejectReason tells why a move was not accepted.
type RejectReason uint8

const (
	RejectNone RejectReason = iota
	RejectOutOfBounds
	RejectCellOccupied
	RejectGameOver
)

func (that RejectReason) String() string {
	switch that {
	case RejectOutOfBounds:
		return "out_of_bounds"
	case RejectCellOccupied:
		return "cell_occupied"
	case RejectGameOver:
		return "game_over"
	default:
		return ""
	}
}

func (that RejectReason) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *RejectReason) UnmarshalText(text []byte) error {
	for _, reason := range []RejectReason{RejectNone, RejectOutOfBounds, RejectCellOccupied, RejectGameOver} {
		if reason.String() == string(text) {
			*that = reason
			return nil
		}
	}

	return fmt.Errorf("%w: %q", errUnknownRejectReason, text)
}

// Err maps the reason to its apperror sentinel, nil for RejectNone.
func (that RejectReason) Err() error {
	switch that {
	case RejectOutOfBounds:
		return apperror.ErrOutOfBounds
	case RejectCellOccupied:
		return apperror.ErrCellOccupied
	case RejectGameOver:
		return apperror.ErrGameOver
	default:
		return nil
	}
}

// MoveOutcome is the result of AttemptMove. When Accepted is false only Reason is set.
type MoveOutcome struct {
	Accepted    bool          `json:"accepted"`
	Reason      RejectReason  `json:"reason,omitempty"`
	Player      entity.Stone  `json:"player,omitempty"`
	Cell        entity.Cell   `json:"cell"`
	Status      entity.Status `json:"status"`
	WinningLine *entity.Line  `json:"winning_line,omitempty"`
}

func rejected(reason RejectReason) MoveOutcome {
	return MoveOutcome{Reason: reason}
}

// UndoOutcome is the result of UndoLastMove. Undone is false when history was empty.
type UndoOutcome struct {
	Undone        bool          `json:"undone"`
	ClearedCell   entity.Cell   `json:"cleared_cell"`
	CurrentPlayer entity.Stone  `json:"current_player"`
	Status        entity.Status `json:"status"`
}

func (that UndoOutcome) Err() error {
	if !that.Undone {
		return apperror.ErrNothingToUndo
	}

	return nil
}
