// Package gomoku implements the five-in-a-row rule engine: move validation,
// win and draw detection and a move history with undo.
//
// An Engine is owned by a single caller and is not safe for concurrent use.
package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const cellCount = entity.Size * entity.Size

type Option func(*Engine)

// WithObserver registers a callback that receives an Event after every
// completed Reset, accepted move and successful undo.
func WithObserver(observer func(Event)) Option {
	return func(that *Engine) {
		that.observer = observer
	}
}

type Engine struct {
	board         [entity.Size][entity.Size]entity.Stone
	history       []entity.Move
	currentPlayer entity.Stone
	status        entity.Status
	winner        entity.Stone
	winningLine   *entity.Line

	observer func(Event)
}

// New returns an engine reset to the start of a session.
func New(opts ...Option) *Engine {
	engine := &Engine{}
	for _, opt := range opts {
		opt(engine)
	}

	engine.Reset()

	return engine
}

// Restore rebuilds an engine by replaying history. Replay does not notify the observer.
func Restore(history []entity.Move, opts ...Option) (*Engine, error) {
	engine := &Engine{}
	engine.reset()

	for i, move := range history {
		if move.Player != engine.currentPlayer {
			return nil, fmt.Errorf("%w: move %d played by %s, expected %s",
				apperror.ErrCorruptHistory, i, move.Player, engine.currentPlayer)
		}

		if outcome := engine.place(move.Row, move.Col); !outcome.Accepted {
			return nil, fmt.Errorf("%w: move %d at (%d,%d): %w",
				apperror.ErrCorruptHistory, i, move.Row, move.Col, outcome.Reason.Err())
		}
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

// Reset clears the board and history, Black moves first.
func (that *Engine) Reset() {
	that.reset()
	that.notify(Event{Type: EventReset})
}

// AttemptMove places the current player's stone at (row, col).
func (that *Engine) AttemptMove(row, col int) MoveOutcome {
	outcome := that.place(row, col)
	if outcome.Accepted {
		that.notify(Event{Type: EventMove, Move: &outcome})
	}

	return outcome
}

// UndoLastMove takes back the most recent move and gives the turn back to its player.
func (that *Engine) UndoLastMove() UndoOutcome {
	if len(that.history) == 0 {
		return UndoOutcome{
			CurrentPlayer: that.currentPlayer,
			Status:        that.status,
		}
	}

	last := that.history[len(that.history)-1]
	that.history = that.history[:len(that.history)-1]
	that.board[last.Row][last.Col] = entity.Empty

	// the undone move is the only one that could have ended the game
	that.currentPlayer = last.Player
	that.status = entity.InProgress
	that.winner = entity.Empty
	that.winningLine = nil

	outcome := UndoOutcome{
		Undone:        true,
		ClearedCell:   last.Cell(),
		CurrentPlayer: that.currentPlayer,
		Status:        that.status,
	}
	that.notify(Event{Type: EventUndo, Undo: &outcome})

	return outcome
}

// Accepting reports whether the engine takes further moves.
func (that *Engine) Accepting() bool {
	return that.status == entity.InProgress
}

func (that *Engine) Snapshot() Snapshot {
	snapshot := Snapshot{
		Board:         that.board,
		CurrentPlayer: that.currentPlayer,
		Status:        that.status,
		Winner:        that.winner,
		MoveCount:     len(that.history),
		History:       append([]entity.Move{}, that.history...),
		Accepting:     that.Accepting(),
	}

	if that.winningLine != nil {
		line := *that.winningLine
		snapshot.WinningLine = &line
	}

	return snapshot
}

// History returns a copy of the moves in the order they were played.
func (that *Engine) History() []entity.Move {
	return append([]entity.Move{}, that.history...)
}

func (that *Engine) reset() {
	that.board = [entity.Size][entity.Size]entity.Stone{}
	that.history = make([]entity.Move, 0, cellCount)
	that.currentPlayer = entity.Black
	that.status = entity.InProgress
	that.winner = entity.Empty
	that.winningLine = nil
}

// place validates and applies a move without notifying.
func (that *Engine) place(row, col int) MoveOutcome {
	if reason := that.validateMove(row, col); reason != RejectNone {
		return rejected(reason)
	}

	player := that.currentPlayer
	that.board[row][col] = player
	that.history = append(that.history, entity.Move{Row: row, Col: col, Player: player})

	outcome := MoveOutcome{
		Accepted: true,
		Player:   player,
		Cell:     entity.Cell{Row: row, Col: col},
	}

	that.updateGameStatus(row, col, player)

	outcome.Status = that.status
	if that.winningLine != nil {
		line := *that.winningLine
		outcome.WinningLine = &line
	}

	return outcome
}

// validateMove checks preconditions in order: game state, bounds, occupancy.
func (that *Engine) validateMove(row, col int) RejectReason {
	if that.status.IsTerminal() {
		return RejectGameOver
	}

	cell := entity.Cell{Row: row, Col: col}
	if !cell.InBounds() {
		return RejectOutOfBounds
	}

	if that.board[row][col] != entity.Empty {
		return RejectCellOccupied
	}

	return RejectNone
}

func (that *Engine) updateGameStatus(row, col int, player entity.Stone) {
	if line, ok := findWinningLine(&that.board, row, col); ok {
		that.status = entity.Win
		that.winner = player
		that.winningLine = &line
		return
	}

	if len(that.history) == cellCount {
		that.status = entity.Draw
		return
	}

	that.currentPlayer = player.Opponent()
}

func (that *Engine) notify(event Event) {
	if that.observer != nil {
		that.observer(event)
	}
}
